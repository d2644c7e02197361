package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Photo struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	UUID      string   `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	UserID    uint     `gorm:"index" json:"user_id"`
	User      User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Caption   string   `gorm:"type:varchar(255)" json:"caption" validate:"required,max=255"`
	Latitude  float64  `gorm:"type:decimal(10,8);index" json:"lat" validate:"latitude"`
	Longitude float64  `gorm:"type:decimal(11,8);index" json:"lng" validate:"longitude"`
	FileName  string   `gorm:"type:varchar(255)" json:"file_name"`
	// relations
	Comments  []Comment      `gorm:"foreignKey:PhotoID" json:"comments,omitempty"`
	Likes     []Like         `gorm:"foreignKey:PhotoID" json:"likes,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a public UUID if none is set.
func (p *Photo) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	return nil
}
