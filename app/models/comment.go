package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Comment is immutable once created; there is no edit operation, only delete.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PhotoID   uint           `gorm:"index" json:"photo_id"`
	Photo     Photo          `gorm:"foreignKey:PhotoID" json:"photo,omitempty"`
	Text      string         `gorm:"type:varchar(200)" json:"text" validate:"required,min=1,max=200"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Comment) Validate() error {
	v := validator.New()

	return v.Struct(c)
}
