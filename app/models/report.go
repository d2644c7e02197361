package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"gorm.io/gorm"
)

const reportTokenBytes = 32

// Report marks a photo as flagged for moderation. The row's existence is the
// "reported" state; resolving a report deletes the row together with its photo.
// The unique index on PhotoID enforces at most one active report per photo.
type Report struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PhotoID   uint           `gorm:"uniqueIndex;not null" json:"photo_id"`
	Photo     Photo          `gorm:"foreignKey:PhotoID" json:"photo,omitempty"`
	Message   string         `gorm:"type:text" json:"message"`
	Token     string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"-"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// GenerateToken fills Token with a fresh random confirmation secret. The token
// alone authorizes photo deletion, so it must be unguessable.
func (r *Report) GenerateToken() error {
	b := make([]byte, reportTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return err
	}
	r.Token = hex.EncodeToString(b)
	return nil
}

// BeforeCreate ensures every report carries a token.
func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.Token == "" {
		return r.GenerateToken()
	}
	return nil
}
