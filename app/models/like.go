package models

import (
	"time"

	"gorm.io/gorm"
)

// Like is an upsert per (user, photo), not an append-only log. The Liked flag
// supports toggling a like off without deleting the row. Liked carries no
// column default: GORM skips zero values of defaulted fields on insert, which
// would store a first-time "not liked" write as a like.
type Like struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"uniqueIndex:idx_likes_user_photo" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PhotoID   uint           `gorm:"uniqueIndex:idx_likes_user_photo" json:"photo_id"`
	Photo     Photo          `gorm:"foreignKey:PhotoID" json:"photo,omitempty"`
	Liked     bool           `gorm:"not null" json:"liked"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// SetLike creates or updates the single Like row for (userID, photoID).
func SetLike(db *gorm.DB, userID, photoID uint, liked bool) error {
	var like Like
	result := db.Where("user_id = ? AND photo_id = ?", userID, photoID).First(&like)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			newLike := Like{
				UserID:  userID,
				PhotoID: photoID,
				Liked:   liked,
			}
			return db.Create(&newLike).Error
		}
		return result.Error
	}

	like.Liked = liked
	return db.Save(&like).Error
}
