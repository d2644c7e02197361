package repository

import (
	"github.com/kuvashare/kuva/app/models"
	"gorm.io/gorm"
)

// engagementRepository implements the EngagementRepository interface
type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new engagement repository instance
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// CreateComment creates a new comment in the database
func (r *engagementRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// SetLike upserts the single Like row for (userID, photoID)
func (r *engagementRepository) SetLike(userID, photoID uint, liked bool) error {
	return models.SetLike(r.db, userID, photoID, liked)
}

// CountLikes returns the number of active likes on a photo
func (r *engagementRepository) CountLikes(photoID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("photo_id = ? AND liked = ?", photoID, true).
		Count(&count).Error
	return count, err
}

// CountComments returns the number of comments on a photo
func (r *engagementRepository) CountComments(photoID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("photo_id = ?", photoID).
		Count(&count).Error
	return count, err
}

// ListComments returns a photo's comments in creation order with their authors
func (r *engagementRepository) ListComments(photoID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("User").
		Where("photo_id = ?", photoID).
		Order("created_at ASC, id ASC").Find(&comments).Error
	return comments, err
}

// ListLikes returns a photo's active likes in creation order with their users
func (r *engagementRepository) ListLikes(photoID uint) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.Preload("User").
		Where("photo_id = ? AND liked = ?", photoID, true).
		Order("created_at ASC, id ASC").Find(&likes).Error
	return likes, err
}

// UserLiked reports whether the given user has an active like on the photo
func (r *engagementRepository) UserLiked(userID, photoID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND photo_id = ? AND liked = ?", userID, photoID, true).
		Count(&count).Error
	return count > 0, err
}

// ListLikesByOwner returns every active like across all photos owned by ownerID
func (r *engagementRepository) ListLikesByOwner(ownerID uint) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.Preload("User").
		Joins("JOIN photos ON photos.id = likes.photo_id AND photos.deleted_at IS NULL").
		Where("photos.user_id = ? AND likes.liked = ?", ownerID, true).
		Find(&likes).Error
	return likes, err
}

// ListCommentsByOwner returns every comment across all photos owned by ownerID
func (r *engagementRepository) ListCommentsByOwner(ownerID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("User").
		Joins("JOIN photos ON photos.id = comments.photo_id AND photos.deleted_at IS NULL").
		Where("photos.user_id = ?", ownerID).
		Find(&comments).Error
	return comments, err
}
