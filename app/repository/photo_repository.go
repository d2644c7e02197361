package repository

import (
	"github.com/kuvashare/kuva/app/models"
	"gorm.io/gorm"
)

// photoRepository implements the PhotoRepository interface
type photoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository creates a new photo repository instance
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

// Create creates a new photo in the database
func (r *photoRepository) Create(photo *models.Photo) error {
	return r.db.Create(photo).Error
}

// GetByID retrieves a photo by its ID
func (r *photoRepository) GetByID(id uint) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.Preload("User").First(&photo, id).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// GetByUUID retrieves a photo by its public UUID
func (r *photoRepository) GetByUUID(uuid string) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.Preload("User").Where("uuid = ?", uuid).First(&photo).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// GetByUserID retrieves all photos belonging to a specific user
func (r *photoRepository) GetByUserID(userID uint) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&photos).Error
	return photos, err
}

// GetInBounds retrieves photos inside a coordinate bounding box. This is a
// coarse prefilter; callers apply the precise spherical distance check.
func (r *photoRepository) GetInBounds(minLat, maxLat, minLng, maxLng float64) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.
		Where("latitude BETWEEN ? AND ?", minLat, maxLat).
		Where("longitude BETWEEN ? AND ?", minLng, maxLng).
		Order("id ASC").Find(&photos).Error
	return photos, err
}

// Delete soft deletes a photo and its engagement records in one transaction.
// Any report referencing the photo goes with it; its token becomes invalid.
func (r *photoRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("photo_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("photo_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("photo_id = ?", id).Delete(&models.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Photo{}, id).Error; err != nil {
			return err
		}
		return nil
	})
}

// Count returns the total number of photos
func (r *photoRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Photo{}).Count(&count).Error
	return count, err
}
