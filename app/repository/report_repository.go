package repository

import (
	"github.com/kuvashare/kuva/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// reportRepository implements the ReportRepository interface
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository instance
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// CreateIfAbsent inserts the report unless one already exists for the photo.
// The unique index on photo_id makes this safe under concurrent first reports:
// the loser of the race observes created=false and the surviving row.
func (r *reportRepository) CreateIfAbsent(report *models.Report) (bool, *models.Report, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "photo_id"}},
		DoNothing: true,
	}).Create(report)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	if created {
		return true, report, nil
	}

	existing, err := r.GetByPhotoID(report.PhotoID)
	if err != nil {
		return false, nil, err
	}
	return false, existing, nil
}

// GetByPhotoID retrieves the active report for a photo
func (r *reportRepository) GetByPhotoID(photoID uint) (*models.Report, error) {
	var report models.Report
	err := r.db.Where("photo_id = ?", photoID).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// GetByToken retrieves a report by its confirmation token
func (r *reportRepository) GetByToken(token string) (*models.Report, error) {
	var report models.Report
	err := r.db.Preload("Photo").Where("token = ?", token).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ResolveByToken deletes the reported photo, its engagement records and the
// report row in one transaction. Either everything goes or nothing does, so a
// token can never outlive its photo. A second confirm with the same token gets
// gorm.ErrRecordNotFound.
func (r *reportRepository) ResolveByToken(token string) (*models.Report, error) {
	var resolved *models.Report
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var report models.Report
		if err := tx.Where("token = ?", token).First(&report).Error; err != nil {
			return err
		}
		// Load the photo before it is gone; the caller needs its file name for
		// media cleanup.
		if err := tx.First(&report.Photo, report.PhotoID).Error; err != nil {
			return err
		}
		// Claim the report by deleting it first. Concurrent confirms serialize
		// on this row write; the loser sees zero rows affected and the token
		// reads as already used.
		res := tx.Where("token = ?", token).Delete(&models.Report{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("photo_id = ?", report.PhotoID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("photo_id = ?", report.PhotoID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Photo{}, report.PhotoID).Error; err != nil {
			return err
		}
		resolved = &report
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

// Count returns the total number of open reports
func (r *reportRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Report{}).Count(&count).Error
	return count, err
}
