package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kuvashare/kuva/app/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Photo{},
		&models.Comment{},
		&models.Like{},
		&models.Report{},
	))
	return db
}

func seedReportedPhoto(t *testing.T, db *gorm.DB) (*models.Photo, *models.Report) {
	t.Helper()

	photo := &models.Photo{UserID: 1, Caption: "sunset", Latitude: 52.52, Longitude: 13.4, FileName: "x.jpg"}
	require.NoError(t, db.Create(photo).Error)
	require.NoError(t, db.Create(&models.Comment{UserID: 2, PhotoID: photo.ID, Text: "nice"}).Error)
	require.NoError(t, models.SetLike(db, 2, photo.ID, true))

	created, report, err := NewReportRepository(db).CreateIfAbsent(&models.Report{
		PhotoID: photo.ID,
		Message: "inappropriate",
	})
	require.NoError(t, err)
	require.True(t, created)
	require.NotEmpty(t, report.Token)
	return photo, report
}

func TestCreateIfAbsentIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	repo := NewReportRepository(db)

	photo := &models.Photo{UserID: 1, Caption: "sunset", Latitude: 1, Longitude: 1}
	require.NoError(t, db.Create(photo).Error)

	created, first, err := repo.CreateIfAbsent(&models.Report{PhotoID: photo.ID, Message: "first"})
	require.NoError(t, err)
	assert.True(t, created)

	// The losing insert must not create a second row or a second token.
	created, second, err := repo.CreateIfAbsent(&models.Report{PhotoID: photo.ID, Message: "second"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Token, second.Token)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestResolveByTokenCascades(t *testing.T) {
	db := openTestDB(t)
	reports := NewReportRepository(db)
	photos := NewPhotoRepository(db)

	photo, report := seedReportedPhoto(t, db)

	resolved, err := reports.ResolveByToken(report.Token)
	require.NoError(t, err)
	assert.Equal(t, photo.ID, resolved.PhotoID)
	assert.Equal(t, "x.jpg", resolved.Photo.FileName)

	// Photo, engagement and report rows are all gone together.
	_, err = photos.GetByUUID(photo.UUID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var comments, likes int64
	require.NoError(t, db.Model(&models.Comment{}).Where("photo_id = ?", photo.ID).Count(&comments).Error)
	require.NoError(t, db.Model(&models.Like{}).Where("photo_id = ?", photo.ID).Count(&likes).Error)
	assert.Zero(t, comments)
	assert.Zero(t, likes)

	count, err := reports.Count()
	require.NoError(t, err)
	assert.Zero(t, count)

	// The token is single-use.
	_, err = reports.ResolveByToken(report.Token)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPhotoDeleteInvalidatesReportToken(t *testing.T) {
	db := openTestDB(t)
	reports := NewReportRepository(db)
	photos := NewPhotoRepository(db)

	photo, report := seedReportedPhoto(t, db)

	require.NoError(t, photos.Delete(photo.ID))

	_, err := reports.GetByToken(report.Token)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = reports.ResolveByToken(report.Token)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
