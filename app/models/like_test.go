package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}, &Photo{}, &Comment{}, &Like{}, &Report{}))
	return db
}

func TestSetLikeFirstWriteFalse(t *testing.T) {
	db := openTestDB(t)

	// The very first write for a (user, photo) pair may be an explicit "not
	// liked"; it must be stored as false, not fall back to any column default.
	require.NoError(t, SetLike(db, 1, 1, false))

	var like Like
	require.NoError(t, db.Where("user_id = ? AND photo_id = ?", 1, 1).First(&like).Error)
	assert.False(t, like.Liked)
}

func TestSetLikeUpsertsSingleRow(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, SetLike(db, 1, 1, true))
	require.NoError(t, SetLike(db, 1, 1, false))
	require.NoError(t, SetLike(db, 1, 1, true))

	var count int64
	require.NoError(t, db.Model(&Like{}).Where("user_id = ? AND photo_id = ?", 1, 1).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var like Like
	require.NoError(t, db.Where("user_id = ? AND photo_id = ?", 1, 1).First(&like).Error)
	assert.True(t, like.Liked)
}
