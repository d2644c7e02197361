package repository

import (
	"github.com/kuvashare/kuva/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	Update(user *models.User) error
	ListAdminEmails() ([]string, error)
	Count() (int64, error)
}

// PhotoRepository defines the interface for photo-related database operations
type PhotoRepository interface {
	Create(photo *models.Photo) error
	GetByID(id uint) (*models.Photo, error)
	GetByUUID(uuid string) (*models.Photo, error)
	GetByUserID(userID uint) ([]models.Photo, error)
	GetInBounds(minLat, maxLat, minLng, maxLng float64) ([]models.Photo, error)
	Delete(id uint) error
	Count() (int64, error)
}

// EngagementRepository provides raw access to likes and comments. The read-side
// list methods order by creation time ascending; the aggregator applies its own
// descending order on top of the owner-scoped methods.
type EngagementRepository interface {
	CreateComment(comment *models.Comment) error
	SetLike(userID, photoID uint, liked bool) error
	CountLikes(photoID uint) (int64, error)
	CountComments(photoID uint) (int64, error)
	ListComments(photoID uint) ([]models.Comment, error)
	ListLikes(photoID uint) ([]models.Like, error)
	UserLiked(userID, photoID uint) (bool, error)
	ListLikesByOwner(ownerID uint) ([]models.Like, error)
	ListCommentsByOwner(ownerID uint) ([]models.Comment, error)
}

// ReportRepository defines the interface for moderation report operations
type ReportRepository interface {
	CreateIfAbsent(report *models.Report) (bool, *models.Report, error)
	GetByPhotoID(photoID uint) (*models.Report, error)
	GetByToken(token string) (*models.Report, error)
	ResolveByToken(token string) (*models.Report, error)
	Count() (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User       UserRepository
	Photo      PhotoRepository
	Engagement EngagementRepository
	Report     ReportRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Photo:      NewPhotoRepository(db),
		Engagement: NewEngagementRepository(db),
		Report:     NewReportRepository(db),
	}
}
