package engagement

import (
	"context"
	"errors"

	"github.com/kuvashare/kuva/app/models"
	"github.com/kuvashare/kuva/app/repository"
	"gorm.io/gorm"
)

// Service provides read-side engagement queries for a single photo: counts,
// ordered comment/like lists with user metadata, and the viewer's like state.
// All methods are side-effect free except AddComment and SetLike.
type Service struct {
	repo repository.EngagementRepository
}

// NewService creates an engagement service from an injected repository.
func NewService(repo repository.EngagementRepository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates an engagement service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(repository.NewEngagementRepository(db))
}

// Summary bundles a photo's engagement state. Lists are ordered by creation
// time ascending; a photo without engagement has zero counts and empty lists.
type Summary struct {
	NumLikes    int64            `json:"num_likes"`
	NumComments int64            `json:"num_comments"`
	Likes       []models.Like    `json:"likes"`
	Comments    []models.Comment `json:"comments"`
}

// Summarize computes the full engagement summary for a photo.
func (s *Service) Summarize(ctx context.Context, photoID uint) (*Summary, error) {
	_ = ctx
	numLikes, err := s.repo.CountLikes(photoID)
	if err != nil {
		return nil, err
	}
	numComments, err := s.repo.CountComments(photoID)
	if err != nil {
		return nil, err
	}
	likes, err := s.repo.ListLikes(photoID)
	if err != nil {
		return nil, err
	}
	comments, err := s.repo.ListComments(photoID)
	if err != nil {
		return nil, err
	}
	if likes == nil {
		likes = []models.Like{}
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return &Summary{
		NumLikes:    numLikes,
		NumComments: numComments,
		Likes:       likes,
		Comments:    comments,
	}, nil
}

// UserLiked reports whether userID has an active like on the photo.
func (s *Service) UserLiked(ctx context.Context, userID, photoID uint) (bool, error) {
	_ = ctx
	return s.repo.UserLiked(userID, photoID)
}

// AddComment validates and stores a new comment on a photo.
func (s *Service) AddComment(ctx context.Context, photoID, userID uint, text string) (*models.Comment, error) {
	_ = ctx
	comment := &models.Comment{
		PhotoID: photoID,
		UserID:  userID,
		Text:    text,
	}
	if err := comment.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// SetLike upserts the viewer's like state for a photo.
func (s *Service) SetLike(ctx context.Context, userID, photoID uint, liked bool) error {
	_ = ctx
	if userID == 0 || photoID == 0 {
		return errors.New("user_id and photo_id are required")
	}
	return s.repo.SetLike(userID, photoID, liked)
}
