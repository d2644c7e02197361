package activity

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/kuvashare/kuva/app/models"
	"github.com/kuvashare/kuva/app/repository"
)

// EventType discriminates the two kinds of activity events.
type EventType string

const (
	EventTypeLike    EventType = "like"
	EventTypeComment EventType = "comment"
)

// Event is a tagged union over likes and comments. Exactly one of Like or
// Comment is set, matching Type; Timestamp is the sort key.
type Event struct {
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Like      *models.Like    `json:"like,omitempty"`
	Comment   *models.Comment `json:"comment,omitempty"`
}

// Service merges likes and comments across all photos owned by a user into a
// single reverse-chronological feed.
type Service struct {
	repo repository.EngagementRepository
}

// NewService creates an activity service from an injected repository.
func NewService(repo repository.EngagementRepository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates an activity service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(repository.NewEngagementRepository(db))
}

// Feed returns every like and comment on ownerID's photos, most recent first.
// The aggregator is keyed purely by photo ownership; ownerID does not have to
// be the requesting actor. An owner with no photos or no engagement yields an
// empty slice.
func (s *Service) Feed(ctx context.Context, ownerID uint) ([]Event, error) {
	_ = ctx
	likes, err := s.repo.ListLikesByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	comments, err := s.repo.ListCommentsByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(likes)+len(comments))
	for i := range likes {
		events = append(events, Event{
			Type:      EventTypeLike,
			Timestamp: likes[i].CreatedAt,
			Like:      &likes[i],
		})
	}
	for i := range comments {
		events = append(events, Event{
			Type:      EventTypeComment,
			Timestamp: comments[i].CreatedAt,
			Comment:   &comments[i],
		})
	}

	// Descending by timestamp; equal timestamps fall back to record ID and
	// type so repeated calls over unchanged data return the same order.
	sort.SliceStable(events, func(i, j int) bool {
		ti, tj := events[i].Timestamp, events[j].Timestamp
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		idI, idJ := eventRecordID(events[i]), eventRecordID(events[j])
		if idI != idJ {
			return idI > idJ
		}
		return events[i].Type < events[j].Type
	})

	return events, nil
}

func eventRecordID(e Event) uint {
	if e.Like != nil {
		return e.Like.ID
	}
	if e.Comment != nil {
		return e.Comment.ID
	}
	return 0
}
