package activity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuvashare/kuva/app/models"
)

type fakeEngagementRepo struct {
	likes    []models.Like
	comments []models.Comment
}

func (f *fakeEngagementRepo) CreateComment(comment *models.Comment) error    { return nil }
func (f *fakeEngagementRepo) SetLike(userID, photoID uint, liked bool) error { return nil }
func (f *fakeEngagementRepo) CountLikes(photoID uint) (int64, error)         { return 0, nil }
func (f *fakeEngagementRepo) CountComments(photoID uint) (int64, error)      { return 0, nil }
func (f *fakeEngagementRepo) ListComments(photoID uint) ([]models.Comment, error) {
	return nil, nil
}
func (f *fakeEngagementRepo) ListLikes(photoID uint) ([]models.Like, error) { return nil, nil }
func (f *fakeEngagementRepo) UserLiked(userID, photoID uint) (bool, error)  { return false, nil }

func (f *fakeEngagementRepo) ListLikesByOwner(ownerID uint) ([]models.Like, error) {
	return f.likes, nil
}

func (f *fakeEngagementRepo) ListCommentsByOwner(ownerID uint) ([]models.Comment, error) {
	return f.comments, nil
}

func ts(minute int) time.Time {
	return time.Date(2025, 6, 1, 12, minute, 0, 0, time.UTC)
}

func TestFeedMergesLikesAndComments(t *testing.T) {
	t.Parallel()

	repo := &fakeEngagementRepo{
		likes: []models.Like{
			{ID: 1, PhotoID: 7, CreatedAt: ts(20)},
		},
		comments: []models.Comment{
			{ID: 2, PhotoID: 7, Text: "nice", CreatedAt: ts(10)},
			{ID: 3, PhotoID: 7, Text: "wow", CreatedAt: ts(30)},
		},
	}
	svc := NewService(repo)

	events, err := svc.Feed(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, EventTypeComment, events[0].Type)
	assert.Equal(t, uint(3), events[0].Comment.ID)
	assert.Equal(t, EventTypeLike, events[1].Type)
	assert.Equal(t, uint(1), events[1].Like.ID)
	assert.Equal(t, EventTypeComment, events[2].Type)
	assert.Equal(t, uint(2), events[2].Comment.ID)
}

func TestFeedEqualTimestampsAreDeterministic(t *testing.T) {
	t.Parallel()

	repo := &fakeEngagementRepo{
		likes: []models.Like{
			{ID: 5, PhotoID: 7, CreatedAt: ts(10)},
		},
		comments: []models.Comment{
			{ID: 9, PhotoID: 7, Text: "same moment", CreatedAt: ts(10)},
		},
	}
	svc := NewService(repo)

	first, err := svc.Feed(context.Background(), 1)
	require.NoError(t, err)
	second, err := svc.Feed(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Equal(t, first[0].Type, second[0].Type)
	assert.Equal(t, first[1].Type, second[1].Type)
	// Higher record ID wins the tie.
	assert.Equal(t, EventTypeComment, first[0].Type)
	assert.Equal(t, uint(9), first[0].Comment.ID)
}

func TestFeedEmptyOwner(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeEngagementRepo{})

	events, err := svc.Feed(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}
