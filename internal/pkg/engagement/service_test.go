package engagement

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuvashare/kuva/app/models"
)

type fakeRepo struct {
	comments []models.Comment
	likes    map[uint]map[uint]bool // photoID -> userID -> liked
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{likes: map[uint]map[uint]bool{}}
}

func (f *fakeRepo) CreateComment(comment *models.Comment) error {
	comment.ID = uint(len(f.comments) + 1)
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakeRepo) SetLike(userID, photoID uint, liked bool) error {
	if f.likes[photoID] == nil {
		f.likes[photoID] = map[uint]bool{}
	}
	f.likes[photoID][userID] = liked
	return nil
}

func (f *fakeRepo) CountLikes(photoID uint) (int64, error) {
	var n int64
	for _, liked := range f.likes[photoID] {
		if liked {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) CountComments(photoID uint) (int64, error) {
	var n int64
	for _, c := range f.comments {
		if c.PhotoID == photoID {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) ListComments(photoID uint) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range f.comments {
		if c.PhotoID == photoID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListLikes(photoID uint) ([]models.Like, error) {
	var out []models.Like
	for userID, liked := range f.likes[photoID] {
		if liked {
			out = append(out, models.Like{UserID: userID, PhotoID: photoID, Liked: true})
		}
	}
	return out, nil
}

func (f *fakeRepo) UserLiked(userID, photoID uint) (bool, error) {
	return f.likes[photoID][userID], nil
}

func (f *fakeRepo) ListLikesByOwner(ownerID uint) ([]models.Like, error) { return nil, nil }
func (f *fakeRepo) ListCommentsByOwner(ownerID uint) ([]models.Comment, error) {
	return nil, nil
}

func TestSummarizeWithoutEngagement(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo())

	summary, err := svc.Summarize(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, summary.NumLikes)
	assert.Zero(t, summary.NumComments)
	assert.NotNil(t, summary.Likes)
	assert.NotNil(t, summary.Comments)
	assert.Empty(t, summary.Likes)
	assert.Empty(t, summary.Comments)
}

func TestAddComment(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := NewService(repo)

	comment, err := svc.AddComment(context.Background(), 1, 2, "great shot")
	require.NoError(t, err)
	assert.Equal(t, "great shot", comment.Text)

	count, err := repo.CountComments(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAddCommentRejectsInvalidText(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo())

	_, err := svc.AddComment(context.Background(), 1, 2, "")
	assert.Error(t, err)

	_, err = svc.AddComment(context.Background(), 1, 2, strings.Repeat("a", 201))
	assert.Error(t, err)

	_, err = svc.AddComment(context.Background(), 1, 2, strings.Repeat("a", 200))
	assert.NoError(t, err)
}

func TestSetLikeToggle(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.SetLike(ctx, 2, 1, true))
	liked, err := svc.UserLiked(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := repo.CountLikes(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Toggling off does not go below zero and clears the viewer state.
	require.NoError(t, svc.SetLike(ctx, 2, 1, false))
	liked, err = svc.UserLiked(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, liked)

	count, err = repo.CountLikes(1)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSetLikeRequiresIDs(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo())

	assert.Error(t, svc.SetLike(context.Background(), 0, 1, true))
	assert.Error(t, svc.SetLike(context.Background(), 1, 0, true))
}
