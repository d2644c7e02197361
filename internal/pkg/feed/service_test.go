package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuvashare/kuva/app/models"
	"github.com/kuvashare/kuva/internal/pkg/engagement"
)

type fakePhotoRepo struct {
	photos []models.Photo
}

func (f *fakePhotoRepo) Create(photo *models.Photo) error       { return nil }
func (f *fakePhotoRepo) GetByID(id uint) (*models.Photo, error) { return nil, nil }
func (f *fakePhotoRepo) GetByUUID(uuid string) (*models.Photo, error) {
	return nil, nil
}
func (f *fakePhotoRepo) GetByUserID(userID uint) ([]models.Photo, error) { return nil, nil }
func (f *fakePhotoRepo) Delete(id uint) error                            { return nil }
func (f *fakePhotoRepo) Count() (int64, error)                           { return int64(len(f.photos)), nil }

func (f *fakePhotoRepo) GetInBounds(minLat, maxLat, minLng, maxLng float64) ([]models.Photo, error) {
	var out []models.Photo
	for _, p := range f.photos {
		if p.Latitude >= minLat && p.Latitude <= maxLat && p.Longitude >= minLng && p.Longitude <= maxLng {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeEngagementRepo struct {
	likes    map[uint]int64
	comments map[uint][]models.Comment
}

func (f *fakeEngagementRepo) CreateComment(comment *models.Comment) error      { return nil }
func (f *fakeEngagementRepo) SetLike(userID, photoID uint, liked bool) error   { return nil }
func (f *fakeEngagementRepo) CountLikes(photoID uint) (int64, error)           { return f.likes[photoID], nil }
func (f *fakeEngagementRepo) UserLiked(userID, photoID uint) (bool, error)     { return false, nil }
func (f *fakeEngagementRepo) ListLikes(photoID uint) ([]models.Like, error)    { return nil, nil }
func (f *fakeEngagementRepo) ListLikesByOwner(ownerID uint) ([]models.Like, error) {
	return nil, nil
}
func (f *fakeEngagementRepo) ListCommentsByOwner(ownerID uint) ([]models.Comment, error) {
	return nil, nil
}

func (f *fakeEngagementRepo) CountComments(photoID uint) (int64, error) {
	return int64(len(f.comments[photoID])), nil
}

func (f *fakeEngagementRepo) ListComments(photoID uint) ([]models.Comment, error) {
	return f.comments[photoID], nil
}

func newTestService(photos []models.Photo, likes map[uint]int64) *Service {
	if likes == nil {
		likes = map[uint]int64{}
	}
	eng := engagement.NewService(&fakeEngagementRepo{likes: likes, comments: map[uint][]models.Comment{}})
	return NewService(&fakePhotoRepo{photos: photos}, eng, DefaultRadiusMeters)
}

func TestFeedRadiusFiltering(t *testing.T) {
	t.Parallel()

	// 0.001 deg latitude is ~111 m, 0.01 deg is ~1112 m.
	photos := []models.Photo{
		{ID: 1, Latitude: 52.5200, Longitude: 13.4050},
		{ID: 2, Latitude: 52.5210, Longitude: 13.4050},
		{ID: 3, Latitude: 52.5300, Longitude: 13.4050},
	}
	svc := newTestService(photos, nil)

	result, err := svc.Feed(context.Background(), Query{Lat: 52.5200, Lng: 13.4050})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, uint(1), result[0].ID)
	assert.Equal(t, uint(2), result[1].ID)
	assert.Less(t, result[0].DistanceMeters, result[1].DistanceMeters)
}

func TestFeedDistanceOrdering(t *testing.T) {
	t.Parallel()

	photos := []models.Photo{
		{ID: 1, Latitude: 52.52100, Longitude: 13.4050},
		{ID: 2, Latitude: 52.52000, Longitude: 13.4050},
		{ID: 3, Latitude: 52.52050, Longitude: 13.4050},
	}
	svc := newTestService(photos, nil)

	result, err := svc.Feed(context.Background(), Query{Lat: 52.52000, Lng: 13.4050})
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, uint(2), result[0].ID)
	assert.Equal(t, uint(3), result[1].ID)
	assert.Equal(t, uint(1), result[2].ID)
}

func TestFeedPopularityStableSort(t *testing.T) {
	t.Parallel()

	// IDs 1..4 ordered by distance; likes 5,5,3,1. The two equally-liked
	// photos must keep their distance order after the popularity re-sort.
	photos := []models.Photo{
		{ID: 1, Latitude: 52.52000, Longitude: 13.4050},
		{ID: 2, Latitude: 52.52020, Longitude: 13.4050},
		{ID: 3, Latitude: 52.52040, Longitude: 13.4050},
		{ID: 4, Latitude: 52.52060, Longitude: 13.4050},
	}
	likes := map[uint]int64{1: 3, 2: 5, 3: 1, 4: 5}
	svc := newTestService(photos, likes)

	result, err := svc.Feed(context.Background(), Query{Lat: 52.52000, Lng: 13.4050, ByPopularity: true})
	require.NoError(t, err)
	require.Len(t, result, 4)
	assert.Equal(t, uint(2), result[0].ID)
	assert.Equal(t, uint(4), result[1].ID)
	assert.Equal(t, uint(1), result[2].ID)
	assert.Equal(t, uint(3), result[3].ID)
}

func TestFeedEmptyRegion(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil, nil)

	result, err := svc.Feed(context.Background(), Query{Lat: 0, Lng: 0})
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestFeedValidatesCoordinates(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil, nil)

	_, err := svc.Feed(context.Background(), Query{Lat: 91, Lng: 0})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "lat", verr.Field)

	_, err = svc.Feed(context.Background(), Query{Lat: 0, Lng: -181})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "lng", verr.Field)

	_, err = svc.Feed(context.Background(), Query{Lat: 0, Lng: 0, RadiusMeters: -1})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "radiusmeters", verr.Field)
}

func TestFeedCustomRadius(t *testing.T) {
	t.Parallel()

	photos := []models.Photo{
		{ID: 1, Latitude: 52.5200, Longitude: 13.4050},
		{ID: 2, Latitude: 52.5300, Longitude: 13.4050}, // ~1112 m away
	}
	svc := newTestService(photos, nil)

	result, err := svc.Feed(context.Background(), Query{Lat: 52.5200, Lng: 13.4050, RadiusMeters: 2000})
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestFeedHighLatitudeInclusion(t *testing.T) {
	t.Parallel()

	// At 70N a longitude degree spans ~38 km, so a naive Euclidean degree
	// distance would wrongly exclude this neighbor.
	photos := []models.Photo{
		{ID: 1, Latitude: 70.0, Longitude: 25.0040},
	}
	svc := newTestService(photos, nil)

	result, err := svc.Feed(context.Background(), Query{Lat: 70.0, Lng: 25.0})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.InDelta(t, 152, result[0].DistanceMeters, 10)
}
