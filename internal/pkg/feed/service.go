package feed

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/kuvashare/kuva/app/models"
	"github.com/kuvashare/kuva/app/repository"
	"github.com/kuvashare/kuva/internal/pkg/engagement"
	"github.com/kuvashare/kuva/internal/pkg/geo"
)

// DefaultRadiusMeters matches the fixed discovery radius the service has always
// used. Override per deployment via FEED_RADIUS_METERS.
const DefaultRadiusMeters = 200.0

// ValidationError reports a malformed query input, attributed to the offending
// field. It is distinct from an empty result.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// Query describes a nearby-photos lookup.
type Query struct {
	Lat          float64 `validate:"latitude"`
	Lng          float64 `validate:"longitude"`
	RadiusMeters float64 `validate:"gte=0"`
	ByPopularity bool
}

// AnnotatedPhoto is a photo in range, carrying its engagement annotation and
// the spherical distance to the query point.
type AnnotatedPhoto struct {
	models.Photo
	NumLikes       int64            `json:"num_likes"`
	NumComments    int64            `json:"num_comments"`
	Comments       []models.Comment `json:"comments"`
	DistanceMeters float64          `json:"distance_meters"`
}

// Service selects photos within a spherical radius of a query point and
// annotates each with its engagement state.
type Service struct {
	photos        repository.PhotoRepository
	engagement    *engagement.Service
	defaultRadius float64
	validate      *validator.Validate
}

// NewService creates a feed service from injected dependencies.
func NewService(photos repository.PhotoRepository, eng *engagement.Service, defaultRadius float64) *Service {
	if defaultRadius <= 0 {
		defaultRadius = DefaultRadiusMeters
	}
	return &Service{
		photos:        photos,
		engagement:    eng,
		defaultRadius: defaultRadius,
		validate:      validator.New(),
	}
}

// NewServiceFromDB creates a feed service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, defaultRadius float64) *Service {
	return NewService(repository.NewPhotoRepository(db), engagement.NewServiceFromDB(db), defaultRadius)
}

// Feed returns all photos within the query radius, annotated with engagement
// data. Base order is distance ascending with photo ID as tiebreaker; with
// ByPopularity the result is stably re-sorted by like count descending, so
// equally-liked photos keep their base order. An empty region yields an empty
// slice, not an error.
func (s *Service) Feed(ctx context.Context, q Query) ([]AnnotatedPhoto, error) {
	if err := s.validateQuery(q); err != nil {
		return nil, err
	}

	radius := q.RadiusMeters
	if radius == 0 {
		radius = s.defaultRadius
	}

	minLat, maxLat, minLng, maxLng := geo.BoundingBox(q.Lat, q.Lng, radius)
	candidates, err := s.photos.GetInBounds(minLat, maxLat, minLng, maxLng)
	if err != nil {
		return nil, err
	}

	result := make([]AnnotatedPhoto, 0, len(candidates))
	for _, photo := range candidates {
		d := geo.Distance(q.Lat, q.Lng, photo.Latitude, photo.Longitude)
		if d > radius {
			continue
		}
		summary, err := s.engagement.Summarize(ctx, photo.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, AnnotatedPhoto{
			Photo:          photo,
			NumLikes:       summary.NumLikes,
			NumComments:    summary.NumComments,
			Comments:       summary.Comments,
			DistanceMeters: d,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].DistanceMeters != result[j].DistanceMeters {
			return result[i].DistanceMeters < result[j].DistanceMeters
		}
		return result[i].ID < result[j].ID
	})

	if q.ByPopularity {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].NumLikes > result[j].NumLikes
		})
	}

	return result, nil
}

func (s *Service) validateQuery(q Query) error {
	// validator's latitude/longitude tags reject NaN and infinities along with
	// out-of-range values, but check explicitly so the error names the field.
	if !geo.ValidLatitude(q.Lat) {
		return &ValidationError{Field: "lat", Message: "must be a finite value between -90 and 90"}
	}
	if !geo.ValidLongitude(q.Lng) {
		return &ValidationError{Field: "lng", Message: "must be a finite value between -180 and 180"}
	}
	if err := s.validate.Struct(q); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return &ValidationError{
				Field:   strings.ToLower(errs[0].Field()),
				Message: fmt.Sprintf("failed on the '%s' rule", errs[0].Tag()),
			}
		}
		return err
	}
	return nil
}
