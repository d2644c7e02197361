package moderation

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/kuvashare/kuva/app/models"
	"github.com/kuvashare/kuva/app/repository"
)

var (
	// ErrTokenRequired is returned by Confirm when no token was supplied.
	ErrTokenRequired = errors.New("token is required")
	// ErrInvalidToken is returned by Confirm when the token matches no open
	// report, including tokens that were already used once.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMessageRequired is returned by Report when the message is empty.
	ErrMessageRequired = errors.New("message is required")
)

// Notifier delivers a report notification to the given recipients. Delivery is
// fire-and-forget from the workflow's point of view; implementations must not
// block on mail transport.
type Notifier interface {
	NotifyReport(photo *models.Photo, message, token string, recipients []string) error
}

// Cleaner removes a deleted photo's stored media object. Like notification,
// cleanup runs out-of-band and its failure never reaches the caller.
type Cleaner interface {
	CleanupPhoto(photo *models.Photo) error
}

// Service drives the report/confirm lifecycle. A photo is "reported" exactly
// while a Report row for it exists; confirming via token removes the photo and
// the report together.
type Service struct {
	photos   repository.PhotoRepository
	reports  repository.ReportRepository
	users    repository.UserRepository
	notifier Notifier
	cleaner  Cleaner
}

// NewService creates a moderation service from injected dependencies.
// Notifier and cleaner may be nil, which disables the respective side effect.
func NewService(
	photos repository.PhotoRepository,
	reports repository.ReportRepository,
	users repository.UserRepository,
	notifier Notifier,
	cleaner Cleaner,
) *Service {
	return &Service{
		photos:   photos,
		reports:  reports,
		users:    users,
		notifier: notifier,
		cleaner:  cleaner,
	}
}

// NewServiceFromDB creates a moderation service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, notifier Notifier, cleaner Cleaner) *Service {
	repos := repository.NewRepositories(db)
	return NewService(repos.Photo, repos.Report, repos.User, notifier, cleaner)
}

// Report flags a photo for moderation. The first report against a photo
// creates the Report row with a fresh single-use token and notifies all
// administrators; any further report against the same photo is a no-op that
// still succeeds, so reporters cannot probe whether a photo was already
// flagged. Two concurrent first reports cannot both create a row: the insert
// is guarded by the unique photo constraint and the loser degrades to the
// already-reported branch.
func (s *Service) Report(ctx context.Context, photoUUID, message string) error {
	_ = ctx
	if message == "" {
		return ErrMessageRequired
	}

	photo, err := s.photos.GetByUUID(photoUUID)
	if err != nil {
		return err
	}

	report := &models.Report{
		PhotoID: photo.ID,
		Message: message,
	}
	created, report, err := s.reports.CreateIfAbsent(report)
	if err != nil {
		return err
	}
	if !created {
		log.Infof("[Moderation] Photo %s already reported, skipping notification", photo.UUID)
		return nil
	}

	s.notifyAdmins(photo, report)
	return nil
}

// Confirm resolves a report by its token: the referenced photo (with its
// comments and likes) and the report row are deleted as one atomic unit, so
// the token can never be replayed against a half-deleted state.
func (s *Service) Confirm(ctx context.Context, token string) error {
	_ = ctx
	if token == "" {
		return ErrTokenRequired
	}

	report, err := s.reports.ResolveByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	log.Infof("[Moderation] Report %d resolved, photo %d removed", report.ID, report.PhotoID)

	if s.cleaner != nil {
		if err := s.cleaner.CleanupPhoto(&report.Photo); err != nil {
			log.Errorf("[Moderation] Failed to schedule media cleanup for photo %d: %v", report.PhotoID, err)
		}
	}
	return nil
}

func (s *Service) notifyAdmins(photo *models.Photo, report *models.Report) {
	if s.notifier == nil {
		return
	}

	emails, err := s.users.ListAdminEmails()
	if err != nil {
		log.Errorf("[Moderation] Failed to resolve admin recipients: %v", err)
		return
	}
	if len(emails) == 0 {
		log.Info("[Moderation] No admins registered, no notification sent")
		return
	}

	if err := s.notifier.NotifyReport(photo, report.Message, report.Token, emails); err != nil {
		// Notification failure is logged, never surfaced to the reporter.
		log.Errorf("[Moderation] Failed to dispatch report notification: %v", err)
	}
}
