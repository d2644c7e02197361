package moderation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kuvashare/kuva/app/models"
)

type fakePhotoRepo struct {
	photos map[string]*models.Photo
}

func (f *fakePhotoRepo) Create(photo *models.Photo) error       { return nil }
func (f *fakePhotoRepo) GetByID(id uint) (*models.Photo, error) { return nil, gorm.ErrRecordNotFound }
func (f *fakePhotoRepo) GetByUserID(userID uint) ([]models.Photo, error) {
	return nil, nil
}
func (f *fakePhotoRepo) GetInBounds(minLat, maxLat, minLng, maxLng float64) ([]models.Photo, error) {
	return nil, nil
}
func (f *fakePhotoRepo) Delete(id uint) error  { return nil }
func (f *fakePhotoRepo) Count() (int64, error) { return int64(len(f.photos)), nil }

func (f *fakePhotoRepo) GetByUUID(uuid string) (*models.Photo, error) {
	photo, ok := f.photos[uuid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return photo, nil
}

type fakeReportRepo struct {
	byPhoto map[uint]*models.Report
	byToken map[string]*models.Report
	nextID  uint
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{
		byPhoto: map[uint]*models.Report{},
		byToken: map[string]*models.Report{},
	}
}

func (f *fakeReportRepo) CreateIfAbsent(report *models.Report) (bool, *models.Report, error) {
	if existing, ok := f.byPhoto[report.PhotoID]; ok {
		return false, existing, nil
	}
	f.nextID++
	report.ID = f.nextID
	if report.Token == "" {
		if err := report.GenerateToken(); err != nil {
			return false, nil, err
		}
	}
	f.byPhoto[report.PhotoID] = report
	f.byToken[report.Token] = report
	return true, report, nil
}

func (f *fakeReportRepo) GetByPhotoID(photoID uint) (*models.Report, error) {
	report, ok := f.byPhoto[photoID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return report, nil
}

func (f *fakeReportRepo) GetByToken(token string) (*models.Report, error) {
	report, ok := f.byToken[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return report, nil
}

func (f *fakeReportRepo) ResolveByToken(token string) (*models.Report, error) {
	report, ok := f.byToken[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	delete(f.byToken, token)
	delete(f.byPhoto, report.PhotoID)
	return report, nil
}

func (f *fakeReportRepo) Count() (int64, error) { return int64(len(f.byPhoto)), nil }

type fakeUserRepo struct {
	adminEmails []string
}

func (f *fakeUserRepo) Create(user *models.User) error        { return nil }
func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) { return nil, gorm.ErrRecordNotFound }
func (f *fakeUserRepo) Update(user *models.User) error        { return nil }
func (f *fakeUserRepo) ListAdminEmails() ([]string, error)    { return f.adminEmails, nil }
func (f *fakeUserRepo) Count() (int64, error)                 { return 0, nil }

type fakeNotifier struct {
	calls      int
	recipients []string
	token      string
}

func (f *fakeNotifier) NotifyReport(photo *models.Photo, message, token string, recipients []string) error {
	f.calls++
	f.recipients = recipients
	f.token = token
	return nil
}

type fakeCleaner struct {
	cleaned []uint
}

func (f *fakeCleaner) CleanupPhoto(photo *models.Photo) error {
	f.cleaned = append(f.cleaned, photo.ID)
	return nil
}

func newTestService() (*Service, *fakeReportRepo, *fakeNotifier, *fakeCleaner) {
	photos := &fakePhotoRepo{photos: map[string]*models.Photo{
		"photo-uuid-1": {ID: 1, UUID: "photo-uuid-1", UserID: 10},
	}}
	reports := newFakeReportRepo()
	users := &fakeUserRepo{adminEmails: []string{"admin@kuva.com"}}
	notifier := &fakeNotifier{}
	cleaner := &fakeCleaner{}
	return NewService(photos, reports, users, notifier, cleaner), reports, notifier, cleaner
}

func TestReportCreatesAndNotifiesOnce(t *testing.T) {
	t.Parallel()

	svc, reports, notifier, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Report(ctx, "photo-uuid-1", "inappropriate"))
	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, []string{"admin@kuva.com"}, notifier.recipients)
	assert.NotEmpty(t, notifier.token)

	count, err := reports.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Second report succeeds but does not create or notify again.
	require.NoError(t, svc.Report(ctx, "photo-uuid-1", "still bad"))
	assert.Equal(t, 1, notifier.calls)
	count, err = reports.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestReportRequiresMessage(t *testing.T) {
	t.Parallel()

	svc, _, notifier, _ := newTestService()

	err := svc.Report(context.Background(), "photo-uuid-1", "")
	assert.ErrorIs(t, err, ErrMessageRequired)
	assert.Zero(t, notifier.calls)
}

func TestReportUnknownPhoto(t *testing.T) {
	t.Parallel()

	svc, _, notifier, _ := newTestService()

	err := svc.Report(context.Background(), "no-such-photo", "bad")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Zero(t, notifier.calls)
}

func TestReportWithoutAdminsStillSucceeds(t *testing.T) {
	t.Parallel()

	photos := &fakePhotoRepo{photos: map[string]*models.Photo{
		"photo-uuid-1": {ID: 1, UUID: "photo-uuid-1"},
	}}
	reports := newFakeReportRepo()
	users := &fakeUserRepo{}
	notifier := &fakeNotifier{}
	svc := NewService(photos, reports, users, notifier, nil)

	require.NoError(t, svc.Report(context.Background(), "photo-uuid-1", "bad"))
	assert.Zero(t, notifier.calls)
}

func TestConfirmIsSingleUse(t *testing.T) {
	t.Parallel()

	svc, reports, notifier, cleaner := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Report(ctx, "photo-uuid-1", "bad"))
	token := notifier.token

	require.NoError(t, svc.Confirm(ctx, token))
	assert.Equal(t, []uint{1}, cleaner.cleaned)

	count, err := reports.Count()
	require.NoError(t, err)
	assert.Zero(t, count)

	// Replaying the token finds nothing.
	err = svc.Confirm(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestConfirmTokenValidation(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestService()
	ctx := context.Background()

	assert.ErrorIs(t, svc.Confirm(ctx, ""), ErrTokenRequired)
	assert.ErrorIs(t, svc.Confirm(ctx, "not-a-real-token"), ErrInvalidToken)
}
