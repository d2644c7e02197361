package jobqueue

import (
	"github.com/kuvashare/kuva/app/models"
)

// ReportNotifier implements moderation.Notifier by enqueuing a background
// mail job, keeping the reporting request free of mail-transport latency.
type ReportNotifier struct {
	queue *Queue
}

// NewReportNotifier creates a notifier backed by the given queue.
func NewReportNotifier(queue *Queue) *ReportNotifier {
	return &ReportNotifier{queue: queue}
}

func (n *ReportNotifier) NotifyReport(photo *models.Photo, message, token string, recipients []string) error {
	_, err := n.queue.EnqueueReportNotificationJob(ReportNotificationJobPayload{
		PhotoID:    photo.ID,
		PhotoUUID:  photo.UUID,
		Caption:    photo.Caption,
		Message:    message,
		Token:      token,
		Recipients: recipients,
	})
	return err
}

// MediaCleaner implements moderation.Cleaner by enqueuing object deletion for
// a photo whose database records were already removed.
type MediaCleaner struct {
	queue *Queue
}

// NewMediaCleaner creates a cleaner backed by the given queue.
func NewMediaCleaner(queue *Queue) *MediaCleaner {
	return &MediaCleaner{queue: queue}
}

func (c *MediaCleaner) CleanupPhoto(photo *models.Photo) error {
	_, err := c.queue.EnqueueMediaCleanupJob(MediaCleanupJobPayload{
		PhotoID:   photo.ID,
		PhotoUUID: photo.UUID,
		FileName:  photo.FileName,
	})
	return err
}
