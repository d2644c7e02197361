package jobqueue

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/kuvashare/kuva/internal/pkg/mediastore"
)

// EnqueueMediaCleanupJob enqueues deletion of a removed photo's stored object
func (q *Queue) EnqueueMediaCleanupJob(payload MediaCleanupJobPayload) (*Job, error) {
	return q.EnqueueJob(JobTypeMediaCleanup, payload.ToMap())
}

// processMediaCleanupJob deletes the media object belonging to a photo whose
// database records are already gone. Missing objects are treated as done.
func (q *Queue) processMediaCleanupJob(ctx context.Context, job *Job) error {
	payload, err := MediaCleanupJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("failed to parse media cleanup payload: %w", err)
	}

	if payload.FileName == "" {
		log.Infof("[MediaCleanupJob] Photo %s has no stored object, nothing to clean", payload.PhotoUUID)
		return nil
	}

	store, err := mediastore.Get()
	if err != nil {
		return fmt.Errorf("media store unavailable: %w", err)
	}

	if err := store.Delete(ctx, payload.FileName); err != nil {
		return fmt.Errorf("failed to delete media object %s: %w", payload.FileName, err)
	}

	log.Infof("[MediaCleanupJob] Removed media object %s for photo %s", payload.FileName, payload.PhotoUUID)
	return nil
}
