package jobqueue

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/kuvashare/kuva/internal/pkg/env"
	"github.com/kuvashare/kuva/internal/pkg/mail"
)

// EnqueueReportNotificationJob enqueues an admin notification for a new report
func (q *Queue) EnqueueReportNotificationJob(payload ReportNotificationJobPayload) (*Job, error) {
	return q.EnqueueJob(JobTypeReportNotification, payload.ToMap())
}

// processReportNotificationJob sends the report mail to every admin recipient.
// A partial delivery failure fails the job so the retry covers all recipients;
// SendMail is idempotent enough for moderation mail.
func (q *Queue) processReportNotificationJob(ctx context.Context, job *Job) error {
	_ = ctx
	payload, err := ReportNotificationJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("failed to parse report notification payload: %w", err)
	}

	if len(payload.Recipients) == 0 {
		log.Info("[ReportNotificationJob] No recipients, nothing to send")
		return nil
	}

	subject := "Kuva Photo Report"
	body := reportMailBody(payload)

	var lastErr error
	for _, to := range payload.Recipients {
		if err := mail.SendMail(to, subject, body); err != nil {
			log.Errorf("[ReportNotificationJob] Failed to send report mail to %s: %v", to, err)
			lastErr = err
		}
	}
	return lastErr
}

func reportMailBody(p *ReportNotificationJobPayload) string {
	confirmURL := fmt.Sprintf("%s/api/photos/report/confirm?token=%s",
		env.GetEnv("APP_URL", "http://localhost:4000"), p.Token)

	return fmt.Sprintf(
		"<h2>A photo has been reported</h2>"+
			"<p>Photo: %s (%s)</p>"+
			"<p>Report message: %s</p>"+
			"<p>To remove the photo and resolve the report, open:</p>"+
			"<p><a href=\"%s\">%s</a></p>",
		p.Caption, p.PhotoUUID, p.Message, confirmURL, confirmURL,
	)
}
