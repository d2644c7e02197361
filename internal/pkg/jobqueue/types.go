package jobqueue

import (
	"encoding/json"
	"time"
)

// JobType defines the type of job
type JobType string

const (
	JobTypeReportNotification JobType = "report_notification"
	JobTypeMediaCleanup       JobType = "media_cleanup"
)

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

// Job represents a background job
type Job struct {
	ID          string                 `json:"id"`
	Type        JobType                `json:"type"`
	Status      JobStatus              `json:"status"`
	Payload     map[string]interface{} `json:"payload"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	ErrorMsg    string                 `json:"error_msg,omitempty"`
	RetryCount  int                    `json:"retry_count"`
	MaxRetries  int                    `json:"max_retries"`
}

// IsRetryable checks if a failed job has retry attempts left
func (j *Job) IsRetryable() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

// MarkAsProcessing updates the job status to processing
func (j *Job) MarkAsProcessing() {
	now := time.Now()
	j.Status = JobStatusProcessing
	j.UpdatedAt = now
	j.ProcessedAt = &now
}

// MarkAsCompleted updates the job status to completed
func (j *Job) MarkAsCompleted() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.UpdatedAt = now
	j.CompletedAt = &now
	j.ErrorMsg = ""
}

// MarkAsFailed updates the job status to failed
func (j *Job) MarkAsFailed(errorMsg string) {
	j.Status = JobStatusFailed
	j.UpdatedAt = time.Now()
	j.ErrorMsg = errorMsg
	j.RetryCount++
}

// MarkAsRetrying updates the job status to retrying
func (j *Job) MarkAsRetrying() {
	j.Status = JobStatusRetrying
	j.UpdatedAt = time.Now()
}

// ReportNotificationJobPayload contains the payload for admin report mails
type ReportNotificationJobPayload struct {
	PhotoID    uint     `json:"photo_id"`
	PhotoUUID  string   `json:"photo_uuid"`
	Caption    string   `json:"caption"`
	Message    string   `json:"message"`
	Token      string   `json:"token"`
	Recipients []string `json:"recipients"`
}

// ToMap converts the payload to a map for storage
func (p ReportNotificationJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"photo_id":   p.PhotoID,
		"photo_uuid": p.PhotoUUID,
		"caption":    p.Caption,
		"message":    p.Message,
		"token":      p.Token,
		"recipients": p.Recipients,
	}
}

// ReportNotificationJobPayloadFromMap creates a payload from a map
func ReportNotificationJobPayloadFromMap(data map[string]interface{}) (*ReportNotificationJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload ReportNotificationJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// MediaCleanupJobPayload contains the payload for stored-object cleanup jobs
type MediaCleanupJobPayload struct {
	PhotoID   uint   `json:"photo_id"`
	PhotoUUID string `json:"photo_uuid"`
	FileName  string `json:"file_name"`
}

// ToMap converts the payload to a map for storage
func (p MediaCleanupJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"photo_id":   p.PhotoID,
		"photo_uuid": p.PhotoUUID,
		"file_name":  p.FileName,
	}
}

// MediaCleanupJobPayloadFromMap creates a payload from a map
func MediaCleanupJobPayloadFromMap(data map[string]interface{}) (*MediaCleanupJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload MediaCleanupJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}
