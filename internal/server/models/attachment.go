package models

import "time"

// Upload states of an attachment.
const (
	UploadPending   = "pending"
	UploadCompleted = "completed"
)

// Attachment describes a file attached to a task. The content itself is
// stored in object storage under StorageKey.
type Attachment struct {
	ID           string    `db:"id"`
	TaskID       string    `db:"task_id"`
	UserID       string    `db:"user_id"`
	FileName     string    `db:"file_name"`
	StorageKey   string    `db:"storage_key"`
	UploadStatus string    `db:"upload_status"`
	CreatedAt    time.Time `db:"created_at"`
}

// UploadTicket instructs the client to upload a file using a presigned URL.
type UploadTicket struct {
	AttachmentID string
	URL          string
}
