package taskrpc

import (
	"time"

	"github.com/dmitrijs2005/taskio/internal/server/models"
)

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Status      string     `json:"status,omitempty"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// FromModel converts a stored task into its wire form.
func FromModel(t *models.Task) *Task {
	tags := []string(t.Tags)
	if tags == nil {
		tags = []string{}
	}
	return &Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Tags:        tags,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToModel is the inverse of FromModel; the owner is not carried on the wire.
func (t *Task) ToModel() *models.Task {
	return &models.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    models.Priority(t.Priority),
		Status:      models.Status(t.Status),
		Tags:        t.Tags,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupResponse struct {
	UserID string `json:"user_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type ProfileRequest struct{}

type ProfileResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Status      string     `json:"status,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

type CreateTaskResponse struct {
	TaskID string `json:"task_id"`
}

type GetTaskRequest struct {
	TaskID string `json:"task_id"`
}

type GetTaskResponse struct {
	Task *Task `json:"task"`
}

type ListTasksRequest struct {
	Status  string   `json:"status,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	TagMode string   `json:"tag_mode,omitempty"`
}

type ListTasksResponse struct {
	Tasks []*Task `json:"tasks"`
}

// UpdateTaskRequest is a partial update: nil fields are left unchanged and
// a non-nil Tags replaces the whole list.
type UpdateTaskRequest struct {
	TaskID       string     `json:"task_id"`
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	ClearDueDate bool       `json:"clear_due_date,omitempty"`
	Priority     *string    `json:"priority,omitempty"`
	Status       *string    `json:"status,omitempty"`
	Tags         *[]string  `json:"tags,omitempty"`
}

// Patch converts the request into a models.TaskPatch.
func (r *UpdateTaskRequest) Patch() models.TaskPatch {
	p := models.TaskPatch{
		Title:        r.Title,
		Description:  r.Description,
		DueDate:      r.DueDate,
		ClearDueDate: r.ClearDueDate,
		Tags:         r.Tags,
	}
	if r.Priority != nil {
		v := models.Priority(*r.Priority)
		p.Priority = &v
	}
	if r.Status != nil {
		v := models.Status(*r.Status)
		p.Status = &v
	}
	return p
}

type UpdateTaskResponse struct {
	Task *Task `json:"task"`
}

type DeleteTaskRequest struct {
	TaskID string `json:"task_id"`
}

type DeleteTaskResponse struct{}

type ToggleTaskRequest struct {
	TaskID string `json:"task_id"`
}

type ToggleTaskResponse struct {
	Task *Task `json:"task"`
}

type ListTagsRequest struct{}

type ListTagsResponse struct {
	Tags []string `json:"tags"`
}

type RequestUploadRequest struct {
	TaskID   string `json:"task_id"`
	FileName string `json:"file_name"`
}

type RequestUploadResponse struct {
	AttachmentID string `json:"attachment_id"`
	UploadURL    string `json:"upload_url"`
}

type CompleteUploadRequest struct {
	AttachmentID string `json:"attachment_id"`
}

type CompleteUploadResponse struct{}
