// Package models defines server-side data models persisted in the database.
package models

import (
	"time"

	"github.com/lib/pq"
)

// Priority is one of a small closed set. The zero value means "not set".
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Valid reports whether p is unset or a known priority.
func (p Priority) Valid() bool {
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status is the task workflow state. The zero value means "not set".
type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// StatusAll is accepted by list filters and means "no status restriction".
const StatusAll Status = "all"

// Valid reports whether s is unset or a known status.
func (s Status) Valid() bool {
	switch s {
	case "", StatusToDo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Toggled returns the status a checkbox click produces: Completed tasks go
// back to To Do, everything else becomes Completed.
func (s Status) Toggled() Status {
	if s == StatusCompleted {
		return StatusToDo
	}
	return StatusCompleted
}

// Task is a single owner-scoped task row. Tags is filled by joining through
// task_tags and is not a column of its own.
type Task struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	DueDate     *time.Time     `db:"due_date"`
	Priority    Priority       `db:"priority"`
	Status      Status         `db:"status"`
	Tags        pq.StringArray `db:"tags"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// CalendarDate pins a due date to midnight UTC of its own calendar day.
// Due dates carry no time of day, so every reader compares them by the
// UTC date. Nil stays nil.
func CalendarDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &day
}

// NewTask carries the caller-supplied fields of a task being created.
type NewTask struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    Priority
	Status      Status
	Tags        []string
}

// TaskPatch is a partial update. Nil fields are left unchanged.
// ClearDueDate removes the due date and wins over DueDate.
// Tags, when non-nil, replaces the whole tag list (an empty slice clears it).
type TaskPatch struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	Priority     *Priority
	Status       *Status
	Tags         *[]string
}

// Empty reports whether the patch changes no column of the task row.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil && !p.ClearDueDate &&
		p.Priority == nil && p.Status == nil
}

// TagMode selects how a tag filter matches a task's tag set.
type TagMode string

const (
	// TagModeAny matches tasks carrying at least one of the names.
	TagModeAny TagMode = "any"
	// TagModeAll matches tasks carrying every one of the names.
	TagModeAll TagMode = "all"
)

// TaskFilter restricts ListTasks. Zero value lists everything.
type TaskFilter struct {
	Status  Status
	Tags    []string
	TagMode TagMode
}
