package models

// Tag is a globally shared tag name. Usage of a tag is owner-scoped through
// the tasks that reference it.
type Tag struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

// TaskTag is one edge of the task<->tag association.
type TaskTag struct {
	TaskID string `db:"task_id"`
	TagID  string `db:"tag_id"`
}
