// Package tags stores the global tag vocabulary and task/tag associations.
package tags

import (
	"context"

	"github.com/dmitrijs2005/taskio/internal/server/models"
)

// Repository manages tag rows and the task_tags join table.
type Repository interface {
	// Upsert returns the id of the tag with the given name, creating it when
	// absent. Concurrent calls with the same name yield the same id.
	Upsert(ctx context.Context, name string) (string, error)

	// ClearTask removes every association of the task.
	ClearTask(ctx context.Context, taskID string) error

	// Attach links a tag to a task; an existing link is left as is.
	Attach(ctx context.Context, taskID, tagID string) error

	// ListForTask returns the task's tags ordered by name.
	ListForTask(ctx context.Context, taskID string) ([]models.Tag, error)

	// ListNamesForUser returns distinct tag names used on the user's tasks, sorted.
	ListNamesForUser(ctx context.Context, userID string) ([]string, error)
}
