// Package tasks declares and implements owner-scoped storage of task rows.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskio/internal/server/models"
)

// Repository stores task rows. Every method that addresses an existing task
// takes the owner id and behaves as if foreign rows did not exist.
type Repository interface {
	// Create inserts the row and fills ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)

	// Get returns the task with its tag names, or common.ErrorNotFound.
	Get(ctx context.Context, userID, taskID string) (*models.Task, error)

	// List returns the owner's tasks newest first, with tag names attached.
	List(ctx context.Context, userID string, filter models.TaskFilter) ([]*models.Task, error)

	// Update applies the non-nil fields of patch and always bumps updated_at.
	// Tags of the returned task are not populated.
	Update(ctx context.Context, userID, taskID string, patch models.TaskPatch) (*models.Task, error)

	// Delete removes the row; associations cascade in the schema.
	Delete(ctx context.Context, userID, taskID string) error
}
