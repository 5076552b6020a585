// Package attachments stores metadata of files attached to tasks.
package attachments

import (
	"context"

	"github.com/dmitrijs2005/taskio/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, a *models.Attachment) (*models.Attachment, error)
	Get(ctx context.Context, userID, id string) (*models.Attachment, error)
	ListForTask(ctx context.Context, userID, taskID string) ([]*models.Attachment, error)
	MarkUploaded(ctx context.Context, userID, id string) error
}
