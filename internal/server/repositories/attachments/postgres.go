package attachments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskio/internal/common"
	"github.com/dmitrijs2005/taskio/internal/dbx"
	"github.com/dmitrijs2005/taskio/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Attachment) (*models.Attachment, error) {
	query := `
		INSERT INTO attachments (task_id, user_id, file_name, storage_key, upload_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, a.TaskID, a.UserID, a.FileName, a.StorageKey, a.UploadStatus).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Attachment, error) {
	query := `
		SELECT id, task_id, user_id, file_name, storage_key, upload_status, created_at
		FROM attachments
		WHERE id = $1 AND user_id = $2
	`
	a := &models.Attachment{}
	if err := r.db.GetContext(ctx, a, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) ListForTask(ctx context.Context, userID, taskID string) ([]*models.Attachment, error) {
	query := `
		SELECT id, task_id, user_id, file_name, storage_key, upload_status, created_at
		FROM attachments
		WHERE task_id = $1 AND user_id = $2
		ORDER BY created_at
	`
	var result []*models.Attachment
	if err := r.db.SelectContext(ctx, &result, query, taskID, userID); err != nil {
		return nil, fmt.Errorf("failed to select attachments: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) MarkUploaded(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE attachments SET upload_status = $1 WHERE id = $2 AND user_id = $3`,
		models.UploadCompleted, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
