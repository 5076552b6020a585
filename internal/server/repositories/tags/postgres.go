package tags

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskio/internal/dbx"
	"github.com/dmitrijs2005/taskio/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// The no-op update makes RETURNING yield the existing row on conflict.
func (r *PostgresRepository) Upsert(ctx context.Context, name string) (string, error) {
	query := `
		INSERT INTO tags (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`
	var id string
	if err := r.db.QueryRowxContext(ctx, query, name).Scan(&id); err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) ClearTask(ctx context.Context, taskID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM task_tags WHERE task_id = $1`, taskID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Attach(ctx context.Context, taskID, tagID string) error {
	query := `INSERT INTO task_tags (task_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, taskID, tagID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListForTask(ctx context.Context, taskID string) ([]models.Tag, error) {
	query := `
		SELECT g.id, g.name
		FROM tags g
		JOIN task_tags tt ON tt.tag_id = g.id
		WHERE tt.task_id = $1
		ORDER BY g.name
	`
	var result []models.Tag
	if err := r.db.SelectContext(ctx, &result, query, taskID); err != nil {
		return nil, fmt.Errorf("failed to select tags: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) ListNamesForUser(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT DISTINCT g.name
		FROM tags g
		JOIN task_tags tt ON tt.tag_id = g.id
		JOIN tasks t ON t.id = tt.task_id
		WHERE t.user_id = $1
		ORDER BY g.name
	`
	result := []string{}
	if err := r.db.SelectContext(ctx, &result, query, userID); err != nil {
		return nil, fmt.Errorf("failed to select tag names: %w", err)
	}
	return result, nil
}
