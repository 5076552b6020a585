package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/taskio/internal/common"
	"github.com/dmitrijs2005/taskio/internal/dbx"
	"github.com/dmitrijs2005/taskio/internal/server/models"
	"github.com/lib/pq"
)

// PostgresRepository implements task storage over a dbx.DBTX (*sqlx.DB or *sqlx.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const rowColumns = "id, user_id, title, description, due_date, priority, status, created_at, updated_at"

// Tag names are folded into one sorted array per task; tasks without tags
// get an empty array instead of NULL.
func selectWithTags() sq.SelectBuilder {
	return psql.Select(
		"t.id", "t.user_id", "t.title", "t.description", "t.due_date", "t.priority", "t.status",
		"t.created_at", "t.updated_at",
		"COALESCE(array_agg(g.name ORDER BY g.name) FILTER (WHERE g.name IS NOT NULL), '{}') AS tags",
	).
		From("tasks t").
		LeftJoin("task_tags tt ON tt.task_id = t.id").
		LeftJoin("tags g ON g.id = tt.tag_id").
		GroupBy("t.id")
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		INSERT INTO tasks (user_id, title, description, due_date, priority, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		task.UserID, task.Title, task.Description, task.DueDate, string(task.Priority), string(task.Status),
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, taskID string) (*models.Task, error) {
	query, args, err := selectWithTags().
		Where(sq.Eq{"t.id": taskID, "t.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	task := &models.Task{}
	if err := r.db.GetContext(ctx, task, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, filter models.TaskFilter) ([]*models.Task, error) {
	b := selectWithTags().Where(sq.Eq{"t.user_id": userID})

	if filter.Status != "" && filter.Status != models.StatusAll {
		b = b.Where(sq.Eq{"t.status": string(filter.Status)})
	}

	if len(filter.Tags) > 0 {
		switch filter.TagMode {
		case models.TagModeAll:
			b = b.Where(sq.Expr(
				`t.id IN (SELECT ft.task_id FROM task_tags ft JOIN tags fg ON fg.id = ft.tag_id
					WHERE fg.name = ANY(?) GROUP BY ft.task_id HAVING COUNT(DISTINCT fg.name) = ?)`,
				pq.Array(filter.Tags), len(filter.Tags)))
		default:
			b = b.Where(sq.Expr(
				`t.id IN (SELECT ft.task_id FROM task_tags ft JOIN tags fg ON fg.id = ft.tag_id
					WHERE fg.name = ANY(?))`,
				pq.Array(filter.Tags)))
		}
	}

	query, args, err := b.OrderBy("t.created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var result []*models.Task
	if err := r.db.SelectContext(ctx, &result, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, taskID string, patch models.TaskPatch) (*models.Task, error) {
	set := map[string]any{
		// strictly increasing even when two writes land within clock resolution
		"updated_at": sq.Expr("GREATEST(now(), updated_at + interval '1 microsecond')"),
	}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.ClearDueDate {
		set["due_date"] = nil
	} else if patch.DueDate != nil {
		set["due_date"] = *patch.DueDate
	}
	if patch.Priority != nil {
		set["priority"] = string(*patch.Priority)
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}

	query, args, err := psql.Update("tasks").
		SetMap(set).
		Where(sq.Eq{"id": taskID, "user_id": userID}).
		Suffix("RETURNING " + rowColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	task := &models.Task{}
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(task); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, taskID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, taskID, userID)
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
