package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/taskio/internal/agenda"
	"github.com/dmitrijs2005/taskio/internal/common"
	"github.com/dmitrijs2005/taskio/internal/dbx"
	"github.com/dmitrijs2005/taskio/internal/logging"
	"github.com/dmitrijs2005/taskio/internal/server/models"
	"github.com/dmitrijs2005/taskio/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// TaskService owns the task lifecycle. Every operation is scoped to the
// calling owner: a task of another user is reported exactly like a task
// that does not exist.
type TaskService struct {
	db          *sqlx.DB
	repomanager repomanager.RepositoryManager
	tags        *TagIndex
	logger      logging.Logger
}

func NewTaskService(db *sqlx.DB, m repomanager.RepositoryManager, tags *TagIndex, logger logging.Logger) *TaskService {
	return &TaskService{
		db:          db,
		repomanager: m,
		tags:        tags,
		logger:      logger.With("module", "tasks"),
	}
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return common.Validationf("title is required")
	}
	return nil
}

func validatePriority(p models.Priority) error {
	if !p.Valid() {
		return common.Validationf("invalid priority %q", p)
	}
	return nil
}

func validateStatus(st models.Status) error {
	if !st.Valid() {
		return common.Validationf("invalid status %q", st)
	}
	return nil
}

// validateOwner rejects a missing or malformed caller identity before any
// storage access.
func validateOwner(ownerID string) error {
	if _, err := uuid.Parse(ownerID); err != nil {
		return common.ErrorUnauthorized
	}
	return nil
}

func validateTaskID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.Validationf("malformed task id %q", id)
	}
	return nil
}

// CreateTask stores a new task with its tags and returns its id.
func (s *TaskService) CreateTask(ctx context.Context, ownerID string, in models.NewTask) (string, error) {
	if err := validateOwner(ownerID); err != nil {
		return "", err
	}
	if err := validateTitle(in.Title); err != nil {
		return "", err
	}
	if err := validatePriority(in.Priority); err != nil {
		return "", err
	}
	if err := validateStatus(in.Status); err != nil {
		return "", err
	}

	task := &models.Task{
		UserID:      ownerID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		DueDate:     models.CalendarDate(in.DueDate),
		Priority:    in.Priority,
		Status:      in.Status,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Tasks(tx).Create(ctx, task); err != nil {
			return err
		}
		return s.tags.attach(ctx, tx, task.ID, in.Tags)
	})
	if err != nil {
		return "", hide(ctx, s.logger, "create task", err)
	}

	s.logger.Debug(ctx, "task created", "user_id", ownerID, "task_id", task.ID)
	return task.ID, nil
}

// GetTask returns the owner's task with its tags.
func (s *TaskService) GetTask(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	if err := validateTaskID(taskID); err != nil {
		return nil, err
	}
	task, err := s.repomanager.Tasks(s.db).Get(ctx, ownerID, taskID)
	if err != nil {
		return nil, hideTask(ctx, s.logger, "get task", err)
	}
	return task, nil
}

// ListTasks returns the owner's tasks newest first. An empty or "all" status
// does not filter; tags match in filter.TagMode, "any" when unset.
func (s *TaskService) ListTasks(ctx context.Context, ownerID string, filter models.TaskFilter) ([]*models.Task, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	if filter.Status != models.StatusAll {
		if err := validateStatus(filter.Status); err != nil {
			return nil, err
		}
	}
	switch filter.TagMode {
	case "":
		filter.TagMode = models.TagModeAny
	case models.TagModeAny, models.TagModeAll:
	default:
		return nil, common.Validationf("invalid tag mode %q", filter.TagMode)
	}
	filter.Tags = agenda.NormalizeTags(filter.Tags)

	tasks, err := s.repomanager.Tasks(s.db).List(ctx, ownerID, filter)
	if err != nil {
		return nil, hide(ctx, s.logger, "list tasks", err)
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	return tasks, nil
}

func validatePatch(p models.TaskPatch) error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Priority != nil {
		if err := validatePriority(*p.Priority); err != nil {
			return err
		}
	}
	if p.Status != nil {
		if err := validateStatus(*p.Status); err != nil {
			return err
		}
	}
	return nil
}

// UpdateTask applies the supplied fields only. Tags, when present in the
// patch, replace the task's tags in the same transaction as the row update.
func (s *TaskService) UpdateTask(ctx context.Context, ownerID, taskID string, patch models.TaskPatch) (*models.Task, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	if err := validateTaskID(taskID); err != nil {
		return nil, err
	}
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
	}
	patch.DueDate = models.CalendarDate(patch.DueDate)

	updated, err := dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Task, error) {
		return s.update(ctx, tx, ownerID, taskID, patch)
	})
	if err != nil {
		return nil, hideTask(ctx, s.logger, "update task", err)
	}

	s.logger.Debug(ctx, "task updated", "user_id", ownerID, "task_id", taskID)
	return updated, nil
}

func (s *TaskService) update(ctx context.Context, tx dbx.DBTX, ownerID, taskID string, patch models.TaskPatch) (*models.Task, error) {
	repo := s.repomanager.Tasks(tx)
	if _, err := repo.Update(ctx, ownerID, taskID, patch); err != nil {
		return nil, err
	}
	if patch.Tags != nil {
		if err := s.tags.replace(ctx, tx, taskID, *patch.Tags); err != nil {
			return nil, err
		}
	}
	return repo.Get(ctx, ownerID, taskID)
}

// ToggleTaskStatus flips Completed back to To Do and anything else to Completed.
func (s *TaskService) ToggleTaskStatus(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	if err := validateTaskID(taskID); err != nil {
		return nil, err
	}

	updated, err := dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Task, error) {
		current, err := s.repomanager.Tasks(tx).Get(ctx, ownerID, taskID)
		if err != nil {
			return nil, err
		}
		next := current.Status.Toggled()
		return s.update(ctx, tx, ownerID, taskID, models.TaskPatch{Status: &next})
	})
	if err != nil {
		return nil, hideTask(ctx, s.logger, "toggle task", err)
	}
	return updated, nil
}

// DeleteTask removes the task. Its tag links and attachments go with it.
func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	if err := validateOwner(ownerID); err != nil {
		return err
	}
	if err := validateTaskID(taskID); err != nil {
		return err
	}
	if err := s.repomanager.Tasks(s.db).Delete(ctx, ownerID, taskID); err != nil {
		return hideTask(ctx, s.logger, "delete task", err)
	}
	s.logger.Debug(ctx, "task deleted", "user_id", ownerID, "task_id", taskID)
	return nil
}
