package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/taskio/internal/agenda"
	"github.com/dmitrijs2005/taskio/internal/common"
	"github.com/dmitrijs2005/taskio/internal/dbx"
	"github.com/dmitrijs2005/taskio/internal/logging"
	"github.com/dmitrijs2005/taskio/internal/server/repositories/repomanager"
	"github.com/jmoiron/sqlx"
)

// TagIndex maintains the many-to-many relation between tasks and the global
// tag vocabulary. Tag identity is shared by everyone; which tags a user
// "has" is always derived from that user's tasks.
type TagIndex struct {
	db          *sqlx.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewTagIndex(db *sqlx.DB, m repomanager.RepositoryManager, logger logging.Logger) *TagIndex {
	return &TagIndex{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "tags"),
	}
}

// ResolveOrCreateTag returns the id of the named tag, creating it on first use.
func (s *TagIndex) ResolveOrCreateTag(ctx context.Context, name string) (string, error) {
	id, err := s.resolve(ctx, s.db, name)
	if err != nil {
		return "", hide(ctx, s.logger, "resolve tag", err)
	}
	return id, nil
}

// SetTaskTags replaces the task's tags with names in a transaction of its own.
func (s *TagIndex) SetTaskTags(ctx context.Context, taskID string, names []string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.replace(ctx, tx, taskID, names)
	})
	if err != nil {
		return hide(ctx, s.logger, "set task tags", err)
	}
	return nil
}

// GetTagsForTask returns the task's tag names sorted by name.
func (s *TagIndex) GetTagsForTask(ctx context.Context, taskID string) ([]string, error) {
	tags, err := s.repomanager.Tags(s.db).ListForTask(ctx, taskID)
	if err != nil {
		return nil, hide(ctx, s.logger, "get task tags", err)
	}
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names, nil
}

// ListAllTagNames returns the distinct tag names used on ownerID's tasks.
func (s *TagIndex) ListAllTagNames(ctx context.Context, ownerID string) ([]string, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	names, err := s.repomanager.Tags(s.db).ListNamesForUser(ctx, ownerID)
	if err != nil {
		return nil, hide(ctx, s.logger, "list tag names", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (s *TagIndex) resolve(ctx context.Context, db dbx.DBTX, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", common.Validationf("tag name is required")
	}
	return s.repomanager.Tags(db).Upsert(ctx, name)
}

// attach links normalized names to the task without touching existing links.
func (s *TagIndex) attach(ctx context.Context, tx dbx.DBTX, taskID string, names []string) error {
	repo := s.repomanager.Tags(tx)
	for _, name := range agenda.NormalizeTags(names) {
		tagID, err := s.resolve(ctx, tx, name)
		if err != nil {
			return err
		}
		if err := repo.Attach(ctx, taskID, tagID); err != nil {
			return err
		}
	}
	return nil
}

// replace must run inside the caller's transaction.
func (s *TagIndex) replace(ctx context.Context, tx dbx.DBTX, taskID string, names []string) error {
	if err := s.repomanager.Tags(tx).ClearTask(ctx, taskID); err != nil {
		return err
	}
	return s.attach(ctx, tx, taskID, names)
}
