package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskio/internal/common"
	"github.com/dmitrijs2005/taskio/internal/dbx"
	"github.com/dmitrijs2005/taskio/internal/logging"
	"github.com/dmitrijs2005/taskio/internal/server/models"
	"github.com/dmitrijs2005/taskio/internal/server/repositories/attachments"
	"github.com/dmitrijs2005/taskio/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/taskio/internal/server/repositories/tags"
	"github.com/dmitrijs2005/taskio/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskio/internal/server/repositories/users"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Owner ids handed to the services by the identity layer.
const (
	userA = "6a0d1f9e-3c1b-4f0e-9b7a-2d5c8e4f1a01"
	userB = "6a0d1f9e-3c1b-4f0e-9b7a-2d5c8e4f1a02"
)

// memStore is an in-memory stand-in for the database behind every
// repository. It mirrors the schema's uniqueness, ownership and cascade
// rules; transactions are driven through sqlmock separately.
type memStore struct {
	mu          sync.Mutex
	clock       time.Time
	users       map[string]*models.User
	tokens      map[string]*models.RefreshToken
	tasks       map[string]*models.Task
	tagIDs      map[string]string
	tagNames    map[string]string
	links       map[string]map[string]struct{}
	attachments map[string]*models.Attachment
	fail        map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		clock:       time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC),
		users:       map[string]*models.User{},
		tokens:      map[string]*models.RefreshToken{},
		tasks:       map[string]*models.Task{},
		tagIDs:      map[string]string{},
		tagNames:    map[string]string{},
		links:       map[string]map[string]struct{}{},
		attachments: map[string]*models.Attachment{},
		fail:        map[string]error{},
	}
}

func (s *memStore) failure(op string) error { return s.fail[op] }

// tick advances the fake clock so creation order is observable.
func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memStore) tagsOf(taskID string) []string {
	names := []string{}
	for id := range s.links[taskID] {
		names = append(names, s.tagNames[id])
	}
	sort.Strings(names)
	return names
}

func (s *memStore) snapshot(t *models.Task) *models.Task {
	cp := *t
	cp.Tags = s.tagsOf(t.ID)
	return &cp
}

type fakeTasks struct{ *memStore }

func (f fakeTasks) Create(_ context.Context, t *models.Task) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("tasks.Create"); err != nil {
		return nil, err
	}
	t.ID = uuid.NewString()
	t.CreatedAt = f.tick()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	f.tasks[t.ID] = &cp
	return t, nil
}

func (f fakeTasks) Get(_ context.Context, userID, taskID string) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return f.snapshot(t), nil
}

func (f fakeTasks) List(_ context.Context, userID string, filter models.TaskFilter) ([]*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("tasks.List"); err != nil {
		return nil, err
	}
	var out []*models.Task
	for _, t := range f.tasks {
		if t.UserID != userID {
			continue
		}
		if filter.Status != "" && filter.Status != models.StatusAll && t.Status != filter.Status {
			continue
		}
		if len(filter.Tags) > 0 {
			have := map[string]bool{}
			for _, n := range f.tagsOf(t.ID) {
				have[n] = true
			}
			matched := 0
			for _, n := range filter.Tags {
				if have[n] {
					matched++
				}
			}
			if filter.TagMode == models.TagModeAll && matched != len(filter.Tags) {
				continue
			}
			if filter.TagMode != models.TagModeAll && matched == 0 {
				continue
			}
		}
		out = append(out, f.snapshot(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f fakeTasks) Update(_ context.Context, userID, taskID string, p models.TaskPatch) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	// same rule as the SQL: GREATEST(now(), updated_at + 1µs), with a frozen clock
	next := t.UpdatedAt.Add(time.Microsecond)
	if f.clock.After(next) {
		next = f.clock
	}
	t.UpdatedAt = next
	cp := *t
	return &cp, nil
}

func (f fakeTasks) Delete(_ context.Context, userID, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[taskID]
	if !ok || t.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.tasks, taskID)
	delete(f.links, taskID)
	for id, a := range f.attachments {
		if a.TaskID == taskID {
			delete(f.attachments, id)
		}
	}
	return nil
}

type fakeTags struct{ *memStore }

func (f fakeTags) Upsert(_ context.Context, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("tags.Upsert"); err != nil {
		return "", err
	}
	if id, ok := f.tagIDs[name]; ok {
		return id, nil
	}
	id := uuid.NewString()
	f.tagIDs[name] = id
	f.tagNames[id] = name
	return id, nil
}

func (f fakeTags) ClearTask(_ context.Context, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.links, taskID)
	return nil
}

func (f fakeTags) Attach(_ context.Context, taskID, tagID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("tags.Attach"); err != nil {
		return err
	}
	if f.links[taskID] == nil {
		f.links[taskID] = map[string]struct{}{}
	}
	f.links[taskID][tagID] = struct{}{}
	return nil
}

func (f fakeTags) ListForTask(_ context.Context, taskID string) ([]models.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Tag
	for _, n := range f.tagsOf(taskID) {
		out = append(out, models.Tag{ID: f.tagIDs[n], Name: n})
	}
	return out, nil
}

func (f fakeTags) ListNamesForUser(_ context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("tags.ListNamesForUser"); err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var out []string
	for id, t := range f.tasks {
		if t.UserID != userID {
			continue
		}
		for _, n := range f.tagsOf(id) {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

type fakeUsers struct{ *memStore }

func (f fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.users {
		if e.Email == u.Email || e.UserName == u.UserName {
			return nil, common.ErrAlreadyExists
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = f.clock
	cp := *u
	f.users[u.ID] = &cp
	return u, nil
}

func (f fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("users.GetByEmail"); err != nil {
		return nil, err
	}
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeTokens struct{ *memStore }

func (f fakeTokens) Create(_ context.Context, userID, token string, validity time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failure("tokens.Create"); err != nil {
		return err
	}
	f.tokens[token] = &models.RefreshToken{ID: uuid.NewString(), UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (f fakeTokens) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (f fakeTokens) Delete(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tokens[token]; !ok {
		return common.ErrorNotFound
	}
	delete(f.tokens, token)
	return nil
}

func (f fakeTokens) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k, t := range f.tokens {
		if t.Expires.Before(now) {
			delete(f.tokens, k)
			n++
		}
	}
	return n, nil
}

type fakeAttachments struct{ *memStore }

func (f fakeAttachments) Create(_ context.Context, a *models.Attachment) (*models.Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = uuid.NewString()
	a.CreatedAt = f.tick()
	cp := *a
	f.attachments[a.ID] = &cp
	return a, nil
}

func (f fakeAttachments) Get(_ context.Context, userID, id string) (*models.Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.attachments[id]
	if !ok || a.UserID != userID {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

func (f fakeAttachments) ListForTask(_ context.Context, userID, taskID string) ([]*models.Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Attachment
	for _, a := range f.attachments {
		if a.TaskID == taskID && a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f fakeAttachments) MarkUploaded(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.attachments[id]
	if !ok || a.UserID != userID {
		return common.ErrorNotFound
	}
	a.UploadStatus = models.UploadCompleted
	return nil
}

type fakeRepoManager struct{ store *memStore }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return fakeUsers{m.store} }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return fakeTokens{m.store}
}
func (m *fakeRepoManager) Tasks(dbx.DBTX) tasks.Repository { return fakeTasks{m.store} }
func (m *fakeRepoManager) Tags(dbx.DBTX) tags.Repository   { return fakeTags{m.store} }
func (m *fakeRepoManager) Attachments(dbx.DBTX) attachments.Repository {
	return fakeAttachments{m.store}
}

func newSQLMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

// expectTx registers n committed transactions.
func expectTx(mock sqlmock.Sqlmock, n int) {
	for i := 0; i < n; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}
}

type taskEnv struct {
	store *memStore
	mock  sqlmock.Sqlmock
	tasks *TaskService
	tags  *TagIndex
}

func newTaskEnv(t *testing.T) *taskEnv {
	t.Helper()
	db, mock := newSQLMockDB(t)
	store := newMemStore()
	rm := &fakeRepoManager{store: store}
	ti := NewTagIndex(db, rm, logging.Nop{})
	return &taskEnv{
		store: store,
		mock:  mock,
		tasks: NewTaskService(db, rm, ti, logging.Nop{}),
		tags:  ti,
	}
}
