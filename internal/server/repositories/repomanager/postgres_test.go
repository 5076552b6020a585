package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskio/internal/server/repositories/attachments"
	"github.com/dmitrijs2005/taskio/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/taskio/internal/server/repositories/tags"
	"github.com/dmitrijs2005/taskio/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskio/internal/server/repositories/users"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := NewPostgresRepositoryManager()

	var _ users.Repository = m.Users(db)
	var _ refreshtokens.Repository = m.RefreshTokens(db)
	var _ tasks.Repository = m.Tasks(db)
	var _ tags.Repository = m.Tags(db)
	var _ attachments.Repository = m.Attachments(db)

	assert.IsType(t, &tasks.PostgresRepository{}, m.Tasks(db))
	assert.IsType(t, &tags.PostgresRepository{}, m.Tags(db))
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	require.NoError(t, m.RunMigrations(context.Background(), db.DB))
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	err := m.RunMigrations(context.Background(), db.DB)
	require.EqualError(t, err, "boom")
}

func TestOpen(t *testing.T) {
	orig := sqlxConnect
	defer func() { sqlxConnect = orig }()

	var gotDriver, gotDSN string
	sqlxConnect = func(ctx context.Context, driverName, dsn string) (*sqlx.DB, error) {
		gotDriver, gotDSN = driverName, dsn
		return nil, errors.New("refused")
	}

	_, err := Open(context.Background(), "postgres://x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refused")
	assert.Equal(t, "pgx", gotDriver)
	assert.Equal(t, "postgres://x", gotDSN)
}
