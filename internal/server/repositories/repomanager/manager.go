package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/taskio/internal/dbx"
	"github.com/dmitrijs2005/taskio/internal/server/repositories/attachments"
	"github.com/dmitrijs2005/taskio/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/taskio/internal/server/repositories/tags"
	"github.com/dmitrijs2005/taskio/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskio/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either the pool or a
// transaction, so services can compose several writes under dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	Tags(db dbx.DBTX) tags.Repository
	Attachments(db dbx.DBTX) attachments.Repository
}
