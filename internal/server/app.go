// Package server wires configuration, storage, services and the HTTP and
// gRPC transports into one runnable application.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/taskio/internal/logging"
	"github.com/dmitrijs2005/taskio/internal/server/config"
	"github.com/dmitrijs2005/taskio/internal/server/httpapi"
	"github.com/dmitrijs2005/taskio/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskio/internal/server/services"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/taskio/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sqlx.DB
	users       *services.UserService
	tasks       *services.TaskService
	tags        *services.TagIndex
	attachments *services.AttachmentService
}

// NewApp connects to the database, applies migrations and builds services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	tags := services.NewTagIndex(db, m, logger)

	return &App{
		config:      c,
		logger:      logger.With("module", "app"),
		db:          db,
		users:       services.NewUserService(db, m, c, logger),
		tasks:       services.NewTaskService(db, m, tags, logger),
		tags:        tags,
		attachments: services.NewAttachmentService(db, m, c, logger),
	}, nil
}

type tokenPurger interface {
	PurgeExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

// runTokenCleanup purges expired refresh tokens every interval until ctx is done.
func runTokenCleanup(ctx context.Context, p tokenPurger, interval time.Duration, logger logging.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := p.PurgeExpiredTokens(ctx, now)
			if err != nil {
				logger.Error(ctx, "token cleanup failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Info(ctx, "expired refresh tokens removed", "count", n)
			}
		}
	}
}

// Run serves both APIs until SIGINT, SIGTERM or SIGQUIT, or until one of
// them fails.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...")

	httpServer := httpapi.NewServer(app.config.EndpointAddrHTTP, app.config.ShutdownTimeout, app.logger,
		app.users, app.tasks, app.tags, app.attachments)
	grpcServer := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger,
		app.users, app.tasks, app.tags, app.attachments)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpServer.Run(ctx)
	})
	g.Go(func() error {
		return grpcServer.Run(ctx)
	})
	g.Go(func() error {
		runTokenCleanup(ctx, app.users, app.config.TokenCleanupInterval, app.logger)
		return nil
	})

	err := g.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return err
}
