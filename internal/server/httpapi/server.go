// Package httpapi serves the taskio JSON API over HTTP using gin.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskio/internal/logging"
	"github.com/dmitrijs2005/taskio/internal/server/models"
	"github.com/dmitrijs2005/taskio/internal/server/services"
	"github.com/gin-gonic/gin"
)

type UserService interface {
	Signup(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
	Authenticate(accessToken string) (string, error)
}

type TaskService interface {
	CreateTask(ctx context.Context, ownerID string, in models.NewTask) (string, error)
	GetTask(ctx context.Context, ownerID, taskID string) (*models.Task, error)
	ListTasks(ctx context.Context, ownerID string, filter models.TaskFilter) ([]*models.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID string, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID string) error
	ToggleTaskStatus(ctx context.Context, ownerID, taskID string) (*models.Task, error)
}

type TagService interface {
	ListAllTagNames(ctx context.Context, ownerID string) ([]string, error)
}

type AttachmentService interface {
	RequestUpload(ctx context.Context, ownerID, taskID, fileName string) (*models.UploadTicket, error)
	MarkUploaded(ctx context.Context, ownerID, attachmentID string) error
	DownloadURL(ctx context.Context, ownerID, attachmentID string) (string, error)
	ListAttachments(ctx context.Context, ownerID, taskID string) ([]*models.Attachment, error)
}

// Server owns the gin engine and the http.Server wrapped around it.
type Server struct {
	address         string
	shutdownTimeout time.Duration
	users           UserService
	tasks           TaskService
	tags            TagService
	attachments     AttachmentService
	logger          logging.Logger
	router          *gin.Engine
	now             func() time.Time
}

func NewServer(addr string, shutdownTimeout time.Duration, l logging.Logger, us UserService, ts TaskService, tg TagService, as AttachmentService) *Server {
	s := &Server{
		address:         addr,
		shutdownTimeout: shutdownTimeout,
		users:           us,
		tasks:           ts,
		tags:            tg,
		attachments:     as,
		logger:          l.With("module", "http_server"),
		now:             time.Now,
	}
	s.router = s.routes()
	return s
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/signup", s.handleSignup)
		api.POST("/login", s.handleLogin)
		api.POST("/refresh", s.handleRefresh)
	}

	authed := api.Group("")
	authed.Use(s.bearerAuth())
	{
		authed.GET("/user", s.handleProfile)

		authed.GET("/tasks", s.handleListTasks)
		authed.POST("/tasks", s.handleCreateTask)
		authed.PUT("/tasks", s.handleUpdateTask)
		authed.DELETE("/tasks", s.handleDeleteTask)
		authed.GET("/tasks/:id", s.handleGetTask)
		authed.PUT("/tasks/:id", s.handleUpdateTask)
		authed.DELETE("/tasks/:id", s.handleDeleteTask)
		authed.POST("/tasks/:id/toggle", s.handleToggleTask)

		authed.GET("/tags", s.handleListTags)
		authed.GET("/dashboard", s.handleDashboard)

		authed.POST("/tasks/:id/attachments", s.handleRequestUpload)
		authed.GET("/tasks/:id/attachments", s.handleListAttachments)
		authed.POST("/attachments/:id/uploaded", s.handleMarkUploaded)
		authed.GET("/attachments/:id/url", s.handleDownloadURL)
	}

	return r
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on a caller-provided listener. Cancelling ctx triggers a
// graceful shutdown bounded by the shutdown timeout.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
