// Package grpc serves taskio.TaskService over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/taskio/internal/logging"
	"github.com/dmitrijs2005/taskio/internal/server/models"
	"github.com/dmitrijs2005/taskio/internal/server/services"
	"github.com/dmitrijs2005/taskio/internal/taskrpc"
	"google.golang.org/grpc"
)

// UserService is the identity side used by the server.
type UserService interface {
	Signup(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
	Authenticate(accessToken string) (string, error)
}

// TaskService is the task store used by the server.
type TaskService interface {
	CreateTask(ctx context.Context, ownerID string, in models.NewTask) (string, error)
	GetTask(ctx context.Context, ownerID, taskID string) (*models.Task, error)
	ListTasks(ctx context.Context, ownerID string, filter models.TaskFilter) ([]*models.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID string, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID string) error
	ToggleTaskStatus(ctx context.Context, ownerID, taskID string) (*models.Task, error)
}

// TagService enumerates a user's tags.
type TagService interface {
	ListAllTagNames(ctx context.Context, ownerID string) ([]string, error)
}

// AttachmentService issues upload URLs.
type AttachmentService interface {
	RequestUpload(ctx context.Context, ownerID, taskID, fileName string) (*models.UploadTicket, error)
	MarkUploaded(ctx context.Context, ownerID, attachmentID string) error
}

type GRPCServer struct {
	taskrpc.UnimplementedTaskServiceServer
	address     string
	users       UserService
	tasks       TaskService
	tags        TagService
	attachments AttachmentService
	logger      logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us UserService, ts TaskService, tg TagService, as AttachmentService) *GRPCServer {
	return &GRPCServer{
		address:     a,
		logger:      l.With("module", "grpc_server"),
		users:       us,
		tasks:       ts,
		tags:        tg,
		attachments: as,
	}
}

// NewServer builds a grpc.Server with the auth interceptor and the service registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	srv := grpc.NewServer(opts...)
	taskrpc.RegisterTaskServiceServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on a caller-provided listener.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}
