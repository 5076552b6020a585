package client

import (
	"context"

	"github.com/dmitrijs2005/taskio/internal/taskrpc"
)

// Client is what the CLI and the board need from the backend.
type Client interface {
	Close() error
	SetTokens(access, refresh string)
	Ping(ctx context.Context) error
	Signup(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (*taskrpc.LoginResponse, error)
	Profile(ctx context.Context) (*taskrpc.ProfileResponse, error)
	CreateTask(ctx context.Context, req *taskrpc.CreateTaskRequest) (string, error)
	GetTask(ctx context.Context, taskID string) (*taskrpc.Task, error)
	ListTasks(ctx context.Context, req *taskrpc.ListTasksRequest) ([]*taskrpc.Task, error)
	UpdateTask(ctx context.Context, req *taskrpc.UpdateTaskRequest) (*taskrpc.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
	ToggleTask(ctx context.Context, taskID string) (*taskrpc.Task, error)
	ListTags(ctx context.Context) ([]string, error)
	RequestUpload(ctx context.Context, taskID, fileName string) (*taskrpc.RequestUploadResponse, error)
	CompleteUpload(ctx context.Context, attachmentID string) error
}
