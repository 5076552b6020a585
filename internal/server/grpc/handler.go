package grpc

import (
	"context"

	"github.com/dmitrijs2005/taskio/internal/server/models"
	"github.com/dmitrijs2005/taskio/internal/taskrpc"
)

func (s *GRPCServer) Signup(ctx context.Context, req *taskrpc.SignupRequest) (*taskrpc.SignupResponse, error) {
	u, err := s.users.Signup(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	s.logger.Info(ctx, "Registered", "user_id", u.ID)
	return &taskrpc.SignupResponse{UserID: u.ID}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *taskrpc.LoginRequest) (*taskrpc.LoginResponse, error) {
	tokens, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return &taskrpc.LoginResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken, UserID: tokens.UserID}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *taskrpc.RefreshTokenRequest) (*taskrpc.RefreshTokenResponse, error) {
	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, toStatus(err)
	}
	return &taskrpc.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *taskrpc.PingRequest) (*taskrpc.PingResponse, error) {
	return &taskrpc.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Profile(ctx context.Context, req *taskrpc.ProfileRequest) (*taskrpc.ProfileResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.users.Profile(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &taskrpc.ProfileResponse{UserID: u.ID, Username: u.UserName, Email: u.Email}, nil
}

func (s *GRPCServer) CreateTask(ctx context.Context, req *taskrpc.CreateTaskRequest) (*taskrpc.CreateTaskResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	id, err := s.tasks.CreateTask(ctx, userID, models.NewTask{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    models.Priority(req.Priority),
		Status:      models.Status(req.Status),
		Tags:        req.Tags,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &taskrpc.CreateTaskResponse{TaskID: id}, nil
}

func (s *GRPCServer) GetTask(ctx context.Context, req *taskrpc.GetTaskRequest) (*taskrpc.GetTaskResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	t, err := s.tasks.GetTask(ctx, userID, req.TaskID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &taskrpc.GetTaskResponse{Task: taskrpc.FromModel(t)}, nil
}

func (s *GRPCServer) ListTasks(ctx context.Context, req *taskrpc.ListTasksRequest) (*taskrpc.ListTasksResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.tasks.ListTasks(ctx, userID, models.TaskFilter{
		Status:  models.Status(req.Status),
		Tags:    req.Tags,
		TagMode: models.TagMode(req.TagMode),
	})
	if err != nil {
		return nil, toStatus(err)
	}
	out := make([]*taskrpc.Task, 0, len(list))
	for _, t := range list {
		out = append(out, taskrpc.FromModel(t))
	}
	return &taskrpc.ListTasksResponse{Tasks: out}, nil
}

func (s *GRPCServer) UpdateTask(ctx context.Context, req *taskrpc.UpdateTaskRequest) (*taskrpc.UpdateTaskResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	t, err := s.tasks.UpdateTask(ctx, userID, req.TaskID, req.Patch())
	if err != nil {
		return nil, toStatus(err)
	}
	return &taskrpc.UpdateTaskResponse{Task: taskrpc.FromModel(t)}, nil
}

func (s *GRPCServer) DeleteTask(ctx context.Context, req *taskrpc.DeleteTaskRequest) (*taskrpc.DeleteTaskResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.DeleteTask(ctx, userID, req.TaskID); err != nil {
		return nil, toStatus(err)
	}
	return &taskrpc.DeleteTaskResponse{}, nil
}

func (s *GRPCServer) ToggleTask(ctx context.Context, req *taskrpc.ToggleTaskRequest) (*taskrpc.ToggleTaskResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	t, err := s.tasks.ToggleTaskStatus(ctx, userID, req.TaskID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &taskrpc.ToggleTaskResponse{Task: taskrpc.FromModel(t)}, nil
}

func (s *GRPCServer) ListTags(ctx context.Context, req *taskrpc.ListTagsRequest) (*taskrpc.ListTagsResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.tags.ListAllTagNames(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &taskrpc.ListTagsResponse{Tags: names}, nil
}

func (s *GRPCServer) RequestUpload(ctx context.Context, req *taskrpc.RequestUploadRequest) (*taskrpc.RequestUploadResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	ticket, err := s.attachments.RequestUpload(ctx, userID, req.TaskID, req.FileName)
	if err != nil {
		return nil, toStatus(err)
	}
	return &taskrpc.RequestUploadResponse{AttachmentID: ticket.AttachmentID, UploadURL: ticket.URL}, nil
}

func (s *GRPCServer) CompleteUpload(ctx context.Context, req *taskrpc.CompleteUploadRequest) (*taskrpc.CompleteUploadResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.attachments.MarkUploaded(ctx, userID, req.AttachmentID); err != nil {
		return nil, toStatus(err)
	}
	return &taskrpc.CompleteUploadResponse{}, nil
}
