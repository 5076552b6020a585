package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/taskio/internal/common"
	"github.com/dmitrijs2005/taskio/internal/taskrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// TokenSink is told about rotated tokens so they can be persisted.
type TokenSink func(access, refresh string)

type GRPCClient struct {
	endpointURL  string
	conn         *grpc.ClientConn
	client       taskrpc.TaskServiceClient
	onRefresh    TokenSink
	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) SetTokens(access, refresh string) {
	s.mu.Lock()
	s.accessToken, s.refreshToken = access, refresh
	s.mu.Unlock()
}

// accessTokenInterceptor attaches the access token and, when the server
// reports it expired, rotates tokens once and retries the call.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	access, refresh := s.tokens()
	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	if method == taskrpc.FullMethod(taskrpc.MethodRefreshToken) || refresh == "" {
		return err
	}
	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}

	resp, rerr := s.client.RefreshToken(ctx, &taskrpc.RefreshTokenRequest{RefreshToken: refresh})
	if rerr != nil {
		return rerr
	}

	s.SetTokens(resp.AccessToken, resp.RefreshToken)
	if s.onRefresh != nil {
		s.onRefresh(resp.AccessToken, resp.RefreshToken)
	}

	return invoker(withAccessToken(ctx, resp.AccessToken), method, req, reply, cc, opts...)
}

// NewGRPCClient dials endpointURL lazily; onRefresh may be nil.
func NewGRPCClient(endpointURL string, onRefresh TokenSink) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, onRefresh: onRefresh}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = taskrpc.NewTaskServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return ErrNotFound
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
	case codes.AlreadyExists:
		return ErrAlreadyExists
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &taskrpc.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Signup(ctx context.Context, username, email, password string) (string, error) {
	resp, err := s.client.Signup(ctx, &taskrpc.SignupRequest{Username: username, Email: email, Password: password})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.UserID, nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (*taskrpc.LoginResponse, error) {
	resp, err := s.client.Login(ctx, &taskrpc.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	s.SetTokens(resp.AccessToken, resp.RefreshToken)
	return resp, nil
}

func (s *GRPCClient) Profile(ctx context.Context) (*taskrpc.ProfileResponse, error) {
	resp, err := s.client.Profile(ctx, &taskrpc.ProfileRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) CreateTask(ctx context.Context, req *taskrpc.CreateTaskRequest) (string, error) {
	resp, err := s.client.CreateTask(ctx, req)
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.TaskID, nil
}

func (s *GRPCClient) GetTask(ctx context.Context, taskID string) (*taskrpc.Task, error) {
	resp, err := s.client.GetTask(ctx, &taskrpc.GetTaskRequest{TaskID: taskID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Task, nil
}

func (s *GRPCClient) ListTasks(ctx context.Context, req *taskrpc.ListTasksRequest) ([]*taskrpc.Task, error) {
	resp, err := s.client.ListTasks(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Tasks, nil
}

func (s *GRPCClient) UpdateTask(ctx context.Context, req *taskrpc.UpdateTaskRequest) (*taskrpc.Task, error) {
	resp, err := s.client.UpdateTask(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Task, nil
}

func (s *GRPCClient) DeleteTask(ctx context.Context, taskID string) error {
	_, err := s.client.DeleteTask(ctx, &taskrpc.DeleteTaskRequest{TaskID: taskID})
	return s.mapError(err)
}

func (s *GRPCClient) ToggleTask(ctx context.Context, taskID string) (*taskrpc.Task, error) {
	resp, err := s.client.ToggleTask(ctx, &taskrpc.ToggleTaskRequest{TaskID: taskID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Task, nil
}

func (s *GRPCClient) ListTags(ctx context.Context) ([]string, error) {
	resp, err := s.client.ListTags(ctx, &taskrpc.ListTagsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Tags, nil
}

func (s *GRPCClient) RequestUpload(ctx context.Context, taskID, fileName string) (*taskrpc.RequestUploadResponse, error) {
	resp, err := s.client.RequestUpload(ctx, &taskrpc.RequestUploadRequest{TaskID: taskID, FileName: fileName})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) CompleteUpload(ctx context.Context, attachmentID string) error {
	_, err := s.client.CompleteUpload(ctx, &taskrpc.CompleteUploadRequest{AttachmentID: attachmentID})
	return s.mapError(err)
}
