package taskrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "taskio.TaskService"

// Method names of taskio.TaskService.
const (
	MethodSignup         = "Signup"
	MethodLogin          = "Login"
	MethodRefreshToken   = "RefreshToken"
	MethodPing           = "Ping"
	MethodProfile        = "Profile"
	MethodCreateTask     = "CreateTask"
	MethodGetTask        = "GetTask"
	MethodListTasks      = "ListTasks"
	MethodUpdateTask     = "UpdateTask"
	MethodDeleteTask     = "DeleteTask"
	MethodToggleTask     = "ToggleTask"
	MethodListTags       = "ListTags"
	MethodRequestUpload  = "RequestUpload"
	MethodCompleteUpload = "CompleteUpload"
)

// FullMethod returns the "/service/method" path used on the wire and in
// grpc.UnaryServerInfo.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// TaskServiceServer is implemented by the server side of taskio.TaskService.
type TaskServiceServer interface {
	Signup(context.Context, *SignupRequest) (*SignupResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Profile(context.Context, *ProfileRequest) (*ProfileResponse, error)
	CreateTask(context.Context, *CreateTaskRequest) (*CreateTaskResponse, error)
	GetTask(context.Context, *GetTaskRequest) (*GetTaskResponse, error)
	ListTasks(context.Context, *ListTasksRequest) (*ListTasksResponse, error)
	UpdateTask(context.Context, *UpdateTaskRequest) (*UpdateTaskResponse, error)
	DeleteTask(context.Context, *DeleteTaskRequest) (*DeleteTaskResponse, error)
	ToggleTask(context.Context, *ToggleTaskRequest) (*ToggleTaskResponse, error)
	ListTags(context.Context, *ListTagsRequest) (*ListTagsResponse, error)
	RequestUpload(context.Context, *RequestUploadRequest) (*RequestUploadResponse, error)
	CompleteUpload(context.Context, *CompleteUploadRequest) (*CompleteUploadResponse, error)
}

// UnimplementedTaskServiceServer answers every method with codes.Unimplemented.
// Embed it to stay forward compatible when methods are added.
type UnimplementedTaskServiceServer struct{}

func (UnimplementedTaskServiceServer) Signup(context.Context, *SignupRequest) (*SignupResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Signup not implemented")
}

func (UnimplementedTaskServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}

func (UnimplementedTaskServiceServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}

func (UnimplementedTaskServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func (UnimplementedTaskServiceServer) Profile(context.Context, *ProfileRequest) (*ProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Profile not implemented")
}

func (UnimplementedTaskServiceServer) CreateTask(context.Context, *CreateTaskRequest) (*CreateTaskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateTask not implemented")
}

func (UnimplementedTaskServiceServer) GetTask(context.Context, *GetTaskRequest) (*GetTaskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTask not implemented")
}

func (UnimplementedTaskServiceServer) ListTasks(context.Context, *ListTasksRequest) (*ListTasksResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTasks not implemented")
}

func (UnimplementedTaskServiceServer) UpdateTask(context.Context, *UpdateTaskRequest) (*UpdateTaskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateTask not implemented")
}

func (UnimplementedTaskServiceServer) DeleteTask(context.Context, *DeleteTaskRequest) (*DeleteTaskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteTask not implemented")
}

func (UnimplementedTaskServiceServer) ToggleTask(context.Context, *ToggleTaskRequest) (*ToggleTaskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ToggleTask not implemented")
}

func (UnimplementedTaskServiceServer) ListTags(context.Context, *ListTagsRequest) (*ListTagsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTags not implemented")
}

func (UnimplementedTaskServiceServer) RequestUpload(context.Context, *RequestUploadRequest) (*RequestUploadResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RequestUpload not implemented")
}

func (UnimplementedTaskServiceServer) CompleteUpload(context.Context, *CompleteUploadRequest) (*CompleteUploadResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CompleteUpload not implemented")
}

func unary[Req, Resp any](method string, call func(TaskServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(TaskServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(TaskServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes taskio.TaskService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TaskServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodSignup, TaskServiceServer.Signup),
		unary(MethodLogin, TaskServiceServer.Login),
		unary(MethodRefreshToken, TaskServiceServer.RefreshToken),
		unary(MethodPing, TaskServiceServer.Ping),
		unary(MethodProfile, TaskServiceServer.Profile),
		unary(MethodCreateTask, TaskServiceServer.CreateTask),
		unary(MethodGetTask, TaskServiceServer.GetTask),
		unary(MethodListTasks, TaskServiceServer.ListTasks),
		unary(MethodUpdateTask, TaskServiceServer.UpdateTask),
		unary(MethodDeleteTask, TaskServiceServer.DeleteTask),
		unary(MethodToggleTask, TaskServiceServer.ToggleTask),
		unary(MethodListTags, TaskServiceServer.ListTags),
		unary(MethodRequestUpload, TaskServiceServer.RequestUpload),
		unary(MethodCompleteUpload, TaskServiceServer.CompleteUpload),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "taskrpc/service.go",
}

// RegisterTaskServiceServer registers srv on s.
func RegisterTaskServiceServer(s grpc.ServiceRegistrar, srv TaskServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
