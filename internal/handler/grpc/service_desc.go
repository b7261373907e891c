package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/black-swan-sentinel/models"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "sentinel.v1.AuthService"

// Full method names, as seen by interceptors and used by clients.
const (
	RegisterMethod       = "/" + ServiceName + "/Register"
	LoginMethod          = "/" + ServiceName + "/Login"
	LoginFormMethod      = "/" + ServiceName + "/LoginForm"
	RefreshMethod        = "/" + ServiceName + "/Refresh"
	MeMethod             = "/" + ServiceName + "/Me"
	ChangePasswordMethod = "/" + ServiceName + "/ChangePassword"
)

// Empty is the request of methods that take no arguments.
type Empty struct{}

// AuthServer is the server API of sentinel.v1.AuthService.
type AuthServer interface {
	Register(context.Context, *models.RegisterRequest) (*models.UserResponse, error)
	Login(context.Context, *models.LoginRequest) (*models.TokenPair, error)
	LoginForm(context.Context, *models.LoginRequest) (*models.TokenPair, error)
	Refresh(context.Context, *models.RefreshTokenRequest) (*models.TokenPair, error)
	Me(context.Context, *Empty) (*models.UserResponse, error)
	ChangePassword(context.Context, *models.ChangePasswordRequest) (*models.MessageResponse, error)
}

// AuthServiceDesc describes sentinel.v1.AuthService for grpc.Server.RegisterService.
var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", AuthServer.Register),
		unary("Login", AuthServer.Login),
		unary("LoginForm", AuthServer.LoginForm),
		unary("Refresh", AuthServer.Refresh),
		unary("Me", AuthServer.Me),
		unary("ChangePassword", AuthServer.ChangePassword),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sentinel/v1/auth.json",
}

// unary adapts a typed AuthServer method to a grpc.MethodDesc, doing what
// generated code would: decode, then call through the interceptor chain.
func unary[Req, Resp any](name string, call func(AuthServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name

	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			req := new(Req)
			if err := dec(req); err != nil {
				return nil, status.Error(codes.InvalidArgument, "malformed request body")
			}

			server := srv.(AuthServer)
			if interceptor == nil {
				return call(server, ctx, req)
			}

			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(server, ctx, req.(*Req))
			}
			return interceptor(ctx, req, info, handler)
		},
	}
}
