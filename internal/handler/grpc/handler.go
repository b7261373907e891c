package grpc

import (
	"google.golang.org/grpc"

	"github.com/MKhiriev/black-swan-sentinel/internal/logger"
	"github.com/MKhiriev/black-swan-sentinel/internal/service"
)

// Handler is the root gRPC transport handler.
//
// It implements the sentinel.v1.AuthService methods on top of the service
// layer. A handler instance is created once at startup and shared by the
// gRPC server.
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger, and returns the initialized instance.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// Init builds a *grpc.Server with the interceptor chain installed and the
// auth service registered. Messages are JSON encoded, so clients must call
// with the "json" content-subtype.
func (h *Handler) Init() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			h.withTraceID,
			h.withLogging,
			h.withRecovery,
			h.withAuth,
		),
	)
	srv.RegisterService(&AuthServiceDesc, h)

	return srv
}
