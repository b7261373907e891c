package grpc

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/black-swan-sentinel/internal/logger"
	"github.com/MKhiriev/black-swan-sentinel/internal/utils"
)

const (
	traceIDKey       = "x-trace-id"
	authorizationKey = "authorization"
)

// protectedMethods require a resolved principal.
var protectedMethods = map[string]struct{}{
	MeMethod:             {},
	ChangePasswordMethod: {},
}

func firstMetadata(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}

// withTraceID tags the request logger with the caller's trace id, or a
// fresh one, and echoes it in the response header.
func (h *Handler) withTraceID(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	traceID := firstMetadata(ctx, traceIDKey)
	if traceID == "" {
		traceID = uuid.NewString()
	}

	l := h.logger.WithTraceID(traceID)
	ctx = l.WithContext(ctx)

	if err := grpc.SetHeader(ctx, metadata.Pairs(traceIDKey, traceID)); err != nil {
		l.Debug().Err(err).Msg("failed to set trace id header")
	}

	return handler(ctx, req)
}

func (h *Handler) withLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	logger.FromContext(ctx).Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}

func (h *Handler) withRecovery(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.FromContext(ctx).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("method", info.FullMethod).
				Msg("recovered from panic")
			err = status.Error(codes.Internal, "internal server error")
		}
	}()

	return handler(ctx, req)
}

// withAuth resolves the bearer token of protected methods and stores the
// principal in the context. Other methods pass through untouched.
func (h *Handler) withAuth(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if _, ok := protectedMethods[info.FullMethod]; !ok {
		return handler(ctx, req)
	}

	header := firstMetadata(ctx, authorizationKey)
	if header == "" {
		return nil, toStatus(ctx, errMissingToken)
	}
	token, err := utils.ParseBearerToken(header)
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	principal, err := h.services.AuthorizationService.ResolvePrincipal(ctx, token)
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	return handler(utils.WithPrincipal(ctx, principal), req)
}
