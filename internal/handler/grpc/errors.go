package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/black-swan-sentinel/internal/logger"
	"github.com/MKhiriev/black-swan-sentinel/internal/service"
	"github.com/MKhiriev/black-swan-sentinel/internal/utils"
	"github.com/MKhiriev/black-swan-sentinel/internal/validators"
)

var (
	errMissingToken     = errors.New("missing bearer token")
	errPrincipalMissing = errors.New("no principal in request context")
)

type codeMapping struct {
	target error
	code   codes.Code
}

// codeMappings is ordered: the first match wins.
var codeMappings = []codeMapping{
	{service.ErrUnauthenticated, codes.Unauthenticated},
	{service.ErrDuplicateEmail, codes.AlreadyExists},
	{service.ErrDuplicateUsername, codes.AlreadyExists},
	{service.ErrInvalidCredentials, codes.Unauthenticated},
	{service.ErrInactiveAccount, codes.FailedPrecondition},
	{service.ErrIncorrectPassword, codes.InvalidArgument},
	{service.ErrExpiredToken, codes.Unauthenticated},
	{service.ErrWrongTokenKind, codes.Unauthenticated},
	{service.ErrInvalidToken, codes.Unauthenticated},
	{service.ErrForbidden, codes.PermissionDenied},
	{validators.ErrInvalidRequest, codes.InvalidArgument},
	{service.ErrInvalidDataProvided, codes.InvalidArgument},
	{errMissingToken, codes.Unauthenticated},
	{utils.ErrInvalidAuthHeader, codes.Unauthenticated},
}

// codeFromError returns the gRPC code for err and the message to send.
// Unknown errors become Internal with a generic message.
func codeFromError(err error) (codes.Code, string) {
	for _, m := range codeMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		switch m.target {
		case service.ErrUnauthenticated, errMissingToken, utils.ErrInvalidAuthHeader:
			return m.code, service.ErrUnauthenticated.Error()
		case service.ErrInvalidDataProvided:
			return m.code, validators.ErrInvalidRequest.Error()
		}
		return m.code, m.target.Error()
	}
	return codes.Internal, "internal server error"
}

// toStatus converts err into a status error. Status errors pass through.
func toStatus(ctx context.Context, err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}

	code, msg := codeFromError(err)
	if code == codes.Internal {
		logger.FromContext(ctx).Err(err).Msg("internal error")
	}
	return status.Error(code, msg)
}
