package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/black-swan-sentinel/internal/logger"
	"github.com/MKhiriev/black-swan-sentinel/internal/store"
	"github.com/MKhiriev/black-swan-sentinel/models"
)

// ResolutionState is the outcome class of an optional authentication.
type ResolutionState int

const (
	Anonymous ResolutionState = iota
	Authenticated
	Failed
)

func (s ResolutionState) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Resolution is the result of [AuthorizationService.ResolveOptional].
// User is set only when State is Authenticated, Err only when it is Failed.
type Resolution struct {
	State ResolutionState
	User  models.User
	Err   error
}

// Principal collapses the resolution into what a handler needs.
//
// With treatInvalidAsAnonymous an authentication failure reads as an
// anonymous caller. Inactive accounts and infrastructure errors are always
// returned.
func (r Resolution) Principal(treatInvalidAsAnonymous bool) (models.User, bool, error) {
	switch r.State {
	case Authenticated:
		return r.User, true, nil
	case Failed:
		if treatInvalidAsAnonymous && errors.Is(r.Err, ErrUnauthenticated) {
			return models.User{}, false, nil
		}
		return models.User{}, false, r.Err
	default:
		return models.User{}, false, nil
	}
}

type authorizationService struct {
	tokenService   TokenService
	userRepository store.UserRepository

	logger *logger.Logger
}

func NewAuthorizationService(tokenService TokenService, userRepository store.UserRepository, logger *logger.Logger) AuthorizationService {
	return &authorizationService{
		tokenService:   tokenService,
		userRepository: userRepository,
		logger:         logger,
	}
}

// ResolvePrincipal implements [AuthorizationService].
//
// The token is trusted only for the username; the principal itself is
// always read from the store so deactivation takes effect immediately.
func (a *authorizationService) ResolvePrincipal(ctx context.Context, token string) (models.User, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return models.User{}, ErrUnauthenticated
	}

	claims, err := a.tokenService.Verify(token, models.AccessToken)
	if err != nil {
		log.Debug().Err(err).Str("func", "authorizationService.ResolvePrincipal").Msg("access token rejected")
		return models.User{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	user, err := a.userRepository.FindUserByUsername(ctx, claims.Username())
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Debug().Str("func", "authorizationService.ResolvePrincipal").
			Str("username", claims.Username()).Msg("token subject does not exist")
		return models.User{}, ErrUnauthenticated
	}
	if err != nil {
		log.Err(err).Str("func", "authorizationService.ResolvePrincipal").Msg("error looking up token subject")
		return models.User{}, fmt.Errorf("error resolving principal: %w", err)
	}

	// a recreated account with the same username must not inherit old tokens
	if claims.UserID != 0 && claims.UserID != user.UserID {
		log.Warn().Str("func", "authorizationService.ResolvePrincipal").
			Int64("claim_user_id", claims.UserID).Int64("user_id", user.UserID).
			Msg("token user id does not match stored user")
		return models.User{}, ErrUnauthenticated
	}

	if !user.IsActive {
		return models.User{}, ErrInactiveAccount
	}

	return user, nil
}

// RequireAdmin implements [AuthorizationService].
func (a *authorizationService) RequireAdmin(principal models.User) (models.User, error) {
	if !principal.IsAdmin {
		return models.User{}, ErrForbidden
	}
	return principal, nil
}

// ResolveOptional implements [AuthorizationService].
func (a *authorizationService) ResolveOptional(ctx context.Context, token string) Resolution {
	if token == "" {
		return Resolution{State: Anonymous}
	}

	user, err := a.ResolvePrincipal(ctx, token)
	if err != nil {
		return Resolution{State: Failed, Err: err}
	}

	return Resolution{State: Authenticated, User: user}
}
