package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/black-swan-sentinel/internal/config"
	"github.com/MKhiriev/black-swan-sentinel/internal/crypto"
	"github.com/MKhiriev/black-swan-sentinel/internal/logger"
	"github.com/MKhiriev/black-swan-sentinel/internal/store"
	"github.com/MKhiriev/black-swan-sentinel/models"
)

// authService is the concrete implementation of AuthService.
// It registers principals, checks credentials and hands out token pairs
// using a UserRepository for persistence, a PasswordHasher for credentials
// and a TokenService for signing.
type authService struct {
	// userRepository is the data-access layer used to create, look up and
	// update users.
	userRepository store.UserRepository

	// hasher hashes new passwords and verifies submitted ones.
	hasher crypto.PasswordHasher

	// tokenService signs and verifies access and refresh tokens.
	tokenService TokenService

	// formLoginUpdatesLastLogin makes LoginForm record the login time.
	formLoginUpdatesLastLogin bool

	// now is the clock used for last_login.
	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService from its collaborators.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	userRepository store.UserRepository,
	hasher crypto.PasswordHasher,
	tokenService TokenService,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository:            userRepository,
		hasher:                    hasher,
		tokenService:              tokenService,
		formLoginUpdatesLastLogin: cfg.FormLoginUpdatesLastLogin,
		now:                       time.Now,
		logger:                    logger,
	}
}

// Register creates a new user account.
//
// Email is checked before username, so a request colliding on both reports
// ErrDuplicateEmail. The pre-check is advisory: the store's unique
// constraints decide races between concurrent registrations.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrDuplicateEmail / ErrDuplicateUsername on collision.
//   - A wrapped storage or hashing error otherwise.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx).With().Str("func", "authService.Register").Logger()

	existing, err := a.userRepository.FindUsersByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		log.Err(err).Msg("error looking up existing users")
		return models.User{}, fmt.Errorf("error looking up existing users: %w", err)
	}
	if err = duplicateError(existing, req.Username, req.Email); err != nil {
		log.Debug().Err(err).Str("username", req.Username).Msg("registration rejected")
		return models.User{}, err
	}

	hashed, err := a.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Msg("error hashing password")
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	risk := req.RiskTolerance
	if risk == "" {
		risk = models.Moderate
	}

	created, err := a.userRepository.CreateUser(ctx, models.User{
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashed,
		FullName:       req.FullName,
		PhoneNumber:    req.PhoneNumber,
		IsActive:       true,
		IsAdmin:        false,
		RiskTolerance:  risk,
	})
	switch {
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return models.User{}, ErrDuplicateEmail
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		return models.User{}, ErrDuplicateUsername
	case err != nil:
		log.Err(err).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Int64("user_id", created.UserID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

func duplicateError(existing []models.User, username, email string) error {
	for _, u := range existing {
		if u.Email == email {
			return ErrDuplicateEmail
		}
	}
	for _, u := range existing {
		if u.Username == username {
			return ErrDuplicateUsername
		}
	}
	return nil
}

// Login authenticates an existing user and records the login time.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error) {
	return a.login(ctx, req, true)
}

// LoginForm authenticates like Login. It records the login time only when
// configured to.
func (a *authService) LoginForm(ctx context.Context, req models.LoginRequest) (models.TokenPair, error) {
	return a.login(ctx, req, a.formLoginUpdatesLastLogin)
}

func (a *authService) login(ctx context.Context, req models.LoginRequest, recordLogin bool) (models.TokenPair, error) {
	log := logger.FromContext(ctx).With().Str("func", "authService.login").Logger()

	user, err := a.authenticate(ctx, req)
	if err != nil {
		return models.TokenPair{}, err
	}

	pair, err := a.issuePair(user)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("error issuing token pair")
		return models.TokenPair{}, err
	}

	if recordLogin {
		if err = a.userRepository.UpdateLastLogin(ctx, user.UserID, a.now().UTC()); err != nil {
			log.Err(err).Int64("user_id", user.UserID).Msg("error recording last login")
			return models.TokenPair{}, fmt.Errorf("error recording last login: %w", err)
		}
	}

	log.Info().Int64("user_id", user.UserID).Bool("last_login_recorded", recordLogin).Msg("user logged in")
	return pair, nil
}

// authenticate returns the active user matching the credential pair.
// Unknown usernames and wrong passwords are reported identically.
func (a *authService) authenticate(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx).With().Str("func", "authService.authenticate").Logger()

	user, err := a.userRepository.FindUserByUsername(ctx, req.Username)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Debug().Str("username", req.Username).Msg("unknown username")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !a.hasher.Verify(req.Password, user.HashedPassword) {
		log.Debug().Int64("user_id", user.UserID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	if !user.IsActive {
		return models.User{}, ErrInactiveAccount
	}

	return user, nil
}

// Refresh exchanges a refresh token for a new pair. The old refresh token
// stays valid until it expires.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx).With().Str("func", "authService.Refresh").Logger()

	claims, err := a.tokenService.Verify(refreshToken, models.RefreshToken)
	if err != nil {
		log.Debug().Err(err).Msg("refresh token rejected")
		return models.TokenPair{}, err
	}

	user, err := a.userRepository.FindUserByUsername(ctx, claims.Username())
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.TokenPair{}, fmt.Errorf("%w: subject no longer exists", ErrInvalidToken)
	}
	if err != nil {
		log.Err(err).Msg("error looking up token subject")
		return models.TokenPair{}, fmt.Errorf("error looking up token subject: %w", err)
	}
	if !user.IsActive {
		return models.TokenPair{}, fmt.Errorf("%w: subject is inactive", ErrInvalidToken)
	}
	if claims.UserID != 0 && claims.UserID != user.UserID {
		return models.TokenPair{}, fmt.Errorf("%w: subject was recreated", ErrInvalidToken)
	}

	pair, err := a.issuePair(user)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("error issuing token pair")
		return models.TokenPair{}, err
	}

	return pair, nil
}

// ChangePassword replaces the password of principal. On a wrong current
// password the stored hash is left untouched. Only the hash column is
// written, so a concurrent login time is kept.
func (a *authService) ChangePassword(ctx context.Context, principal models.User, req models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx).With().Str("func", "authService.ChangePassword").Logger()

	if !a.hasher.Verify(req.CurrentPassword, principal.HashedPassword) {
		log.Debug().Int64("user_id", principal.UserID).Msg("incorrect current password")
		return ErrIncorrectPassword
	}

	hashed, err := a.hasher.Hash(req.NewPassword)
	if err != nil {
		log.Err(err).Msg("error hashing password")
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err = a.userRepository.UpdatePassword(ctx, principal.UserID, hashed); err != nil {
		log.Err(err).Int64("user_id", principal.UserID).Msg("error storing new password")
		return fmt.Errorf("error storing new password: %w", err)
	}

	log.Info().Int64("user_id", principal.UserID).Msg("password changed")
	return nil
}

func (a *authService) issuePair(user models.User) (models.TokenPair, error) {
	ttl := a.tokenService.AccessTokenTTL()

	access, err := a.tokenService.IssueAccess(user.Username, user.UserID, ttl)
	if err != nil {
		return models.TokenPair{}, err
	}
	refresh, err := a.tokenService.IssueRefresh(user.Username, user.UserID)
	if err != nil {
		return models.TokenPair{}, err
	}

	return models.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    models.TokenTypeBearer,
		ExpiresIn:    int64(ttl / time.Second),
	}, nil
}
