package store

import (
	"context"
	"time"

	"github.com/MKhiriev/black-swan-sentinel/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/user_repository_mock.go -package=mock

// UserRepository is the persistence boundary for principals.
//
// Uniqueness of email and username is enforced by the database; violations
// surface as [ErrEmailAlreadyExists] or [ErrUsernameAlreadyExists] and are
// never confused with [ErrNoUserWasFound].
type UserRepository interface {
	// FindUsersByUsernameOrEmail returns every user whose username equals
	// username or whose email equals email. Up to two rows can match.
	FindUsersByUsernameOrEmail(ctx context.Context, username, email string) ([]models.User, error)

	// FindUserByUsername returns the user with the given username or
	// [ErrNoUserWasFound].
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// CreateUser inserts user and returns it with the server-assigned id.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// UpdateUser overwrites every mutable column of the user identified by
	// user.UserID. Concurrent updates are last-writer-wins.
	UpdateUser(ctx context.Context, user models.User) error

	// UpdateLastLogin sets last_login of the user with userID and leaves
	// every other column as it is.
	UpdateLastLogin(ctx context.Context, userID int64, lastLogin time.Time) error

	// UpdatePassword replaces the stored hash of the user with userID and
	// stamps updated_at.
	UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error
}

// ErrorClassificator inspects driver errors of one database backend.
type ErrorClassificator interface {
	// Classify reports whether the failed operation may succeed on retry.
	Classify(err error) ErrorClassification

	// UniqueViolation reports which unique column ("email", "username")
	// err violated. ok is false when err is not a uniqueness violation.
	UniqueViolation(err error) (column string, ok bool)
}
