package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/black-swan-sentinel/internal/logger"
	"github.com/MKhiriev/black-swan-sentinel/models"
)

// userRepository is the database/sql implementation of [UserRepository]
// shared by the PostgreSQL and SQLite backends. Backend differences are
// confined to the placeholder format and the error classifier held by [DB].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	db     *DB
	now    func() time.Time
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// FindUsersByUsernameOrEmail implements [UserRepository]. It never returns
// [ErrNoUserWasFound]; no match is an empty slice.
func (r *userRepository) FindUsersByUsernameOrEmail(ctx context.Context, username, email string) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUsersByUsernameOrEmailQuery(ctx, r.db.builder, username, email)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUsersByUsernameOrEmail").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logDBError(ctx, err, "*userRepository.FindUsersByUsernameOrEmail")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 2)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.FindUsersByUsernameOrEmail").Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.FindUsersByUsernameOrEmail").Msg("error iterating rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// FindUserByUsername implements [UserRepository].
//
// Error handling:
//   - no matching row → [ErrNoUserWasFound].
//   - any other driver-level error → wrapped [ErrScanningRow].
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserByUsernameQuery(ctx, r.db.builder, username)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByUsername").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		r.logDBError(ctx, err, "*userRepository.FindUserByUsername")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// CreateUser implements [UserRepository]. The INSERT returns every column
// via a RETURNING clause, so the caller receives the canonical database
// representation of the new account.
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - unique violation on username → [ErrUsernameAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateUserQuery(ctx, r.db.builder, user, r.now())
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if uniqueErr := r.uniqueViolation(err); uniqueErr != nil {
			log.Warn().Err(err).Str("func", "*userRepository.CreateUser").Msg("user already exists")
			return models.User{}, uniqueErr
		}
		r.logDBError(ctx, err, "*userRepository.CreateUser")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// UpdateUser implements [UserRepository]. Errors are those of execUpdate.
func (r *userRepository) UpdateUser(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(ctx, r.db.builder, user, r.now())
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execUpdate(ctx, "*userRepository.UpdateUser", query, args)
}

// UpdateLastLogin implements [UserRepository].
func (r *userRepository) UpdateLastLogin(ctx context.Context, userID int64, lastLogin time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateLastLoginQuery(ctx, r.db.builder, userID, lastLogin)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateLastLogin").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execUpdate(ctx, "*userRepository.UpdateLastLogin", query, args)
}

// UpdatePassword implements [UserRepository].
func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdatePasswordQuery(ctx, r.db.builder, userID, hashedPassword, r.now())
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execUpdate(ctx, "*userRepository.UpdatePassword", query, args)
}

// execUpdate runs an UPDATE expected to hit exactly one row.
//
// Error handling:
//   - no row matched → [ErrNoUserWasFound].
//   - unique violations → [ErrEmailAlreadyExists] / [ErrUsernameAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingStatement].
func (r *userRepository) execUpdate(ctx context.Context, fn, query string, args []any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if uniqueErr := r.uniqueViolation(err); uniqueErr != nil {
			return uniqueErr
		}
		r.logDBError(ctx, err, fn)
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// uniqueViolation translates a uniqueness violation into the matching
// sentinel, or returns nil when err is something else.
func (r *userRepository) uniqueViolation(err error) error {
	column, ok := r.db.errorClassificator.UniqueViolation(err)
	if !ok {
		return nil
	}

	switch column {
	case "email":
		return ErrEmailAlreadyExists
	case "username":
		return ErrUsernameAlreadyExists
	}

	return fmt.Errorf("%w: unknown unique constraint: %w", ErrExecutingStatement, err)
}

func (r *userRepository) logDBError(ctx context.Context, err error, fn string) {
	logger.FromContext(ctx).Err(err).
		Str("func", fn).
		Str("dialect", string(r.db.dialect)).
		Stringer("classification", r.db.errorClassificator.Classify(err)).
		Msg("database error")
}
