package store

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/black-swan-sentinel/models"
)

var usersTable = models.User{}.TableName()

// userColumns is the canonical column order used by every SELECT and
// RETURNING clause; scanUser relies on it.
var userColumns = []string{
	"user_id",
	"email",
	"username",
	"hashed_password",
	"full_name",
	"phone_number",
	"is_active",
	"is_admin",
	"risk_tolerance",
	"created_at",
	"updated_at",
	"last_login",
}

func buildFindUsersByUsernameOrEmailQuery(ctx context.Context, b sq.StatementBuilderType, username, email string) (string, []any, error) {
	return b.
		Select(userColumns...).
		From(usersTable).
		Where(sq.Or{
			sq.Eq{"username": username},
			sq.Eq{"email": email},
		}).
		OrderBy("user_id").
		ToSql()
}

func buildFindUserByUsernameQuery(ctx context.Context, b sq.StatementBuilderType, username string) (string, []any, error) {
	return b.
		Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"username": username}).
		Limit(1).
		ToSql()
}

// buildCreateUserQuery inserts every column except the generated id and
// returns the stored row. A zero CreatedAt is replaced by now.
func buildCreateUserQuery(ctx context.Context, b sq.StatementBuilderType, user models.User, now time.Time) (string, []any, error) {
	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	riskTolerance := user.RiskTolerance
	if riskTolerance == "" {
		riskTolerance = models.Moderate
	}

	return b.
		Insert(usersTable).
		Columns(userColumns[1:]...).
		Values(
			user.Email,
			user.Username,
			user.HashedPassword,
			user.FullName,
			user.PhoneNumber,
			user.IsActive,
			user.IsAdmin,
			string(riskTolerance),
			createdAt,
			user.UpdatedAt,
			user.LastLogin,
		).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
}

// buildUpdateUserQuery overwrites every mutable column of the row with
// user.UserID and stamps updated_at.
func buildUpdateUserQuery(ctx context.Context, b sq.StatementBuilderType, user models.User, now time.Time) (string, []any, error) {
	return b.
		Update(usersTable).
		SetMap(map[string]any{
			"email":           user.Email,
			"username":        user.Username,
			"hashed_password": user.HashedPassword,
			"full_name":       user.FullName,
			"phone_number":    user.PhoneNumber,
			"is_active":       user.IsActive,
			"is_admin":        user.IsAdmin,
			"risk_tolerance":  string(user.RiskTolerance),
			"last_login":      user.LastLogin,
			"updated_at":      now,
		}).
		Where(sq.Eq{"user_id": user.UserID}).
		ToSql()
}

// buildUpdateLastLoginQuery touches last_login alone; the rest of the row
// may have changed since the caller read it.
func buildUpdateLastLoginQuery(ctx context.Context, b sq.StatementBuilderType, userID int64, lastLogin time.Time) (string, []any, error) {
	return b.
		Update(usersTable).
		Set("last_login", lastLogin).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildUpdatePasswordQuery(ctx context.Context, b sq.StatementBuilderType, userID int64, hashedPassword string, now time.Time) (string, []any, error) {
	return b.
		Update(usersTable).
		Set("hashed_password", hashedPassword).
		Set("updated_at", now).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.UserID,
		&user.Email,
		&user.Username,
		&user.HashedPassword,
		&user.FullName,
		&user.PhoneNumber,
		&user.IsActive,
		&user.IsAdmin,
		&user.RiskTolerance,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLogin,
	)
	return user, err
}
