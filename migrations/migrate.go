// Package migrations embeds the goose schema migrations of the user store.
// Each supported database keeps its own directory of SQL files.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Dialect names accepted by Migrate.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

var ErrUnsupportedDialect = errors.New("unsupported migration dialect")

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

var migrationDirs = map[string]string{
	DialectPostgres: "postgres",
	DialectSQLite:   "sqlite",
}

// Migrate applies every pending migration for dialect to db.
func Migrate(db *sql.DB, dialect string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	dir, ok := migrationDirs[dialect]
	if !ok {
		return fmt.Errorf("migration error: %w: %q", ErrUnsupportedDialect, dialect)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
