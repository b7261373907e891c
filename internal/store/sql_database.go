package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/black-swan-sentinel/internal/config"
	"github.com/MKhiriev/black-swan-sentinel/internal/logger"
	"github.com/MKhiriev/black-swan-sentinel/migrations"
)

// Dialect names a supported database backend.
type Dialect string

const (
	DialectPostgres Dialect = migrations.DialectPostgres
	DialectSQLite   Dialect = migrations.DialectSQLite
)

// DB wraps a connection pool together with the backend specifics the
// repositories need: the query placeholder format and the driver error
// classifier.
type DB struct {
	*sql.DB
	dialect            Dialect
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the database named by cfg.DSN. The backend is chosen by
// the DSN: "postgres://", "postgresql://" and key=value strings select
// PostgreSQL; "sqlite://", "file:", ":memory:" and *.db paths select SQLite.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	dialect, dsn, err := parseDSN(cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnect").Msg("error resolving database backend")
		return nil, err
	}

	switch dialect {
	case DialectPostgres:
		return NewConnectPostgres(ctx, dsn, log)
	default:
		return NewConnectSQLite(ctx, dsn, log)
	}
}

// Dialect returns the backend the connection talks to.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies the embedded schema migrations of the backend.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}

func parseDSN(dsn string) (Dialect, string, error) {
	dsn = strings.TrimSpace(dsn)

	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DialectPostgres, dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		path := strings.TrimPrefix(dsn, "sqlite://")
		// sqlite:///./app.db keeps the path relative
		if strings.HasPrefix(path, "/./") {
			path = path[1:]
		}
		if path == "" {
			return "", "", fmt.Errorf("%w: empty sqlite path", ErrUnsupportedDSN)
		}
		return DialectSQLite, path, nil
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:", strings.HasSuffix(dsn, ".db"):
		return DialectSQLite, dsn, nil
	case strings.Contains(dsn, "host=") || strings.Contains(dsn, "dbname="):
		return DialectPostgres, dsn, nil
	}

	return "", "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, redactDSN(dsn))
}

// redactDSN strips credentials so DSNs can be logged.
func redactDSN(dsn string) string {
	schemeEnd := strings.Index(dsn, "://")
	at := strings.LastIndex(dsn, "@")
	if schemeEnd < 0 || at < schemeEnd {
		return dsn
	}
	return dsn[:schemeEnd+3] + "***" + dsn[at:]
}
