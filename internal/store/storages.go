package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/black-swan-sentinel/internal/config"
	"github.com/MKhiriev/black-swan-sentinel/internal/logger"
)

// Storages groups every repository the service layer depends on together
// with the connection they share.
type Storages struct {
	UserRepository UserRepository

	db *DB
}

// NewStorages connects to the configured database, applies the schema
// migrations and builds the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		db.Close()
		return nil, err
	}
	log.Info().Str("dialect", string(db.Dialect())).Msg("database migrations applied")

	return &Storages{
		UserRepository: NewUserRepository(db, log),
		db:             db,
	}, nil
}

// Close releases the underlying connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
