// Package store opens the configured database backend and hands out its
// repositories.
package store

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/resume-api/config"
	"github.com/ErlanBelekov/resume-api/internal/health"
	"github.com/ErlanBelekov/resume-api/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/resume-api/internal/infrastructure/sqlite"
	"github.com/ErlanBelekov/resume-api/internal/repository"
)

type Store struct {
	Driver  string
	Users   repository.UserRepository
	Resumes repository.ResumeRepository
	// DB is pinged by the readiness probe.
	DB    health.Pinger
	close func()
}

// Open connects to the backend named by cfg.DatabaseDriver and applies
// migrations before returning.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Store{
			Driver:  config.DriverPostgres,
			Users:   postgres.NewUserRepository(pool),
			Resumes: postgres.NewResumeRepository(pool),
			DB:      pool,
			close:   pool.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:  config.DriverSQLite,
			Users:   sqlite.NewUserRepository(db),
			Resumes: sqlite.NewResumeRepository(db),
			DB:      db,
			close:   func() { _ = db.Close() },
		}, nil
	}

	return nil, fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
}

func (s *Store) Close() {
	s.close()
}
