// Package pgstore is the PostgreSQL backend for the workout record and
// session history, for users who keep their data on a shared server.
package pgstore

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abhisek/nodaysoff/internal/store"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store wraps a pgxpool.Pool and provides the repositories.
type Store struct {
	Pool *pgxpool.Pool
}

// Open applies pending migrations and connects a pool to dsn.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if err := RunMigrations(dsn); err != nil {
		return nil, err
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Store{Pool: pool}, nil
}

// RunMigrations applies the embedded migrations to dsn.
func RunMigrations(dsn string) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("opening migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) RecordRepo() store.RecordRepo {
	return &recordRepo{pool: s.Pool}
}

func (s *Store) EventRepo() store.EventRepo {
	return &eventRepo{pool: s.Pool}
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.Postgres)
}
