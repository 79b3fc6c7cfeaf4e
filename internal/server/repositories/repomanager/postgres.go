package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/shopsync/internal/server/migrations"
	"github.com/dmitrijs2005/shopsync/internal/server/repositories/collections"
	"github.com/dmitrijs2005/shopsync/internal/server/repositories/orders"
	"github.com/dmitrijs2005/shopsync/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories bound to one
// database handle.
type PostgresRepositoryManager struct {
	db *sql.DB
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// NewPostgresRepositoryManager opens the database at dsn and applies the
// embedded migrations.
func NewPostgresRepositoryManager(ctx context.Context, dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	m := &PostgresRepositoryManager{db: db}
	if err := m.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return m, nil
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// Users returns the PostgreSQL users.Repository.
func (m *PostgresRepositoryManager) Users() users.Repository {
	return users.NewPostgresRepository(m.db)
}

// Orders returns the PostgreSQL orders.Repository.
func (m *PostgresRepositoryManager) Orders() orders.Repository {
	return orders.NewPostgresRepository(m.db)
}

// Collections returns the PostgreSQL collections.Repository.
func (m *PostgresRepositoryManager) Collections() collections.Repository {
	return collections.NewPostgresRepository(m.db)
}

// Close releases the underlying database handle.
func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}
