package database

import (
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

// Pool limits sized for a small API instance in front of a managed Postgres.
const (
	maxOpenConns = 25
	maxIdleConns = 5
)

// OpenSQL opens and verifies a raw Postgres connection. Used directly by
// the migration command, which needs *sql.DB for goose.
func OpenSQL(connStr string) (*sql.DB, error) {
	sqlDB, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqlDB, nil
}

// Connect opens a Postgres connection, applies pool limits and wraps it
// in a Bun DB for the repositories.
func Connect(connStr string) (*bun.DB, error) {
	sqlDB, err := OpenSQL(connStr)
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)

	return bun.NewDB(sqlDB, pgdialect.New()), nil
}
