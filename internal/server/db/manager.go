// Package db owns the database handle: driver selection from the DSN,
// schema migrations, and construction of account repositories bound to
// either the pooled connection or a transaction.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"
	_ "modernc.org/sqlite"

	"github.com/mgouveia/userdb/internal/dbx"
	"github.com/mgouveia/userdb/internal/server/accounts"
	pgmigrations "github.com/mgouveia/userdb/internal/server/migrations/postgres"
	sqlitemigrations "github.com/mgouveia/userdb/internal/server/migrations/sqlite"
)

const (
	dialectSQLite   = "sqlite3"
	dialectPostgres = "postgres"
)

// Manager wraps an open *sql.DB plus the dialect it speaks, and hands out
// repositories for it.
type Manager struct {
	db      *sql.DB
	dialect string
}

// driverFor maps a DSN to a database/sql driver name and a goose dialect.
// Anything that is not a postgres URL is treated as a sqlite file path.
func driverFor(dsn string) (driver, dialect string) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "pgx", dialectPostgres
	}
	return "sqlite", dialectSQLite
}

// Open connects to the store described by dsn, waits for it to answer a
// ping (with fibonacci backoff, so a slow-starting database container does
// not kill the process), and runs the schema migrations idempotently.
func Open(ctx context.Context, dsn string) (*Manager, error) {
	driver, dialect := driverFor(dsn)

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if dialect == dialectSQLite {
		// Single connection so the PRAGMA below applies to every query;
		// modernc sqlite serializes writers anyway.
		db.SetMaxOpenConns(1)
	}

	backoff := retry.WithMaxRetries(5, retry.NewFibonacci(250*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if dialect == dialectSQLite {
		// sqlite LIKE is ASCII-case-insensitive by default; search is
		// specified as case-sensitive containment on both backends.
		if _, err := db.ExecContext(ctx, `PRAGMA case_sensitive_like = ON`); err != nil {
			db.Close()
			return nil, fmt.Errorf("db pragma error: %w", err)
		}
	}

	m := &Manager{db: db, dialect: dialect}
	if err := m.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return m, nil
}

// RunMigrations applies the embedded goose migrations for the dialect.
// Safe to call repeatedly; applied versions are skipped.
func (m *Manager) RunMigrations(ctx context.Context) error {
	var migrations fs.FS
	if m.dialect == dialectPostgres {
		migrations = pgmigrations.Migrations
	} else {
		migrations = sqlitemigrations.Migrations
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(m.dialect); err != nil {
		return err
	}
	return goose.UpContext(ctx, m.db, ".")
}

// Conn exposes the pooled handle for transaction management.
func (m *Manager) Conn() *sql.DB {
	return m.db
}

// Accounts returns an account repository for the backend in use, bound to
// tx (either the pooled handle or an open transaction).
func (m *Manager) Accounts(tx dbx.DBTX) accounts.Repository {
	if m.dialect == dialectPostgres {
		return accounts.NewPostgresRepository(tx)
	}
	return accounts.NewSQLiteRepository(tx)
}

func (m *Manager) Close() error {
	return m.db.Close()
}
