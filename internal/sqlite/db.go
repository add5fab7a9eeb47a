// Package sqlite stores crew records in a SQLite database using the pure-Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested record doesn't exist.
var ErrNotFound = errors.New("not found")

// DB wraps a SQLite database connection.
type DB struct {
	*sql.DB
}

// Open opens the database at dataSourceName and applies the schema.
func Open(ctx context.Context, dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps ":memory:" databases coherent.
	db.SetMaxOpenConns(1)

	wrapped := &DB{db}
	if err := wrapped.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return wrapped, nil
}

// Migrate creates missing tables. It is safe to run repeatedly.
func (db *DB) Migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS vessels (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    imo TEXT NOT NULL DEFAULT '',
    flag TEXT NOT NULL DEFAULT '',
    type TEXT NOT NULL DEFAULT '',
    gross_tonnage INTEGER NOT NULL DEFAULT 0,
    built INTEGER NOT NULL DEFAULT 0,
    manager TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS seafarers (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    rank TEXT NOT NULL DEFAULT '',
    nationality TEXT NOT NULL DEFAULT '',
    vessel TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL CHECK(status IN ('ONBOARD', 'VACATION', '')),
    sign_on TIMESTAMP,
    contract_end TIMESTAMP,
    available_from TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_seafarer_status ON seafarers(status);

CREATE TABLE IF NOT EXISTS contracts (
    id TEXT PRIMARY KEY,
    seafarer TEXT NOT NULL,
    rank TEXT NOT NULL DEFAULT '',
    vessel TEXT NOT NULL DEFAULT '',
    start_date TIMESTAMP,
    end_date TIMESTAMP,
    monthly_wage INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS crew_changes (
    id TEXT PRIMARY KEY,
    vessel TEXT NOT NULL,
    port TEXT NOT NULL DEFAULT '',
    change_date TIMESTAMP,
    rank TEXT NOT NULL DEFAULT '',
    onsigner TEXT NOT NULL DEFAULT '',
    offsigner TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS cases (
    id TEXT PRIMARY KEY,
    vessel TEXT NOT NULL,
    seafarer TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    club TEXT NOT NULL DEFAULT '',
    opened TIMESTAMP,
    status TEXT NOT NULL DEFAULT '',
    reserve INTEGER NOT NULL DEFAULT 0
);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
