package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}

	return &DB{db}, nil
}

// Migrate creates the schema if it does not exist yet.
func (db *DB) Migrate() error {
	schema := `
CREATE TABLE IF NOT EXISTS applications (
    order_number INTEGER NOT NULL,
    code TEXT PRIMARY KEY,
    full_name TEXT NOT NULL,
    phone_number TEXT NOT NULL,
    id_number TEXT NOT NULL,
    service_type TEXT NOT NULL,
    files TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('pending', 'processing', 'needs_more_info', 'completed')),
    admin_note TEXT NOT NULL DEFAULT '',
    is_received INTEGER NOT NULL DEFAULT 0,
    submitted_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    completed_at TIMESTAMP,
    received_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_applications_id_number ON applications(id_number);
`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
