// Package sqlite stores roster documents in a SQLite database, one JSON
// document per named roster.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/example/shift-planner/internal/persistence"
)

// Store implements persistence.RosterRepository on a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens the database at the given DSN. Call Migrate before first use.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}
	// The driver serializes writes; more than one writer connection only
	// produces SQLITE_BUSY errors.
	db.SetMaxOpenConns(1)
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// migrations are applied in order; the version of each is recorded in
// schema_migrations so re-running Migrate is a no-op.
var migrations = []struct {
	version int
	stmt    string
}{
	{1, `CREATE TABLE IF NOT EXISTS rosters (
		name TEXT PRIMARY KEY,
		document TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`},
}

// Migrate brings the schema up to the current version.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("sqlite: failed to create migrations table: %w", err)
	}

	var current sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("sqlite: failed to read schema version: %w", err)
	}

	for _, migration := range migrations {
		if current.Valid && migration.version <= int(current.Int64) {
			continue
		}
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("sqlite: failed to begin migration %d: %w", migration.version, err)
		}
		if _, err := tx.ExecContext(ctx, migration.stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("sqlite: migration %d failed: %w", migration.version, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
			migration.version, time.Now().UTC().Format(time.RFC3339)); err != nil {
			tx.Rollback()
			return fmt.Errorf("sqlite: failed to record migration %d: %w", migration.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("sqlite: failed to commit migration %d: %w", migration.version, err)
		}
	}
	return nil
}

// SaveRoster upserts the document under the given name.
func (s *Store) SaveRoster(ctx context.Context, name string, doc persistence.Document) error {
	if name == "" {
		return fmt.Errorf("sqlite: roster name must not be empty")
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("sqlite: failed to encode roster %s: %w", name, err)
	}

	query := `
		INSERT INTO rosters (name, document, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, name, string(payload), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("sqlite: failed to save roster %s: %w", name, err)
	}
	return nil
}

// GetRoster loads the document stored under the given name.
func (s *Store) GetRoster(ctx context.Context, name string) (persistence.Document, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM rosters WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return persistence.Document{}, persistence.ErrNotFound
	}
	if err != nil {
		return persistence.Document{}, fmt.Errorf("sqlite: failed to load roster %s: %w", name, err)
	}

	var doc persistence.Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return persistence.Document{}, fmt.Errorf("sqlite: failed to decode roster %s: %w", name, err)
	}
	return doc, nil
}

// ListRosters returns the stored roster names ordered alphabetically.
func (s *Store) ListRosters(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM rosters ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to list rosters: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan roster name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: failed to list rosters: %w", err)
	}
	return names, nil
}

// DeleteRoster removes the document stored under the given name.
func (s *Store) DeleteRoster(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM rosters WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("sqlite: failed to delete roster %s: %w", name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: failed to delete roster %s: %w", name, err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}
