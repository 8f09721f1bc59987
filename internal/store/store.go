// Package store persists session snapshots keyed by user identity.
// One row per identity, last-write-wins; the document column holds the
// serialized snapshot, binary payloads stay out of band.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"mduarte/cca-audit/internal/auditerr"
	"mduarte/cca-audit/internal/models"
	"mduarte/cca-audit/internal/snapshot"
)

// SnapshotStore is the persistence backend for session state.
type SnapshotStore interface {
	// Save overwrites any prior snapshot for the identity.
	Save(ctx context.Context, identity string, snap *models.ProgressSnapshot) error

	// Load returns the stored snapshot, or (nil, nil) when none exists.
	Load(ctx context.Context, identity string) (*models.ProgressSnapshot, error)

	// Exists reports whether a snapshot is stored for the identity.
	Exists(ctx context.Context, identity string) (bool, error)

	// Delete removes the identity's snapshot. Deleting a missing snapshot
	// is not an error.
	Delete(ctx context.Context, identity string) error
}

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_meta (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
	identity  TEXT PRIMARY KEY,
	version   INTEGER NOT NULL,
	document  TEXT NOT NULL,
	saved_at  TEXT NOT NULL
);
`

// SQLiteStore implements SnapshotStore on a local sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures the
// schema is current.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize session schema: %w", err)
	}

	var current int
	err = db.QueryRow(`SELECT version FROM schema_meta LIMIT 1`).Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.Exec(`INSERT INTO schema_meta (version) VALUES (?)`, schemaVersion); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to stamp schema version: %w", err)
		}
	case err != nil:
		_ = db.Close()
		return nil, fmt.Errorf("failed to read schema version: %w", err)
	case current > schemaVersion:
		_ = db.Close()
		return nil, fmt.Errorf("session database schema version %d is newer than this build supports (%d)", current, schemaVersion)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save serializes the snapshot and upserts it for the identity.
func (s *SQLiteStore) Save(ctx context.Context, identity string, snap *models.ProgressSnapshot) error {
	doc, err := snapshot.Marshal(snap)
	if err != nil {
		return &auditerr.PersistenceError{Op: "save", Identity: identity, Err: err}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (identity, version, document, saved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(identity) DO UPDATE SET
			version = excluded.version,
			document = excluded.document,
			saved_at = excluded.saved_at`,
		identity, models.SnapshotVersion, string(doc), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return &auditerr.PersistenceError{Op: "save", Identity: identity, Err: err}
	}
	return nil
}

// Load returns the stored snapshot for the identity, or (nil, nil) when the
// identity has no session.
func (s *SQLiteStore) Load(ctx context.Context, identity string) (*models.ProgressSnapshot, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM sessions WHERE identity = ?`, identity).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &auditerr.PersistenceError{Op: "load", Identity: identity, Err: err}
	}

	snap, err := snapshot.Unmarshal([]byte(doc))
	if err != nil {
		return nil, &auditerr.PersistenceError{Op: "load", Identity: identity, Err: err}
	}
	return snap, nil
}

// Exists reports whether the identity has a stored session.
func (s *SQLiteStore) Exists(ctx context.Context, identity string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM sessions WHERE identity = ?`, identity).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, &auditerr.PersistenceError{Op: "load", Identity: identity, Err: err}
	}
	return true, nil
}

// Delete removes the identity's session row.
func (s *SQLiteStore) Delete(ctx context.Context, identity string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE identity = ?`, identity)
	if err != nil {
		return &auditerr.PersistenceError{Op: "delete", Identity: identity, Err: err}
	}
	return nil
}
