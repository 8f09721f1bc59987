// Package common provides the session bootstrap shared by all commands.
package common

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"mduarte/cca-audit/cmd/root"
	"mduarte/cca-audit/internal/logging"
	"mduarte/cca-audit/internal/session"
	"mduarte/cca-audit/internal/store"
)

// DatabasePath resolves the session database location from the configured
// data directory, defaulting to $HOME/.cca-audit.
func DatabasePath() (string, error) {
	dir := root.Cfg.Data.Directory
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".cca-audit")
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("cannot create data directory: %w", err)
	}
	return filepath.Join(dir, "sessions.db"), nil
}

// OpenSession opens the backing store and binds a session to the --user
// identity. A saved snapshot is recovered automatically; the explicit
// discard path is the session discard command. The caller must Close the
// returned store.
func OpenSession(ctx context.Context, log *logrus.Logger) (*session.Session, *store.SQLiteStore, error) {
	if root.SharedFlags.Identity == "" {
		return nil, nil, fmt.Errorf("--user is required: sessions are keyed by auditor identity")
	}

	path, err := DatabasePath()
	if err != nil {
		return nil, nil, err
	}

	st, err := store.OpenSQLite(path)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.NewLogrusAdapterFromLogger(log)
	sess := session.New(st, logger)

	status, err := sess.Start(ctx, root.SharedFlags.Identity)
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	if status == session.StatusAwaitingChoice {
		if err := sess.Recover(ctx); err != nil {
			_ = st.Close()
			return nil, nil, fmt.Errorf("cannot recover saved session: %w", err)
		}
	}
	return sess, st, nil
}

// SaveAndClose persists the session and closes the store, logging rather
// than failing on close errors.
func SaveAndClose(ctx context.Context, sess *session.Session, st *store.SQLiteStore, log *logrus.Logger) error {
	saveErr := sess.Save(ctx)
	if err := st.Close(); err != nil {
		log.WithError(err).Warn("Failed to close session store")
	}
	return saveErr
}
