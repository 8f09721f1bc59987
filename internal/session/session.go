package session

import (
	"context"
	"fmt"

	"mduarte/cca-audit/internal/logging"
	"mduarte/cca-audit/internal/store"
)

// Status tracks where a session is in its recovery lifecycle.
type Status string

const (
	// StatusNone means no session has been started.
	StatusNone Status = "none"
	// StatusAwaitingChoice means a saved snapshot exists for this identity
	// and the caller must Recover or Discard before working.
	StatusAwaitingChoice Status = "awaiting_choice"
	// StatusActive means the session is live and autosave may run.
	StatusActive Status = "active"
)

// Session binds a working set to a persisted identity. Exactly one snapshot
// is kept per identity; saving is always a full overwrite.
type Session struct {
	identity string
	status   Status

	State *State
	store store.SnapshotStore
	log   logging.Logger
}

// New creates a session over the given backend store.
func New(st store.SnapshotStore, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Session{
		status: StatusNone,
		State:  NewState(logger),
		store:  st,
		log:    logger,
	}
}

// Identity returns the identity the session was started with.
func (s *Session) Identity() string {
	return s.identity
}

// Status returns the lifecycle state.
func (s *Session) Status() Status {
	return s.status
}

// Start binds the session to an identity and checks the backend for a saved
// snapshot. When one exists the session stops at StatusAwaitingChoice; the
// caller decides between Recover and Discard. A store failure degrades to a
// fresh session rather than blocking work.
func (s *Session) Start(ctx context.Context, identity string) (Status, error) {
	if identity == "" {
		return s.status, fmt.Errorf("session identity must not be empty")
	}
	s.identity = identity

	exists, err := s.store.Exists(ctx, identity)
	if err != nil {
		s.log.WithError(err).Warn("Could not check for a saved session, starting fresh",
			logging.Field{Key: logging.FieldIdentity, Value: identity})
		s.status = StatusActive
		return s.status, nil
	}
	if exists {
		s.status = StatusAwaitingChoice
	} else {
		s.status = StatusActive
	}
	return s.status, nil
}

// Recover loads the saved snapshot into the working set and activates the
// session. A snapshot that fails to load leaves the current state untouched.
func (s *Session) Recover(ctx context.Context) error {
	snap, err := s.store.Load(ctx, s.identity)
	if err != nil {
		return err
	}
	if snap == nil {
		s.log.Warn("Saved session disappeared before recovery, starting fresh",
			logging.Field{Key: logging.FieldIdentity, Value: s.identity})
		s.status = StatusActive
		return nil
	}

	s.State.Restore(snap)
	s.status = StatusActive
	s.log.Info("Session recovered",
		logging.Field{Key: logging.FieldIdentity, Value: s.identity},
		logging.Field{Key: logging.FieldCount, Value: len(snap.FileData)})
	return nil
}

// Discard rejects the saved snapshot and starts fresh. The local reset is
// immediate; the backend delete runs best-effort and a failure there only
// logs, since the next save overwrites the stale snapshot anyway.
func (s *Session) Discard(ctx context.Context) {
	s.State.Reset()
	s.status = StatusActive

	if err := s.store.Delete(ctx, s.identity); err != nil {
		s.log.WithError(err).Warn("Could not delete the discarded session",
			logging.Field{Key: logging.FieldIdentity, Value: s.identity})
	}
	s.log.Info("Session discarded",
		logging.Field{Key: logging.FieldIdentity, Value: s.identity})
}

// Save snapshots the working set and overwrites the backend copy.
func (s *Session) Save(ctx context.Context) error {
	if s.status != StatusActive {
		return fmt.Errorf("cannot save: session is %s", s.status)
	}
	snap := s.State.Snapshot()
	if err := s.store.Save(ctx, s.identity, snap); err != nil {
		return err
	}
	s.log.Info("Session saved",
		logging.Field{Key: logging.FieldIdentity, Value: s.identity},
		logging.Field{Key: logging.FieldCount, Value: len(snap.ChronologicalMovements)})
	return nil
}
