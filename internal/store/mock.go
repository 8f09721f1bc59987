package store

import (
	"context"
	"sync"

	"mduarte/cca-audit/internal/models"
)

// MockStore is an in-memory SnapshotStore for testing.
type MockStore struct {
	mu       sync.Mutex
	sessions map[string]*models.ProgressSnapshot

	// Error flags for testing error conditions
	SaveError   error
	LoadError   error
	ExistsError error
	DeleteError error

	// SaveCount tracks how many saves were issued.
	SaveCount int
}

// NewMockStore creates an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{sessions: make(map[string]*models.ProgressSnapshot)}
}

// SetSaveError flips the save failure flag, safe to call while a background
// writer is running.
func (m *MockStore) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveError = err
}

// Saves returns how many saves were issued, safe to poll from another
// goroutine.
func (m *MockStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SaveCount
}

// Save stores a deep copy of the snapshot.
func (m *MockStore) Save(_ context.Context, identity string, snap *models.ProgressSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCount++
	if m.SaveError != nil {
		return m.SaveError
	}
	copied := snap.Clone()
	copied.Version = models.SnapshotVersion
	m.sessions[identity] = &copied
	return nil
}

// Load returns the stored snapshot, or (nil, nil) when none exists.
func (m *MockStore) Load(_ context.Context, identity string) (*models.ProgressSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	snap, ok := m.sessions[identity]
	if !ok {
		return nil, nil
	}
	copied := snap.Clone()
	return &copied, nil
}

// Exists reports whether the identity has a stored session.
func (m *MockStore) Exists(_ context.Context, identity string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ExistsError != nil {
		return false, m.ExistsError
	}
	_, ok := m.sessions[identity]
	return ok, nil
}

// Delete removes the identity's session.
func (m *MockStore) Delete(_ context.Context, identity string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.sessions, identity)
	return nil
}
