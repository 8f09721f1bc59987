package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mduarte/cca-audit/internal/models"
)

func testSnapshot() *models.ProgressSnapshot {
	return &models.ProgressSnapshot{
		AuditDetails: models.AuditDetails{CompanyName: "Acme", NIT: "900123456-7"},
		ChronologicalMovements: []models.Movement{
			{ID: "mov-1", Amount: decimal.RequireFromString("-150.50")},
		},
	}
}

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, s.Close())
	})
	return s
}

func TestSQLiteStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.Save(ctx, "auditor@acme", testSnapshot()))

	snap, err := s.Load(ctx, "auditor@acme")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "Acme", snap.AuditDetails.CompanyName)
	assert.Equal(t, models.SnapshotVersion, snap.Version)
	require.Len(t, snap.ChronologicalMovements, 1)
	assert.True(t, snap.ChronologicalMovements[0].Amount.Equal(decimal.RequireFromString("-150.50")))
}

func TestSQLiteStore_LoadMissing(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	snap, err := s.Load(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSQLiteStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.Save(ctx, "auditor@acme", testSnapshot()))

	updated := testSnapshot()
	updated.AuditDetails.CompanyName = "Acme Renamed"
	require.NoError(t, s.Save(ctx, "auditor@acme", updated))

	snap, err := s.Load(ctx, "auditor@acme")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "Acme Renamed", snap.AuditDetails.CompanyName)
}

func TestSQLiteStore_ExistsDelete(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	ok, err := s.Exists(ctx, "auditor@acme")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, "auditor@acme", testSnapshot()))

	ok, err = s.Exists(ctx, "auditor@acme")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Delete(ctx, "auditor@acme"))
	// Deleting again stays silent.
	require.NoError(t, s.Delete(ctx, "auditor@acme"))

	ok, err = s.Exists(ctx, "auditor@acme")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStore_IdentitiesAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.Save(ctx, "a@acme", testSnapshot()))

	snap, err := s.Load(ctx, "b@acme")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestMockStore(t *testing.T) {
	ctx := context.Background()
	m := NewMockStore()

	require.NoError(t, m.Save(ctx, "a", testSnapshot()))
	assert.Equal(t, 1, m.SaveCount)

	snap, err := m.Load(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, snap)

	// The mock must hand out copies, not its internal state.
	snap.AuditDetails.CompanyName = "mutated"
	again, err := m.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Acme", again.AuditDetails.CompanyName)

	m.SaveError = assert.AnError
	assert.Error(t, m.Save(ctx, "a", testSnapshot()))
	assert.Equal(t, 2, m.SaveCount)
}
