// Package snapshot serializes and restores the full reconciled state as one
// versioned JSON document. The same document shape flows through the
// persistence backend and through manual download/load files, so a snapshot
// written on one machine restores on another without the backend.
//
// Readers are tolerant: structurally invalid documents are rejected at the
// boundary, structurally valid but partial ones load with defaults.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"

	"mduarte/cca-audit/internal/auditerr"
	"mduarte/cca-audit/internal/models"
)

// Marshal serializes a snapshot, stamping the current schema version.
func Marshal(s *models.ProgressSnapshot) ([]byte, error) {
	out := s.Clone()
	out.Version = models.SnapshotVersion
	normalize(&out)
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	return data, nil
}

// Unmarshal parses and migrates a snapshot document.
func Unmarshal(data []byte) (*models.ProgressSnapshot, error) {
	if len(data) == 0 {
		return nil, &auditerr.InvalidSnapshotError{Reason: "empty document"}
	}

	var s models.ProgressSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &auditerr.InvalidSnapshotError{Reason: "not a valid JSON document", Err: err}
	}

	if err := migrate(&s); err != nil {
		return nil, err
	}
	normalize(&s)
	return &s, nil
}

// migrate upgrades older documents to the current schema, one version bump
// at a time. Documents newer than this build load best-effort: fields this
// build does not know are already dropped by the JSON decoder.
func migrate(s *models.ProgressSnapshot) error {
	if s.Version < 0 {
		return &auditerr.InvalidSnapshotError{Reason: fmt.Sprintf("negative version %d", s.Version)}
	}

	// Version 0 predates the version field; it is the version-1 shape
	// written without a stamp.
	if s.Version == 0 {
		s.Version = 1
	}

	// Future bumps chain here: if s.Version == 1 { migrateV1toV2(s); s.Version = 2 }

	if s.Version > models.SnapshotVersion {
		s.Version = models.SnapshotVersion
	}
	return nil
}

// normalize replaces nil collections with empty ones so that a load/save
// round trip is stable and callers never see nil slices.
func normalize(s *models.ProgressSnapshot) {
	if s.CustomComments == nil {
		s.CustomComments = []string{}
	}
	if s.ChronologicalMovements == nil {
		s.ChronologicalMovements = []models.Movement{}
	}
	if s.FileData == nil {
		s.FileData = []models.LineFile{}
	}
	if s.DeclarationReviews == nil {
		s.DeclarationReviews = []models.DeclarationReview{}
	}
	if s.ProcessedDeclarations == nil {
		s.ProcessedDeclarations = []models.ProcessedDeclaration{}
	}
	for _, cat := range models.Categories {
		bucket := s.AuditFiles.Bucket(cat)
		if *bucket == nil {
			*bucket = []models.AuditFile{}
		}
	}
}

// WriteFile exports a snapshot to a portable file.
func WriteFile(path string, s *models.ProgressSnapshot) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return &auditerr.PersistenceError{Op: "export", Err: err}
	}
	return nil
}

// ReadFile imports a snapshot from a portable file.
func ReadFile(path string) (*models.ProgressSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &auditerr.PersistenceError{Op: "import", Err: err}
	}
	return Unmarshal(data)
}
