package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mduarte/cca-audit/internal/logging"
	"mduarte/cca-audit/internal/models"
)

func TestState_Declarations(t *testing.T) {
	s := NewState(&logging.MockLogger{})

	added := s.AddDeclarations([]models.ProcessedDeclaration{
		{ID: "d1", FileName: "a.pdf"},
		{ID: "d2", FileName: "b.pdf"},
	})
	assert.Equal(t, 2, added)

	// Re-adding a known id is a no-op.
	added = s.AddDeclarations([]models.ProcessedDeclaration{
		{ID: "d1", FileName: "a.pdf"},
		{ID: "d3", FileName: "c.pdf"},
	})
	assert.Equal(t, 1, added)
	assert.Len(t, s.Declarations(), 3)

	known := s.KnownDeclarationIDs()
	assert.True(t, known["d1"])
	assert.False(t, known["d9"])
}

func TestState_PutReview_ReplacesAndPropagates(t *testing.T) {
	s := NewState(&logging.MockLogger{})
	s.Graph.SetMovements([]models.Movement{
		{ID: "mov-1", Operations: []models.Operation{{ID: "op-1"}}},
	})
	_, err := s.Graph.AddDeclarationLink("mov-1", "decl.pdf")
	require.NoError(t, err)

	touched := s.PutReview(models.DeclarationReview{
		FileID:          "audit-1",
		FileName:        "decl.pdf",
		Status:          models.ReviewCorrectionNeeded,
		AuditorComments: "falta soporte bancario",
	})
	assert.Equal(t, 1, touched)

	m, _ := s.Graph.Movement("mov-1")
	assert.Equal(t, "falta soporte bancario", m.Operations[0].ReviewData.Comments)

	// A second verdict on the same file replaces, both in the review list
	// and on the linked operations.
	touched = s.PutReview(models.DeclarationReview{
		FileID:          "audit-1",
		FileName:        "decl.pdf",
		Status:          models.ReviewApproved,
		AuditorComments: "aprobada",
	})
	assert.Equal(t, 1, touched)
	assert.Len(t, s.Reviews(), 1)

	r, ok := s.Review("audit-1")
	require.True(t, ok)
	assert.Equal(t, models.ReviewApproved, r.Status)

	m, _ = s.Graph.Movement("mov-1")
	assert.Equal(t, "aprobada", m.Operations[0].ReviewData.Comments)
}

func TestState_SetLineComment_Propagates(t *testing.T) {
	s := NewState(&logging.MockLogger{})
	file, err := s.Lines.Ingest("registros.xml", `<Registro ndec="1"/>`)
	require.NoError(t, err)
	lineID := file.Lines[0].ID

	s.Graph.SetMovements([]models.Movement{
		{ID: "mov-1", Operations: []models.Operation{{ID: "op-1"}}},
	})
	_, err = s.Graph.AddXMLLink("mov-1", file.ID, lineID, "label", "registros.xml")
	require.NoError(t, err)

	comment := "SIN LEGALIZAR"
	touched, err := s.SetLineComment(file.ID, lineID, &comment)
	require.NoError(t, err)
	assert.Equal(t, 1, touched)

	m, _ := s.Graph.Movement("mov-1")
	assert.Equal(t, "[XML]: SIN LEGALIZAR", m.Operations[0].ReviewData.Comments)

	line, _, ok := s.Lines.Line(file.ID, lineID)
	require.True(t, ok)
	assert.Equal(t, models.LineStatusReviewed, line.Status)

	// Clearing a comment does not touch linked movements.
	touched, err = s.SetLineComment(file.ID, lineID, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, touched)
	m, _ = s.Graph.Movement("mov-1")
	assert.Equal(t, "[XML]: SIN LEGALIZAR", m.Operations[0].ReviewData.Comments)
}

func TestState_RegisterFile(t *testing.T) {
	s := NewState(&logging.MockLogger{})

	f := models.AuditFile{ID: "audit-1", Metadata: models.FileMetadata{Name: "decl.pdf"}}
	assert.True(t, s.RegisterFile(models.CategoryDeclaraciones, f))
	assert.False(t, s.RegisterFile("unknown-bucket", f))

	reg := s.Registry()
	require.Len(t, reg.Declaraciones, 1)

	assert.True(t, s.RemoveFile(models.CategoryDeclaraciones, "audit-1"))
	assert.False(t, s.RemoveFile(models.CategoryDeclaraciones, "audit-1"))
}

func TestState_SnapshotRestoreRoundTrip(t *testing.T) {
	s := NewState(&logging.MockLogger{})
	s.SetDetails(models.AuditDetails{CompanyName: "Acme"})
	_, err := s.Lines.Ingest("registros.xml", `<Registro ndec="1"/>`)
	require.NoError(t, err)
	s.Comments.Add("comentario propio")
	s.AddDeclarations([]models.ProcessedDeclaration{{ID: "d1", FileName: "a.pdf"}})

	snap := s.Snapshot()
	assert.Equal(t, models.SnapshotVersion, snap.Version)

	restored := NewState(&logging.MockLogger{})
	restored.Restore(snap)

	assert.Equal(t, "Acme", restored.Details().CompanyName)
	assert.Len(t, restored.Lines.Files(), 1)
	assert.Len(t, restored.Declarations(), 1)
	assert.Contains(t, restored.Comments.Comments(), "comentario propio")
}

func TestState_Reset(t *testing.T) {
	s := NewState(&logging.MockLogger{})
	s.SetDetails(models.AuditDetails{CompanyName: "Acme"})
	_, err := s.Lines.Ingest("registros.xml", "line")
	require.NoError(t, err)
	s.AddDeclarations([]models.ProcessedDeclaration{{ID: "d1"}})

	s.Reset()

	assert.Empty(t, s.Details().CompanyName)
	assert.Empty(t, s.Lines.Files())
	assert.Empty(t, s.Declarations())
	assert.Empty(t, s.Graph.Movements())
}
