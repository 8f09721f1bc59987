package linestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mduarte/cca-audit/internal/auditerr"
	"mduarte/cca-audit/internal/logging"
	"mduarte/cca-audit/internal/models"
)

func newTestStore() *Store {
	return New(&logging.MockLogger{})
}

func TestIngest(t *testing.T) {
	s := newTestStore()

	file, err := s.Ingest("registros.xml", "<Registro ndec=\"1\"/>\n<Registro ndec=\"2\"/>")
	require.NoError(t, err)

	assert.NotEmpty(t, file.ID)
	assert.Equal(t, "registros.xml", file.Name)
	require.Len(t, file.Lines, 2)
	assert.Equal(t, models.LineStatusPending, file.Lines[0].Status)
	assert.NotEqual(t, file.Lines[0].ID, file.Lines[1].ID)
}

func TestIngest_SkipsBlankLines(t *testing.T) {
	s := newTestStore()

	file, err := s.Ingest("registros.xml", "first\n\n   \n\t\nsecond\n")
	require.NoError(t, err)

	require.Len(t, file.Lines, 2)
	assert.Equal(t, "first", file.Lines[0].Content)
	assert.Equal(t, "second", file.Lines[1].Content)
}

func TestIngest_EmptyFileName(t *testing.T) {
	s := newTestStore()

	_, err := s.Ingest("  ", "content")
	assert.Error(t, err)

	var ingestErr *auditerr.IngestError
	assert.ErrorAs(t, err, &ingestErr)
}

func TestToggleStatus(t *testing.T) {
	s := newTestStore()
	file, err := s.Ingest("a.xml", "one line")
	require.NoError(t, err)
	lineID := file.Lines[0].ID

	require.NoError(t, s.ToggleStatus(file.ID, lineID))
	line, _, ok := s.Line(file.ID, lineID)
	require.True(t, ok)
	assert.Equal(t, models.LineStatusReviewed, line.Status)

	require.NoError(t, s.ToggleStatus(file.ID, lineID))
	line, _, _ = s.Line(file.ID, lineID)
	assert.Equal(t, models.LineStatusPending, line.Status)
}

func TestMarkReviewed_ReportsChange(t *testing.T) {
	s := newTestStore()
	file, err := s.Ingest("a.xml", "one line")
	require.NoError(t, err)
	lineID := file.Lines[0].ID

	changed, err := s.MarkReviewed(file.ID, lineID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = s.MarkReviewed(file.ID, lineID)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestSetComment_MarksReviewed(t *testing.T) {
	s := newTestStore()
	file, err := s.Ingest("a.xml", "one line")
	require.NoError(t, err)
	lineID := file.Lines[0].ID

	comment := "Operación ya revisada"
	require.NoError(t, s.SetComment(file.ID, lineID, &comment))

	line, _, ok := s.Line(file.ID, lineID)
	require.True(t, ok)
	require.NotNil(t, line.Comment)
	assert.Equal(t, comment, *line.Comment)
	assert.Equal(t, models.LineStatusReviewed, line.Status)

	// Clearing the comment keeps the reviewed status.
	require.NoError(t, s.SetComment(file.ID, lineID, nil))
	line, _, _ = s.Line(file.ID, lineID)
	assert.Nil(t, line.Comment)
	assert.Equal(t, models.LineStatusReviewed, line.Status)
}

func TestUpdateContent(t *testing.T) {
	s := newTestStore()
	file, err := s.Ingest("a.xml", "old content")
	require.NoError(t, err)
	lineID := file.Lines[0].ID

	require.NoError(t, s.UpdateContent(file.ID, lineID, "new content"))

	line, idx, ok := s.Line(file.ID, lineID)
	require.True(t, ok)
	assert.Equal(t, "new content", line.Content)
	assert.Equal(t, 0, idx)
	assert.Equal(t, lineID, line.ID)
}

func TestUpdateLine_UnknownTargets(t *testing.T) {
	s := newTestStore()
	file, err := s.Ingest("a.xml", "one line")
	require.NoError(t, err)

	var integrityErr *auditerr.IntegrityError

	err = s.ToggleStatus("file-missing", file.Lines[0].ID)
	assert.ErrorAs(t, err, &integrityErr)

	err = s.ToggleStatus(file.ID, "line-missing")
	assert.ErrorAs(t, err, &integrityErr)
}

func TestFiles_SnapshotIsolation(t *testing.T) {
	s := newTestStore()
	file, err := s.Ingest("a.xml", "one line")
	require.NoError(t, err)

	before := s.Files()
	require.NoError(t, s.ToggleStatus(file.ID, file.Lines[0].ID))

	// The slice grabbed before the mutation still shows the old status.
	assert.Equal(t, models.LineStatusPending, before[0].Lines[0].Status)
	assert.Equal(t, models.LineStatusReviewed, s.Files()[0].Lines[0].Status)
}

func TestRemove(t *testing.T) {
	s := newTestStore()
	a, err := s.Ingest("a.xml", "line")
	require.NoError(t, err)
	_, err = s.Ingest("b.xml", "line")
	require.NoError(t, err)

	assert.True(t, s.Remove(a.ID))
	assert.False(t, s.Remove(a.ID))

	files := s.Files()
	require.Len(t, files, 1)
	assert.Equal(t, "b.xml", files[0].Name)
}

func TestReplace(t *testing.T) {
	s := newTestStore()
	_, err := s.Ingest("a.xml", "line")
	require.NoError(t, err)

	restored := []models.LineFile{
		{ID: "file-x", Name: "x.xml", Lines: []models.Line{{ID: "line-x-0", Content: "c", Status: models.LineStatusPending}}},
	}
	s.Replace(restored)

	files := s.Files()
	require.Len(t, files, 1)
	assert.Equal(t, "x.xml", files[0].Name)

	// Mutating the input after Replace must not leak into the store.
	restored[0].Lines[0].Content = "mutated"
	assert.Equal(t, "c", s.Files()[0].Lines[0].Content)
}
