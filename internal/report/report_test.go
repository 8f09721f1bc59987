package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mduarte/cca-audit/internal/models"
)

func testMovements() []models.Movement {
	return []models.Movement{
		{
			ID:          "mov-1",
			Date:        "2024-03-15",
			Description: "GIRO AL EXTERIOR",
			Amount:      decimal.RequireFromString("-150.50"),
			SourceFile:  "extracto-marzo.pdf",
			Operations: []models.Operation{
				{
					ID:              "op-1",
					Amount:          decimal.RequireFromString("100"),
					IncludeInReview: true,
					ReviewData: models.ReviewData{
						Documental: models.ReviewAreaData{Status: "aprobado"},
						Comments:   "[XML]: legalizado",
					},
				},
				{
					ID:     "op-2",
					Amount: decimal.RequireFromString("50.5"),
				},
			},
			LinkedXMLs: []models.SmartLink{
				{Type: models.LinkTypeXML, Label: "XML: registros.xml (Línea 3)", TargetFileName: "registros.xml"},
			},
			LinkedDeclarations: []models.SmartLink{
				{Type: models.LinkTypePDF, TargetFileName: "decl-500.pdf"},
			},
		},
		{
			ID:     "mov-2",
			Date:   "2024-03-16",
			Amount: decimal.RequireFromString("75"),
		},
	}
}

func TestBuildRows(t *testing.T) {
	rows := BuildRows(testMovements())
	require.Len(t, rows, 3)

	assert.Equal(t, "mov-1", rows[0].MovementID)
	assert.Equal(t, "op-1", rows[0].OperationID)
	assert.Equal(t, "100.00", rows[0].OpAmount)
	assert.Equal(t, "-150.50", rows[0].Amount)
	assert.True(t, rows[0].InReview)
	assert.Equal(t, "aprobado", rows[0].Documental)
	assert.Equal(t, "[XML]: legalizado", rows[0].Comments)
	assert.Equal(t, "XML: registros.xml (Línea 3)", rows[0].XMLLinks)
	assert.Equal(t, "decl-500.pdf", rows[0].Declarations)

	assert.Equal(t, "op-2", rows[1].OperationID)
	assert.False(t, rows[1].InReview)

	// A movement without operations still exports one row.
	assert.Equal(t, "mov-2", rows[2].MovementID)
	assert.Empty(t, rows[2].OperationID)
}

func TestWriteMovementsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "movements.csv")

	require.NoError(t, WriteMovementsCSV(testMovements(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 4) // header + 3 rows
	assert.Contains(t, lines[0], "MovementID")
	assert.Contains(t, content, "GIRO AL EXTERIOR")
	assert.Contains(t, content, "decl-500.pdf")
}

func TestWriteMovementsCSV_NilInput(t *testing.T) {
	err := WriteMovementsCSV(nil, filepath.Join(t.TempDir(), "out.csv"))
	assert.Error(t, err)
}
