package analysis

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mduarte/cca-audit/internal/models"
)

func lineFile(id, name string, contents ...string) models.LineFile {
	f := models.LineFile{ID: id, Name: name}
	for i, c := range contents {
		f.Lines = append(f.Lines, models.Line{
			ID:      "line-" + id + "-" + string(rune('0'+i)),
			Content: c,
			Status:  models.LineStatusPending,
		})
	}
	return f
}

func TestFindDuplicateIdentifiers(t *testing.T) {
	files := []models.LineFile{
		lineFile("f1", "a.xml",
			`<Registro ndec="12345" vusd="100.00" vusdi="10.00"/>`,
			`<Registro ndec="99999" vusd="50.00"/>`,
		),
		lineFile("f2", "b.xml",
			`<Registro ndec="12345" vusd="25.50"/>`,
		),
	}

	groups := FindDuplicateIdentifiers(files)
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, "12345", g.Identifier)
	require.Len(t, g.Occurrences, 2)
	assert.Equal(t, "a.xml", g.Occurrences[0].FileName)
	assert.Equal(t, "b.xml", g.Occurrences[1].FileName)
	assert.True(t, g.TotalVusd.Equal(decimal.RequireFromString("125.50")))
	assert.True(t, g.TotalVusdi.Equal(decimal.RequireFromString("10.00")))
}

func TestFindDuplicateIdentifiers_LeadingZeros(t *testing.T) {
	// Zero-padded and unpadded identifiers count as the same declaration.
	files := []models.LineFile{
		lineFile("f1", "a.xml",
			`<Registro ndec="0012345"/>`,
			`<Registro ndec="12345"/>`,
		),
	}

	groups := FindDuplicateIdentifiers(files)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Occurrences, 2)
}

func TestFindDuplicateIdentifiers_FallbackKeys(t *testing.T) {
	files := []models.LineFile{
		lineFile("f1", "a.xml",
			`<Item ndeci="777"/>`,
			`<Declaracion ndex="777"/>`,
		),
	}

	groups := FindDuplicateIdentifiers(files)
	require.Len(t, groups, 1)
	assert.Equal(t, "777", groups[0].Identifier)
}

func TestFindDuplicateIdentifiers_IgnoresNonRecordLines(t *testing.T) {
	files := []models.LineFile{
		lineFile("f1", "a.xml",
			`<Encabezado ndec="12345"/>`,
			`<Encabezado ndec="12345"/>`,
			`<Registro seq="1"/>`,
		),
	}

	assert.Empty(t, FindDuplicateIdentifiers(files))
}

func TestFindAlerts(t *testing.T) {
	alert := "SIN LEGALIZAR"
	safe := "O.K."
	files := []models.LineFile{
		{
			ID:   "f1",
			Name: "a.xml",
			Lines: []models.Line{
				{ID: "l1", Content: "c1", Comment: &alert},
				{ID: "l2", Content: "c2", Comment: &safe},
				{ID: "l3", Content: "c3"},
			},
		},
	}

	alerts := FindAlerts(files)
	require.Len(t, alerts, 1)
	assert.Equal(t, "a.xml", alerts[0].FileName)
	assert.Equal(t, 1, alerts[0].LineNumber)
	assert.Equal(t, "SIN LEGALIZAR", alerts[0].Comment)
}
