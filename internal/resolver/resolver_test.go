package resolver

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mduarte/cca-audit/internal/linestore"
	"mduarte/cca-audit/internal/linkgraph"
	"mduarte/cca-audit/internal/logging"
	"mduarte/cca-audit/internal/models"
)

func newFixture(t *testing.T, content string) (*Resolver, *linestore.Store, *linkgraph.Graph, models.LineFile) {
	t.Helper()
	lines := linestore.New(&logging.MockLogger{})
	file, err := lines.Ingest("registros.xml", content)
	require.NoError(t, err)

	graph := linkgraph.New(&logging.MockLogger{})
	graph.SetMovements([]models.Movement{
		{
			ID:     "mov-1",
			Amount: decimal.RequireFromString("-150.50"),
			Operations: []models.Operation{
				{ID: "op-1", Amount: decimal.RequireFromString("150.50"), IncludeInReview: true},
			},
		},
	})

	return New(lines, graph, 100, &logging.MockLogger{}), lines, graph, file
}

func TestResolve_NumberLiteral(t *testing.T) {
	r, lines, _, file := newFixture(t, `<Registro ndec="0012345" vusd="99.99"/>`)

	res := r.Resolve(Request{Number: "0012345"})
	require.True(t, res.Found)
	assert.Equal(t, file.ID, res.FileID)
	assert.Equal(t, 1, res.LineNumber)
	assert.Equal(t, 1, res.Page)
	assert.True(t, res.Marked)

	line, _, ok := lines.Line(res.FileID, res.LineID)
	require.True(t, ok)
	assert.Equal(t, models.LineStatusReviewed, line.Status)
}

func TestResolve_NumberCoerced(t *testing.T) {
	// Unpadded attribute found by a zero-padded declaration number.
	r, _, _, _ := newFixture(t, `<Registro ndec="12345"/>`)

	res := r.Resolve(Request{Number: "0012345"})
	assert.True(t, res.Found)
}

func TestResolve_AmountFallback(t *testing.T) {
	tests := []struct {
		name    string
		content string
		amount  string
	}{
		{"plain form", `<Registro vusd="150.5"/>`, "-150.5"},
		{"fixed form", `<Registro vusd="150.50"/>`, "-150.5"},
		{"positive amount", `<Registro vusd="200.00"/>`, "200"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _, _ := newFixture(t, tt.content)
			res := r.Resolve(Request{
				Number:    "not-present",
				Amount:    decimal.RequireFromString(tt.amount),
				HasAmount: true,
			})
			assert.True(t, res.Found)
		})
	}
}

func TestResolve_NumberWinsOverAmount(t *testing.T) {
	content := `<Registro vusd="150.50"/>` + "\n" + `<Registro ndec="777" vusd="150.50"/>`
	r, _, _, _ := newFixture(t, content)

	// The amount matches line 1, but line order decides: each line checks
	// number then amount, so the first line's amount hit wins overall.
	res := r.Resolve(Request{
		Number:    "777",
		Amount:    decimal.RequireFromString("150.50"),
		HasAmount: true,
	})
	require.True(t, res.Found)
	assert.Equal(t, 1, res.LineNumber)
}

func TestResolve_FirstHitWins(t *testing.T) {
	content := `<Registro ndec="555"/>` + "\n" + `<Registro ndec="555"/>`
	r, _, _, _ := newFixture(t, content)

	res := r.Resolve(Request{Number: "555"})
	require.True(t, res.Found)
	assert.Equal(t, 1, res.LineNumber)
}

func TestResolve_NoMatch(t *testing.T) {
	r, _, _, _ := newFixture(t, `<Registro ndec="1"/>`)

	res := r.Resolve(Request{Number: "999"})
	assert.False(t, res.Found)
	assert.False(t, res.Marked)
}

func TestResolve_EmptyRequest(t *testing.T) {
	r, _, _, _ := newFixture(t, `<Registro ndec="1"/>`)

	res := r.Resolve(Request{})
	assert.False(t, res.Found)
}

func TestResolve_LinksMovement(t *testing.T) {
	r, _, graph, file := newFixture(t, `<Registro ndec="12345" vusd="150.50"/>`)

	res := r.Resolve(Request{Number: "12345", MovementID: "mov-1"})
	require.True(t, res.Found)
	assert.True(t, res.Linked)

	m, ok := graph.Movement("mov-1")
	require.True(t, ok)
	require.Len(t, m.LinkedXMLs, 1)
	assert.Equal(t, "XML: registros.xml (Línea 1)", m.LinkedXMLs[0].Label)
	assert.Equal(t, file.ID, m.LinkedXMLs[0].TargetFileID)

	// Resolving again is idempotent: already reviewed, already linked.
	res = r.Resolve(Request{Number: "12345", MovementID: "mov-1"})
	require.True(t, res.Found)
	assert.False(t, res.Marked)
	assert.False(t, res.Linked)
	m, _ = graph.Movement("mov-1")
	assert.Len(t, m.LinkedXMLs, 1)
}

func TestResolve_UnknownMovementStillMatches(t *testing.T) {
	r, _, _, _ := newFixture(t, `<Registro ndec="12345"/>`)

	// A bad movement id degrades to an unlinked hit, not a failure.
	res := r.Resolve(Request{Number: "12345", MovementID: "mov-missing"})
	require.True(t, res.Found)
	assert.True(t, res.Marked)
	assert.False(t, res.Linked)
}
