package xmlattr

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"mduarte/cca-audit/internal/models"
)

func TestExtract(t *testing.T) {
	attrs := Extract(`<Registro ndec="12345" vusd="150.50" vusdi="20.25"/>`)
	assert.True(t, attrs.Vusd.Equal(decimal.RequireFromString("150.50")))
	assert.True(t, attrs.Vusdi.Equal(decimal.RequireFromString("20.25")))
}

func TestExtract_CaseInsensitive(t *testing.T) {
	attrs := Extract(`<Registro VUSD="99.9"/>`)
	assert.True(t, attrs.Vusd.Equal(decimal.RequireFromString("99.9")))
}

func TestExtract_MissingOrMalformed(t *testing.T) {
	attrs := Extract(`<Registro ndec="1"/>`)
	assert.True(t, attrs.Vusd.IsZero())
	assert.True(t, attrs.Vusdi.IsZero())

	attrs = Extract(`<Registro vusd="not-a-number"/>`)
	assert.True(t, attrs.Vusd.IsZero())
}

func TestAttr(t *testing.T) {
	content := `<Registro ndec="0012345" ndeci="77"/>`

	v, ok := Attr(content, "ndec")
	assert.True(t, ok)
	assert.Equal(t, "0012345", v)

	v, ok = Attr(content, "NDECI")
	assert.True(t, ok)
	assert.Equal(t, "77", v)

	_, ok = Attr(content, "ndex")
	assert.False(t, ok)
}

func TestIsRecordLine(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{`<Registro ndec="1"/>`, true},
		{`  <Item id="2"/>`, true},
		{`<registro/>`, true},
		{`<cservicios vusd="3"/>`, true},
		{`<Encabezado fecha="2024-01-01"/>`, false},
		{`plain text`, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsRecordLine(tt.content), tt.content)
	}
}

func TestSummarize(t *testing.T) {
	lines := []models.Line{
		{Content: `<Registro vusd="10.00" vusdi="1.50"/>`},
		{Content: `<Registro vusd="5.25"/>`},
		{Content: `no attributes here`},
	}

	sum := Summarize(lines)
	assert.Equal(t, 3, sum.Count)
	assert.True(t, sum.Vusd.Equal(decimal.RequireFromString("15.25")))
	assert.True(t, sum.Vusdi.Equal(decimal.RequireFromString("1.50")))
}
