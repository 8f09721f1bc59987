// Package xmlattr derives numeric attributes from raw XML line content.
// Source lines are not guaranteed to be well-formed fragments in isolation,
// so the lookup is a local regular-expression match over key="value" pairs,
// never strict XML parsing.
package xmlattr

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"mduarte/cca-audit/internal/models"
)

var (
	vusdPattern  = regexp.MustCompile(`(?i)vusd="([^"]+)"`)
	vusdiPattern = regexp.MustCompile(`(?i)vusdi="([^"]+)"`)

	recordTags = regexp.MustCompile(`(?i)^<(Registro|Item|Declaracion|Factura|Comprobante|cservicios|operaciones)`)
)

// Attributes are the declared amount fields of one line. Missing attributes
// default to zero.
type Attributes struct {
	Vusd  decimal.Decimal
	Vusdi decimal.Decimal
}

// Extract reads the vusd and vusdi attributes from the line content.
func Extract(content string) Attributes {
	return Attributes{
		Vusd:  matchDecimal(vusdPattern, content),
		Vusdi: matchDecimal(vusdiPattern, content),
	}
}

func matchDecimal(p *regexp.Regexp, content string) decimal.Decimal {
	m := p.FindStringSubmatch(content)
	if len(m) < 2 {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSpace(m[1]))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Attr returns the raw value of an arbitrary attribute, matched
// case-insensitively on the key.
func Attr(content, key string) (string, bool) {
	p, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(key) + `="([^"]*)"`)
	if err != nil {
		return "", false
	}
	m := p.FindStringSubmatch(content)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// IsRecordLine reports whether the trimmed content opens one of the known
// main-record elements.
func IsRecordLine(content string) bool {
	return recordTags.MatchString(strings.TrimSpace(content))
}

// SelectionSummary totals the declared amounts over a line selection.
type SelectionSummary struct {
	Vusd  decimal.Decimal
	Vusdi decimal.Decimal
	Count int
}

// Summarize totals vusd/vusdi over the given lines.
func Summarize(lines []models.Line) SelectionSummary {
	sum := SelectionSummary{Vusd: decimal.Zero, Vusdi: decimal.Zero}
	for i := range lines {
		attrs := Extract(lines[i].Content)
		sum.Vusd = sum.Vusd.Add(attrs.Vusd)
		sum.Vusdi = sum.Vusdi.Add(attrs.Vusdi)
		sum.Count++
	}
	return sum
}
