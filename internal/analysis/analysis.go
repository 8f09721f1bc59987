// Package analysis derives review aids from the ingested state: duplicate
// declaration identifiers across XML files and lines flagged with alert
// comments.
package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"mduarte/cca-audit/internal/commentbank"
	"mduarte/cca-audit/internal/models"
	"mduarte/cca-audit/internal/xmlattr"
)

// identifierKeys are the attributes that carry a declaration identifier on
// a record line, in lookup order.
var identifierKeys = []string{"ndec", "ndeci", "ndex"}

// Occurrence is one line carrying a duplicated identifier.
type Occurrence struct {
	FileID     string
	FileName   string
	LineID     string
	LineNumber int
	Vusd       decimal.Decimal
	Vusdi      decimal.Decimal
}

// DuplicateGroup collects every line sharing one identifier value, with the
// declared amounts totalled for side-by-side comparison.
type DuplicateGroup struct {
	Identifier  string
	Occurrences []Occurrence
	TotalVusd   decimal.Decimal
	TotalVusdi  decimal.Decimal
}

// FindDuplicateIdentifiers scans every record line of every file and groups
// those whose declaration identifier appears more than once. Identifiers
// compare after dropping leading zeros, matching how declarations are
// looked up elsewhere.
func FindDuplicateIdentifiers(files []models.LineFile) []DuplicateGroup {
	groups := make(map[string]*DuplicateGroup)

	for fi := range files {
		f := &files[fi]
		for li := range f.Lines {
			line := &f.Lines[li]
			id, ok := lineIdentifier(line.Content)
			if !ok {
				continue
			}
			key := canonicalIdentifier(id)
			g, seen := groups[key]
			if !seen {
				g = &DuplicateGroup{
					Identifier: id,
					TotalVusd:  decimal.Zero,
					TotalVusdi: decimal.Zero,
				}
				groups[key] = g
			}
			attrs := xmlattr.Extract(line.Content)
			g.Occurrences = append(g.Occurrences, Occurrence{
				FileID:     f.ID,
				FileName:   f.Name,
				LineID:     line.ID,
				LineNumber: li + 1,
				Vusd:       attrs.Vusd,
				Vusdi:      attrs.Vusdi,
			})
			g.TotalVusd = g.TotalVusd.Add(attrs.Vusd)
			g.TotalVusdi = g.TotalVusdi.Add(attrs.Vusdi)
		}
	}

	var out []DuplicateGroup
	for _, g := range groups {
		if len(g.Occurrences) > 1 {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identifier < out[j].Identifier })
	return out
}

func lineIdentifier(content string) (string, bool) {
	if !xmlattr.IsRecordLine(content) {
		return "", false
	}
	for _, key := range identifierKeys {
		if v, ok := xmlattr.Attr(content, key); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func canonicalIdentifier(id string) string {
	if models.NumberMatches(id, "0") {
		return "0"
	}
	trimmed := id
	for len(trimmed) > 1 && trimmed[0] == '0' {
		trimmed = trimmed[1:]
	}
	return trimmed
}

// Alert is one line whose comment is outside the known-safe set and so
// needs auditor attention.
type Alert struct {
	FileID     string
	FileName   string
	LineID     string
	LineNumber int
	Comment    string
}

// FindAlerts lists every commented line whose comment is an alert.
func FindAlerts(files []models.LineFile) []Alert {
	var out []Alert
	for fi := range files {
		f := &files[fi]
		for li := range f.Lines {
			line := &f.Lines[li]
			if !commentbank.IsAlert(line.Comment) {
				continue
			}
			out = append(out, Alert{
				FileID:     f.ID,
				FileName:   f.Name,
				LineID:     line.ID,
				LineNumber: li + 1,
				Comment:    *line.Comment,
			})
		}
	}
	return out
}
