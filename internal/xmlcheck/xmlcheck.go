// Package xmlcheck provides a best-effort well-formedness probe for
// uploaded XML files. It is diagnostics only: malformed files still ingest
// line by line, the probe just annotates what the auditor is looking at.
package xmlcheck

import (
	"strings"

	"gopkg.in/xmlpath.v2"

	"mduarte/cca-audit/internal/xmlattr"
)

// Report summarizes one probed file.
type Report struct {
	WellFormed  bool
	RecordCount int
}

var recordPaths = compilePaths([]string{
	"//Registro", "//Item", "//Declaracion", "//Factura",
	"//Comprobante", "//cservicios", "//operaciones",
})

func compilePaths(exprs []string) []*xmlpath.Path {
	paths := make([]*xmlpath.Path, 0, len(exprs))
	for _, e := range exprs {
		paths = append(paths, xmlpath.MustCompile(e))
	}
	return paths
}

// Probe parses the raw text as XML when possible and counts its main-record
// elements. A parse failure falls back to a line-level tag scan, so the
// record count survives malformed input.
func Probe(rawText string) Report {
	root, err := xmlpath.Parse(strings.NewReader(rawText))
	if err != nil {
		return Report{
			WellFormed:  false,
			RecordCount: countByLineScan(rawText),
		}
	}

	rep := Report{WellFormed: true}
	for _, p := range recordPaths {
		iter := p.Iter(root)
		for iter.Next() {
			rep.RecordCount++
		}
	}
	if rep.RecordCount == 0 {
		rep.RecordCount = countByLineScan(rawText)
	}
	return rep
}

func countByLineScan(rawText string) int {
	count := 0
	for _, line := range strings.Split(rawText, "\n") {
		if xmlattr.IsRecordLine(line) {
			count++
		}
	}
	return count
}
