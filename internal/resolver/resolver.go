// Package resolver implements the matching algorithm that connects a ledger
// movement to its XML record by declaration number or declared amount.
//
// Matching is first-hit in document order: files in registration order,
// lines in file order, declaration number checked before amount on each
// line. There is no scoring and no tolerance window; if two lines tie on
// amount the first encountered wins. This is a known, accepted ambiguity.
package resolver

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"mduarte/cca-audit/internal/linestore"
	"mduarte/cca-audit/internal/linkgraph"
	"mduarte/cca-audit/internal/logging"
)

// Request carries the match criteria. Number and Amount are independent:
// either alone is enough, and when both are present a line may satisfy
// either one. MovementID, when set, asks the resolver to create the xml
// SmartLink on the hit.
type Request struct {
	Number     string
	Amount     decimal.Decimal
	HasAmount  bool
	Date       string
	MovementID string
}

// Result reports the outcome. Found=false is a negative result, not an
// error; the caller owns the user-facing messaging.
type Result struct {
	Found      bool
	FileID     string
	FileName   string
	LineID     string
	LineNumber int // 1-based
	Page       int
	Marked     bool // status flipped pending -> reviewed by this call
	Linked     bool // a new SmartLink was created by this call
}

// Resolver scans the line store and mutates review status and links on a
// hit. It is stateless between calls apart from those mutations.
type Resolver struct {
	lines    *linestore.Store
	graph    *linkgraph.Graph
	pageSize int
	log      logging.Logger
}

// New creates a Resolver. pageSize controls the page number returned for
// navigation.
func New(lines *linestore.Store, graph *linkgraph.Graph, pageSize int, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if pageSize < 1 {
		pageSize = 100
	}
	return &Resolver{lines: lines, graph: graph, pageSize: pageSize, log: logger}
}

// Resolve finds the first line matching the request, marks it reviewed and
// optionally links it to the requesting movement.
func (r *Resolver) Resolve(req Request) Result {
	number := strings.TrimSpace(req.Number)
	hasNumber := number != ""

	var amountPlain, amountFixed string
	if req.HasAmount {
		abs := req.Amount.Abs()
		amountPlain = abs.String()
		amountFixed = abs.StringFixed(2)
	}

	if !hasNumber && !req.HasAmount {
		return Result{}
	}

	for _, file := range r.lines.Files() {
		for idx, line := range file.Lines {
			content := strings.ToLower(line.Content)

			if !matchesNumber(content, number, hasNumber) &&
				!matchesAmount(content, amountPlain, amountFixed, req.HasAmount) {
				continue
			}

			res := Result{
				Found:      true,
				FileID:     file.ID,
				FileName:   file.Name,
				LineID:     line.ID,
				LineNumber: idx + 1,
				Page:       idx/r.pageSize + 1,
			}

			marked, err := r.lines.MarkReviewed(file.ID, line.ID)
			if err != nil {
				r.log.WithError(err).Warn("Failed to mark resolved line reviewed",
					logging.Field{Key: logging.FieldLineID, Value: line.ID})
			}
			res.Marked = marked

			if req.MovementID != "" {
				label := fmt.Sprintf("XML: %s (Línea %d)", file.Name, idx+1)
				before, _ := r.graph.Movement(req.MovementID)
				updated, err := r.graph.AddXMLLink(req.MovementID, file.ID, line.ID, label, file.Name)
				if err != nil {
					r.log.WithError(err).Warn("Failed to link resolved line",
						logging.Field{Key: logging.FieldMovement, Value: req.MovementID})
				} else {
					res.Linked = len(updated.LinkedXMLs) > len(before.LinkedXMLs)
				}
			}

			r.log.Info("Resolved movement to XML line",
				logging.Field{Key: logging.FieldFileID, Value: file.ID},
				logging.Field{Key: logging.FieldLineID, Value: line.ID},
				logging.Field{Key: logging.FieldPage, Value: res.Page})
			return res
		}
	}

	r.log.Info("No XML record matched",
		logging.Field{Key: "number", Value: number},
		logging.Field{Key: "amount", Value: amountPlain})
	return Result{}
}

// matchesNumber checks the ndec attribute both as the literal string and as
// its numeric-coerced form, so zero-padded and unpadded representations
// find each other.
func matchesNumber(content, number string, hasNumber bool) bool {
	if !hasNumber {
		return false
	}
	needle := strings.ToLower(number)
	if strings.Contains(content, `ndec="`+needle+`"`) {
		return true
	}
	coerced := strings.TrimLeft(needle, "0")
	if coerced == "" {
		coerced = "0"
	}
	return coerced != needle && strings.Contains(content, `ndec="`+coerced+`"`)
}

// matchesAmount checks the vusd attribute against the absolute amount both
// as a plain decimal string and fixed to two decimals, covering
// trailing-zero formatting differences.
func matchesAmount(content, plain, fixed string, hasAmount bool) bool {
	if !hasAmount {
		return false
	}
	if strings.Contains(content, `vusd="`+plain+`"`) {
		return true
	}
	return fixed != plain && strings.Contains(content, `vusd="`+fixed+`"`)
}
