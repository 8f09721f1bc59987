package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProcessedDeclaration is the derived metadata of one customs declaration
// file, produced by the metadata extraction collaborator. It is keyed by
// file id and looked up by declaration number when resolving cross-links.
type ProcessedDeclaration struct {
	ID            string          `json:"id"`
	FileName      string          `json:"fileName"`
	Date          string          `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Number        string          `json:"number"`
	Numeral       string          `json:"numeral,omitempty"`
	ContentSample string          `json:"contentSample"`
}

// NumberMatches compares declaration numbers ignoring leading zeros, so a
// zero-padded XML value still finds its declaration.
func NumberMatches(a, b string) bool {
	if a == b {
		return true
	}
	return trimLeadingZeros(a) == trimLeadingZeros(b)
}

func trimLeadingZeros(s string) string {
	t := strings.TrimLeft(strings.TrimSpace(s), "0")
	if t == "" && s != "" {
		return "0"
	}
	return t
}

// ReviewStatus is the state of a declaration review.
type ReviewStatus string

const (
	ReviewPending          ReviewStatus = "pending"
	ReviewApproved         ReviewStatus = "approved"
	ReviewCorrectionNeeded ReviewStatus = "correction_needed"
)

// DeclarationMetadata holds the structured fields the extraction
// collaborator reads off a declaration's text.
type DeclarationMetadata struct {
	Numero        string          `json:"numero"`
	Fecha         string          `json:"fecha"` // YYYY-MM-DD
	NIT           string          `json:"nit"`
	Numeral       string          `json:"numeral"`
	Valor         decimal.Decimal `json:"valor"`
	Moneda        string          `json:"moneda"`
	TipoOperacion string          `json:"tipoOperacion"` // "Ingreso" | "Egreso"
}

// DeclarationReview is the auditor's verdict on one declaration file.
// AuditorComments is the source of the overwrite-style comment propagation
// to linked movements.
type DeclarationReview struct {
	FileID          string              `json:"fileId"`
	FileName        string              `json:"fileName"`
	Status          ReviewStatus        `json:"status"`
	Metadata        DeclarationMetadata `json:"metadata"`
	AuditorComments string              `json:"auditorComments"`
	ReviewedBy      string              `json:"reviewedBy"`
	ReviewedAt      string              `json:"reviewedAt,omitempty"`
}
