// Package extractor defines the external collaborator interfaces the
// reconciliation core depends on: PDF text extraction and AI-assisted
// metadata extraction. The core imposes no timeout on collaborators; that
// policy belongs to the caller through ctx.
package extractor

import (
	"context"

	"mduarte/cca-audit/internal/auditerr"
	"mduarte/cca-audit/internal/logging"
	"mduarte/cca-audit/internal/models"
)

// TextExtractor turns a binary document into an ordered sequence of
// per-page plain-text strings. Implementations must return an empty
// sequence, not an error, for zero-byte or corrupt input so one bad file
// never fails a batch.
type TextExtractor interface {
	ExtractPages(ctx context.Context, name string, data []byte) ([]string, error)
}

// Document is one item of a bulk metadata extraction request.
type Document struct {
	ID   string
	Name string
	Text string
}

// MetadataExtractor derives structured declaration metadata from raw text.
type MetadataExtractor interface {
	ExtractDeclarations(ctx context.Context, docs []Document) ([]models.ProcessedDeclaration, error)
}

// Statement is one bank statement handed to the movement extractor.
type Statement struct {
	Name  string
	Pages []string
}

// MovementExtractor derives ledger movements from bank-statement text. The
// template-generation flow replaces the entire movement list with its
// result.
type MovementExtractor interface {
	ExtractMovements(ctx context.Context, statements []Statement) ([]models.Movement, error)
}

// BatchResult reports a per-file batch outcome: failures are isolated and
// counted, never propagated.
type BatchResult struct {
	Declarations []models.ProcessedDeclaration
	Failed       int
}

// ProcessDeclarationFiles extracts text then metadata for a batch of
// declaration files. Each file's extraction is independent; a failure
// degrades that file to "no metadata" and the rest of the batch continues.
// Results whose ids are already known are dropped before merging.
func ProcessDeclarationFiles(
	ctx context.Context,
	text TextExtractor,
	meta MetadataExtractor,
	files []models.AuditFile,
	payloads map[string][]byte,
	knownIDs map[string]bool,
	log logging.Logger,
) (BatchResult, error) {
	if log == nil {
		log = logging.GetLogger()
	}

	var docs []Document
	failed := 0
	for _, f := range files {
		pages, err := text.ExtractPages(ctx, f.Metadata.Name, payloads[f.ID])
		if err != nil {
			failed++
			extErr := &auditerr.ExtractionError{Item: f.Metadata.Name, Err: err}
			log.WithError(extErr).Warn("Skipping declaration file",
				logging.Field{Key: logging.FieldFile, Value: f.Metadata.Name})
			continue
		}
		if len(pages) == 0 {
			log.Warn("Declaration file produced no text",
				logging.Field{Key: logging.FieldFile, Value: f.Metadata.Name})
			continue
		}
		docs = append(docs, Document{ID: f.ID, Name: f.Metadata.Name, Text: joinPages(pages)})
	}

	res := BatchResult{Failed: failed}
	if len(docs) == 0 {
		return res, nil
	}

	declarations, err := meta.ExtractDeclarations(ctx, docs)
	if err != nil {
		// Collaborator failure degrades the whole request to "no metadata"
		// for these items; the caller surfaces the count, not a hard stop.
		res.Failed += len(docs)
		log.WithError(err).Error("Declaration metadata extraction failed",
			logging.Field{Key: logging.FieldCount, Value: len(docs)})
		return res, nil
	}

	for _, d := range declarations {
		if knownIDs[d.ID] {
			continue
		}
		res.Declarations = append(res.Declarations, d)
	}
	return res, nil
}

// MovementBatchResult mirrors BatchResult for the template-generation flow.
type MovementBatchResult struct {
	Movements []models.Movement
	Failed    int
}

// ProcessStatementFiles extracts text then movements for a batch of bank
// statements. Text failures are isolated per file; a collaborator failure
// degrades the whole request to an empty movement list.
func ProcessStatementFiles(
	ctx context.Context,
	text TextExtractor,
	mov MovementExtractor,
	files []models.AuditFile,
	payloads map[string][]byte,
	log logging.Logger,
) (MovementBatchResult, error) {
	if log == nil {
		log = logging.GetLogger()
	}

	var statements []Statement
	failed := 0
	for _, f := range files {
		pages, err := text.ExtractPages(ctx, f.Metadata.Name, payloads[f.ID])
		if err != nil {
			failed++
			extErr := &auditerr.ExtractionError{Item: f.Metadata.Name, Err: err}
			log.WithError(extErr).Warn("Skipping statement file",
				logging.Field{Key: logging.FieldFile, Value: f.Metadata.Name})
			continue
		}
		if len(pages) == 0 {
			log.Warn("Statement file produced no text",
				logging.Field{Key: logging.FieldFile, Value: f.Metadata.Name})
			continue
		}
		statements = append(statements, Statement{Name: f.Metadata.Name, Pages: pages})
	}

	res := MovementBatchResult{Failed: failed}
	if len(statements) == 0 {
		return res, nil
	}

	movements, err := mov.ExtractMovements(ctx, statements)
	if err != nil {
		res.Failed += len(statements)
		log.WithError(err).Error("Movement extraction failed",
			logging.Field{Key: logging.FieldCount, Value: len(statements)})
		return res, nil
	}
	res.Movements = movements
	return res, nil
}

func joinPages(pages []string) string {
	out := ""
	for i, p := range pages {
		if i > 0 {
			out += "\n"
		}
		out += p
	}
	return out
}
