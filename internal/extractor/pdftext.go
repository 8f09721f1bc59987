package extractor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"mduarte/cca-audit/internal/logging"
)

// PdftotextExtractor implements TextExtractor with the pdftotext
// command-line tool. Pages arrive separated by form feeds in the tool's
// output.
type PdftotextExtractor struct {
	log logging.Logger
}

// NewPdftotextExtractor creates the production text extractor.
func NewPdftotextExtractor(logger logging.Logger) *PdftotextExtractor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &PdftotextExtractor{log: logger}
}

// ExtractPages writes the payload to a temporary file and runs pdftotext
// over it. Zero-byte input and extraction failures return an empty page
// sequence so the surrounding batch continues.
func (e *PdftotextExtractor) ExtractPages(ctx context.Context, name string, data []byte) ([]string, error) {
	if len(data) == 0 {
		e.log.Warn("PDF file is empty, skipping",
			logging.Field{Key: logging.FieldFile, Value: name})
		return []string{}, nil
	}

	tempFile, err := os.CreateTemp("", "*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary PDF file: %w", err)
	}
	defer func() {
		if err := os.Remove(tempFile.Name()); err != nil {
			e.log.WithError(err).Warn("Failed to remove temporary file",
				logging.Field{Key: logging.FieldFile, Value: tempFile.Name()})
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return nil, fmt.Errorf("failed to write temporary PDF file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary PDF file: %w", err)
	}

	textFile := tempFile.Name() + ".txt"
	defer func() {
		_ = os.Remove(textFile)
	}()

	cmd := exec.CommandContext(ctx, "pdftotext", "-layout", tempFile.Name(), textFile)
	if err := cmd.Run(); err != nil {
		e.log.WithError(err).Warn("pdftotext failed, degrading to empty text",
			logging.Field{Key: logging.FieldFile, Value: name})
		return []string{}, nil
	}

	output, err := os.ReadFile(textFile)
	if err != nil {
		return nil, fmt.Errorf("error reading extracted text: %w", err)
	}

	// pdftotext separates pages with form feeds.
	pages := strings.Split(string(output), "\f")
	for len(pages) > 0 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	return pages, nil
}

// MockTextExtractor implements TextExtractor for testing.
type MockTextExtractor struct {
	// PagesByName maps file name to the pages to return.
	PagesByName map[string][]string
	// Err, when set, is returned for every call.
	Err error
}

// ExtractPages returns the predefined pages or error.
func (m *MockTextExtractor) ExtractPages(_ context.Context, name string, _ []byte) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	pages, ok := m.PagesByName[name]
	if !ok {
		return nil, fmt.Errorf("no text configured for %s", name)
	}
	return pages, nil
}
