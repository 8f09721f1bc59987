package extractor

import (
	"context"

	"mduarte/cca-audit/internal/models"
)

// MockMetadataExtractor returns canned declarations for tests.
type MockMetadataExtractor struct {
	Declarations []models.ProcessedDeclaration
	Err          error
}

func (m *MockMetadataExtractor) ExtractDeclarations(_ context.Context, docs []Document) ([]models.ProcessedDeclaration, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Declarations != nil {
		return m.Declarations, nil
	}
	// Default: one declaration per document, keyed by name.
	var out []models.ProcessedDeclaration
	for _, d := range docs {
		out = append(out, models.ProcessedDeclaration{
			ID:       d.ID,
			FileName: d.Name,
			Number:   d.Name,
		})
	}
	return out, nil
}

// MockMovementExtractor returns canned movements for tests.
type MockMovementExtractor struct {
	Movements []models.Movement
	Err       error
}

func (m *MockMovementExtractor) ExtractMovements(context.Context, []Statement) ([]models.Movement, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Movements, nil
}
