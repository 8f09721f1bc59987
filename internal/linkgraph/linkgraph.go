// Package linkgraph maintains the bidirectional associations between ledger
// movements and their external records: XML lines and declaration files.
// Link creation is idempotent, not additive, and reverse lookups are graph
// queries over the movement list itself so there is no second index to keep
// in sync.
package linkgraph

import (
	"fmt"
	"sync"

	"mduarte/cca-audit/internal/auditerr"
	"mduarte/cca-audit/internal/linestore"
	"mduarte/cca-audit/internal/logging"
	"mduarte/cca-audit/internal/models"
)

// Graph owns the movement list and every SmartLink on it.
type Graph struct {
	mu        sync.RWMutex
	movements []models.Movement
	log       logging.Logger
}

// New creates an empty Graph.
func New(logger logging.Logger) *Graph {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Graph{log: logger}
}

// SetMovements replaces the entire movement list, as the template-generation
// flow does after statement extraction.
func (g *Graph) SetMovements(movements []models.Movement) {
	copied := make([]models.Movement, len(movements))
	for i := range movements {
		copied[i] = movements[i].Clone()
	}
	g.mu.Lock()
	g.movements = copied
	g.mu.Unlock()
}

// Movements returns the current movement list.
func (g *Graph) Movements() []models.Movement {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.movements
}

// Movement returns the movement with the given id.
func (g *Graph) Movement(id string) (models.Movement, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, m := range g.movements {
		if m.ID == id {
			return m, true
		}
	}
	return models.Movement{}, false
}

// AddXMLLink inserts an xml SmartLink unless the (fileID, lineID) pair is
// already present in the movement's xml-link set.
func (g *Graph) AddXMLLink(movementID, fileID, lineID, label, fileName string) (models.Movement, error) {
	return g.update(movementID, func(m models.Movement) models.Movement {
		if m.HasXMLLink(fileID, lineID) {
			return m
		}
		m.LinkedXMLs = append(m.LinkedXMLs, models.SmartLink{
			Type:           models.LinkTypeXML,
			Label:          label,
			TargetFileID:   fileID,
			TargetLineID:   lineID,
			TargetFileName: fileName,
		})
		return m
	})
}

// AddDeclarationLink inserts a pdf SmartLink unless the file name is already
// linked on the movement.
func (g *Graph) AddDeclarationLink(movementID, fileName string) (models.Movement, error) {
	return g.update(movementID, func(m models.Movement) models.Movement {
		if m.HasDeclarationLink(fileName) {
			return m
		}
		m.LinkedDeclarations = append(m.LinkedDeclarations, models.SmartLink{
			Type:           models.LinkTypePDF,
			Label:          fileName,
			TargetFileName: fileName,
		})
		return m
	})
}

// RemoveXMLLink drops the xml link for the (fileID, lineID) pair.
func (g *Graph) RemoveXMLLink(movementID, fileID, lineID string) (models.Movement, error) {
	return g.update(movementID, func(m models.Movement) models.Movement {
		kept := m.LinkedXMLs[:0:0]
		for _, l := range m.LinkedXMLs {
			if l.TargetFileID == fileID && l.TargetLineID == lineID {
				continue
			}
			kept = append(kept, l)
		}
		m.LinkedXMLs = kept
		return m
	})
}

// RemoveDeclarationLink drops the pdf link for the file name.
func (g *Graph) RemoveDeclarationLink(movementID, fileName string) (models.Movement, error) {
	return g.update(movementID, func(m models.Movement) models.Movement {
		kept := m.LinkedDeclarations[:0:0]
		for _, l := range m.LinkedDeclarations {
			if l.TargetFileName == fileName {
				continue
			}
			kept = append(kept, l)
		}
		m.LinkedDeclarations = kept
		return m
	})
}

// MovementsForLine returns the ids of every movement linked to the line.
// Line ids are globally unique, so the lookup keys on the line alone.
func (g *Graph) MovementsForLine(lineID string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var ids []string
	for _, m := range g.movements {
		for _, l := range m.LinkedXMLs {
			if l.TargetLineID == lineID {
				ids = append(ids, m.ID)
				break
			}
		}
	}
	return ids
}

// MovementsForDeclaration returns the ids of every movement linked to the
// declaration file name.
func (g *Graph) MovementsForDeclaration(fileName string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var ids []string
	for _, m := range g.movements {
		if m.HasDeclarationLink(fileName) {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// IsDangling reports whether the link's target no longer exists. Dangling
// links stay on the movement as display-only state; callers must treat them
// as inert rather than failing.
func (g *Graph) IsDangling(link models.SmartLink, lines *linestore.Store, registry *models.AuditFileRegistry) bool {
	switch link.Type {
	case models.LinkTypeXML:
		_, _, ok := lines.Line(link.TargetFileID, link.TargetLineID)
		return !ok
	case models.LinkTypePDF:
		if registry == nil {
			return true
		}
		_, ok := registry.FindByName(models.CategoryDeclaraciones, link.TargetFileName)
		return !ok
	}
	return true
}

// update applies fn to one movement, replacing the slice so concurrent
// readers keep a consistent view.
func (g *Graph) update(movementID string, fn func(models.Movement) models.Movement) (models.Movement, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i, m := range g.movements {
		if m.ID != movementID {
			continue
		}
		updated := fn(m.Clone())
		newMovements := append([]models.Movement{}, g.movements...)
		newMovements[i] = updated
		g.movements = newMovements
		return updated, nil
	}
	return models.Movement{}, fmt.Errorf("movement %s: %w", movementID,
		&auditerr.IntegrityError{Kind: "movement", Target: movementID})
}
