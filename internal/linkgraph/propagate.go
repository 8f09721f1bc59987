package linkgraph

import (
	"mduarte/cca-audit/internal/logging"
	"mduarte/cca-audit/internal/models"
)

// Comment propagation rules. The two directions are intentionally different
// and must stay that way: an XML line annotation accumulates on the
// operation (append), a declaration review verdict replaces it (overwrite).

// PropagateLineComment appends "[XML]: <comment>" to the comment of every
// operation of every movement linked to the given line. Returns the number
// of movements touched.
func (g *Graph) PropagateLineComment(lineID, comment string) int {
	touched := 0
	for _, id := range g.MovementsForLine(lineID) {
		_, err := g.update(id, func(m models.Movement) models.Movement {
			for i := range m.Operations {
				existing := m.Operations[i].ReviewData.Comments
				if existing != "" {
					m.Operations[i].ReviewData.Comments = existing + "\n[XML]: " + comment
				} else {
					m.Operations[i].ReviewData.Comments = "[XML]: " + comment
				}
			}
			return m
		})
		if err == nil {
			touched++
		}
	}
	if touched > 0 {
		g.log.Debug("Propagated XML line comment",
			logging.Field{Key: logging.FieldLineID, Value: lineID},
			logging.Field{Key: logging.FieldCount, Value: touched})
	}
	return touched
}

// PropagateDeclarationComment overwrites the comment of every operation of
// every movement linked to the declaration file name. Returns the number of
// movements touched.
func (g *Graph) PropagateDeclarationComment(fileName, comment string) int {
	touched := 0
	for _, id := range g.MovementsForDeclaration(fileName) {
		_, err := g.update(id, func(m models.Movement) models.Movement {
			for i := range m.Operations {
				m.Operations[i].ReviewData.Comments = comment
			}
			return m
		})
		if err == nil {
			touched++
		}
	}
	if touched > 0 {
		g.log.Debug("Propagated declaration review comment",
			logging.Field{Key: logging.FieldFile, Value: fileName},
			logging.Field{Key: logging.FieldCount, Value: touched})
	}
	return touched
}
