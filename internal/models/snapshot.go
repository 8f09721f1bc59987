package models

// SnapshotVersion is the schema version written by this build. Readers
// accept older or missing versions best-effort; see the snapshot package for
// the migration path.
const SnapshotVersion = 1

// ProgressSnapshot is the single unit of persistence: the full reconciled
// state at a point in time. It reconstructs every entity byte-for-byte
// except binary payloads, which are referenced by id through AuditFiles and
// re-attached from the binary store.
type ProgressSnapshot struct {
	Version                int                    `json:"version"`
	AuditDetails           AuditDetails           `json:"auditDetails"`
	CustomComments         []string               `json:"customComments"`
	ChronologicalMovements []Movement             `json:"chronologicalMovements"`
	FileData               []LineFile             `json:"fileData"`
	DeclarationReviews     []DeclarationReview    `json:"declarationReviews"`
	ProcessedDeclarations  []ProcessedDeclaration `json:"processedDeclarations"`
	AuditFiles             AuditFileRegistry      `json:"auditFiles"`
}

// Clone returns a deep copy, safe to serialize while the live state keeps
// mutating.
func (s ProgressSnapshot) Clone() ProgressSnapshot {
	s.CustomComments = append([]string(nil), s.CustomComments...)

	movements := make([]Movement, len(s.ChronologicalMovements))
	for i := range s.ChronologicalMovements {
		movements[i] = s.ChronologicalMovements[i].Clone()
	}
	s.ChronologicalMovements = movements

	files := make([]LineFile, len(s.FileData))
	for i := range s.FileData {
		files[i] = s.FileData[i].Clone()
	}
	s.FileData = files

	s.DeclarationReviews = append([]DeclarationReview(nil), s.DeclarationReviews...)
	s.ProcessedDeclarations = append([]ProcessedDeclaration(nil), s.ProcessedDeclarations...)
	s.AuditFiles = s.AuditFiles.Clone()
	return s
}
