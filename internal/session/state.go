package session

import (
	"sync"

	"mduarte/cca-audit/internal/commentbank"
	"mduarte/cca-audit/internal/linestore"
	"mduarte/cca-audit/internal/linkgraph"
	"mduarte/cca-audit/internal/logging"
	"mduarte/cca-audit/internal/models"
)

// State is the live working set of one audit: every entity the snapshot
// round-trips, held in its mutable form. Line content and movement links
// live in their own stores; State owns the rest.
type State struct {
	mu sync.RWMutex

	details      models.AuditDetails
	reviews      []models.DeclarationReview
	declarations []models.ProcessedDeclaration
	registry     models.AuditFileRegistry

	Comments *commentbank.Bank
	Lines    *linestore.Store
	Graph    *linkgraph.Graph

	log logging.Logger
}

// NewState creates an empty working set.
func NewState(logger logging.Logger) *State {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &State{
		Comments: commentbank.New(),
		Lines:    linestore.New(logger),
		Graph:    linkgraph.New(logger),
		log:      logger,
	}
}

// Details returns the audit header.
func (s *State) Details() models.AuditDetails {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.details
}

// SetDetails replaces the audit header.
func (s *State) SetDetails(d models.AuditDetails) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details = d
}

// Declarations returns the processed declaration metadata.
func (s *State) Declarations() []models.ProcessedDeclaration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ProcessedDeclaration(nil), s.declarations...)
}

// AddDeclarations appends newly processed declarations, skipping ids
// already present.
func (s *State) AddDeclarations(decls []models.ProcessedDeclaration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	known := make(map[string]bool, len(s.declarations))
	for _, d := range s.declarations {
		known[d.ID] = true
	}
	added := 0
	for _, d := range decls {
		if known[d.ID] {
			continue
		}
		s.declarations = append(s.declarations, d)
		known[d.ID] = true
		added++
	}
	return added
}

// KnownDeclarationIDs reports which declaration ids are already processed.
func (s *State) KnownDeclarationIDs() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	known := make(map[string]bool, len(s.declarations))
	for _, d := range s.declarations {
		known[d.ID] = true
	}
	return known
}

// Reviews returns the recorded declaration reviews.
func (s *State) Reviews() []models.DeclarationReview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.DeclarationReview(nil), s.reviews...)
}

// Review returns the review for a file id, if recorded.
func (s *State) Review(fileID string) (models.DeclarationReview, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reviews {
		if r.FileID == fileID {
			return r, true
		}
	}
	return models.DeclarationReview{}, false
}

// PutReview records a review, replacing any earlier verdict on the same
// file. The auditor comment then propagates, overwriting, to every movement
// linked to that declaration.
func (s *State) PutReview(r models.DeclarationReview) int {
	s.mu.Lock()
	replaced := false
	for i := range s.reviews {
		if s.reviews[i].FileID == r.FileID {
			s.reviews[i] = r
			replaced = true
			break
		}
	}
	if !replaced {
		s.reviews = append(s.reviews, r)
	}
	s.mu.Unlock()

	if r.AuditorComments == "" {
		return 0
	}
	return s.Graph.PropagateDeclarationComment(r.FileName, r.AuditorComments)
}

// SetLineComment sets or clears a line's comment and synchronizes linked
// movements: a non-empty comment appends to every linked operation's
// comment. Returns how many movements were touched.
func (s *State) SetLineComment(fileID, lineID string, comment *string) (int, error) {
	if err := s.Lines.SetComment(fileID, lineID, comment); err != nil {
		return 0, err
	}
	if comment == nil || *comment == "" {
		return 0, nil
	}
	return s.Graph.PropagateLineComment(lineID, *comment), nil
}

// Registry returns a copy of the audit-file registry.
func (s *State) Registry() models.AuditFileRegistry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry.Clone()
}

// RegisterFile adds an upload to its category bucket. Returns false for an
// unknown category.
func (s *State) RegisterFile(cat models.FileCategory, f models.AuditFile) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket := s.registry.Bucket(cat)
	if bucket == nil {
		return false
	}
	*bucket = append(*bucket, f)
	return true
}

// RemoveFile drops an upload from its category bucket.
func (s *State) RemoveFile(cat models.FileCategory, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Remove(cat, id)
}

// Snapshot serializes the whole working set into its persistent form.
func (s *State) Snapshot() *models.ProgressSnapshot {
	s.mu.RLock()
	snap := models.ProgressSnapshot{
		Version:               models.SnapshotVersion,
		AuditDetails:          s.details,
		DeclarationReviews:    append([]models.DeclarationReview(nil), s.reviews...),
		ProcessedDeclarations: append([]models.ProcessedDeclaration(nil), s.declarations...),
		AuditFiles:            s.registry.Clone(),
	}
	s.mu.RUnlock()

	snap.CustomComments = s.Comments.Comments()
	snap.ChronologicalMovements = s.Graph.Movements()
	snap.FileData = s.Lines.Files()
	return &snap
}

// Restore replaces the whole working set with a snapshot's contents.
func (s *State) Restore(snap *models.ProgressSnapshot) {
	s.mu.Lock()
	s.details = snap.AuditDetails
	s.reviews = append([]models.DeclarationReview(nil), snap.DeclarationReviews...)
	s.declarations = append([]models.ProcessedDeclaration(nil), snap.ProcessedDeclarations...)
	s.registry = snap.AuditFiles.Clone()
	s.mu.Unlock()

	s.Comments.Replace(snap.CustomComments)
	s.Graph.SetMovements(snap.ChronologicalMovements)
	s.Lines.Replace(snap.FileData)
}

// Reset drops everything back to the empty working set.
func (s *State) Reset() {
	s.mu.Lock()
	s.details = models.AuditDetails{}
	s.reviews = nil
	s.declarations = nil
	s.registry = models.AuditFileRegistry{}
	s.mu.Unlock()

	s.Comments.Replace(nil)
	s.Graph.SetMovements(nil)
	s.Lines.Replace(nil)
}
