// Package linestore owns the parsed line-oriented representation of every
// uploaded structured file. All mutations are replace-on-write: readers that
// grabbed the file slice before a mutation keep a consistent point-in-time
// view, which is what the snapshot mechanism relies on.
package linestore

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"mduarte/cca-audit/internal/auditerr"
	"mduarte/cca-audit/internal/logging"
	"mduarte/cca-audit/internal/models"
)

// Store holds the ingested line files in registration order.
type Store struct {
	mu    sync.RWMutex
	files []models.LineFile
	log   logging.Logger
}

// New creates an empty Store.
func New(logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Store{log: logger}
}

// Ingest splits rawText on line boundaries, discards blank and
// whitespace-only lines, and registers the surviving lines under a fresh
// file id. Line ids encode the originating file and original position and
// are never reused across files.
func (s *Store) Ingest(fileName, rawText string) (models.LineFile, error) {
	if strings.TrimSpace(fileName) == "" {
		return models.LineFile{}, &auditerr.IngestError{FileName: fileName, Err: fmt.Errorf("empty file name")}
	}

	fileID := "file-" + uuid.NewString()
	var lines []models.Line
	for i, raw := range strings.Split(rawText, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		lines = append(lines, models.Line{
			ID:      fmt.Sprintf("line-%s-%d", fileID, i),
			Content: raw,
			Status:  models.LineStatusPending,
		})
	}

	file := models.LineFile{
		ID:      fileID,
		Name:    fileName,
		Content: rawText,
		Lines:   lines,
	}

	s.mu.Lock()
	s.files = append(s.files, file)
	s.mu.Unlock()

	s.log.Info("Ingested line file",
		logging.Field{Key: logging.FieldFile, Value: fileName},
		logging.Field{Key: logging.FieldFileID, Value: fileID},
		logging.Field{Key: logging.FieldCount, Value: len(lines)})

	return file, nil
}

// Files returns the current file slice in registration order. The slice and
// its line slices are never mutated in place, so callers may hold it across
// concurrent writes.
func (s *Store) Files() []models.LineFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.files
}

// File returns the file with the given id.
func (s *Store) File(fileID string) (models.LineFile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.files {
		if f.ID == fileID {
			return f, true
		}
	}
	return models.LineFile{}, false
}

// Line returns the line and its index within its file.
func (s *Store) Line(fileID, lineID string) (models.Line, int, bool) {
	f, ok := s.File(fileID)
	if !ok {
		return models.Line{}, -1, false
	}
	idx := f.LineIndex(lineID)
	if idx < 0 {
		return models.Line{}, -1, false
	}
	return f.Lines[idx], idx, true
}

// ToggleStatus flips a line between pending and reviewed.
func (s *Store) ToggleStatus(fileID, lineID string) error {
	return s.updateLine(fileID, lineID, func(l models.Line) models.Line {
		if l.Status == models.LineStatusReviewed {
			l.Status = models.LineStatusPending
		} else {
			l.Status = models.LineStatusReviewed
		}
		return l
	})
}

// MarkReviewed sets a line reviewed and reports whether the status changed.
func (s *Store) MarkReviewed(fileID, lineID string) (bool, error) {
	changed := false
	err := s.updateLine(fileID, lineID, func(l models.Line) models.Line {
		if l.Status != models.LineStatusReviewed {
			l.Status = models.LineStatusReviewed
			changed = true
		}
		return l
	})
	return changed, err
}

// SetComment sets or clears a line's comment. Setting a non-nil comment also
// marks the line reviewed, matching the manual review flow.
func (s *Store) SetComment(fileID, lineID string, comment *string) error {
	return s.updateLine(fileID, lineID, func(l models.Line) models.Line {
		l.Comment = comment
		if comment != nil {
			l.Status = models.LineStatusReviewed
		}
		return l
	})
}

// UpdateContent replaces a line's content (manual correction). Identity and
// position are untouched.
func (s *Store) UpdateContent(fileID, lineID, newContent string) error {
	return s.updateLine(fileID, lineID, func(l models.Line) models.Line {
		l.Content = newContent
		return l
	})
}

// updateLine applies fn to one line, rebuilding the file and the file slice
// so existing readers keep their snapshot.
func (s *Store) updateLine(fileID, lineID string, fn func(models.Line) models.Line) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for fi, f := range s.files {
		if f.ID != fileID {
			continue
		}
		idx := f.LineIndex(lineID)
		if idx < 0 {
			return &auditerr.IntegrityError{Kind: "line", Target: lineID}
		}
		newLines := append([]models.Line{}, f.Lines...)
		newLines[idx] = fn(newLines[idx].Clone())
		newFile := f
		newFile.Lines = newLines

		newFiles := append([]models.LineFile{}, s.files...)
		newFiles[fi] = newFile
		s.files = newFiles
		return nil
	}
	return &auditerr.IntegrityError{Kind: "file", Target: fileID}
}

// Remove deletes a whole file. SmartLinks that reference its lines degrade
// to dangling; the link graph detects that lazily, so there is nothing to
// cascade here beyond dropping the file.
func (s *Store) Remove(fileID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.files {
		if f.ID == fileID {
			newFiles := append([]models.LineFile{}, s.files[:i]...)
			s.files = append(newFiles, s.files[i+1:]...)
			s.log.Info("Removed line file",
				logging.Field{Key: logging.FieldFileID, Value: fileID},
				logging.Field{Key: logging.FieldFile, Value: f.Name})
			return true
		}
	}
	return false
}

// Replace swaps in a full file set, used when restoring a snapshot.
func (s *Store) Replace(files []models.LineFile) {
	copied := make([]models.LineFile, len(files))
	for i := range files {
		copied[i] = files[i].Clone()
	}
	s.mu.Lock()
	s.files = copied
	s.mu.Unlock()
}
