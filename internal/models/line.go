package models

// LineStatus tracks the review state of a single XML line.
type LineStatus string

const (
	// LineStatusPending marks a line that has not been reviewed yet.
	LineStatusPending LineStatus = "pending"
	// LineStatusReviewed marks a line reviewed manually or resolved by a match.
	LineStatusReviewed LineStatus = "reviewed"
)

// Line is one parsed record from a structured source file. Identity is
// immutable once created; the id encodes the originating file and the
// original position so links survive content edits.
type Line struct {
	ID      string     `json:"id"`
	Content string     `json:"content"`
	Status  LineStatus `json:"status"`
	Comment *string    `json:"comment"`
}

// HasComment reports whether the line carries a non-empty comment.
func (l *Line) HasComment() bool {
	return l.Comment != nil && *l.Comment != ""
}

// Clone returns a deep copy of the line.
func (l Line) Clone() Line {
	if l.Comment != nil {
		c := *l.Comment
		l.Comment = &c
	}
	return l
}

// LineFile is one uploaded structured source file split into lines.
// The line sequence is fixed in length and order after creation; edits
// mutate line content, status or comment in place and whole-file removal is
// the only way a line disappears.
type LineFile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
	Lines   []Line `json:"lines"`
}

// LineIndex returns the position of the line with the given id, or -1.
func (f *LineFile) LineIndex(lineID string) int {
	for i := range f.Lines {
		if f.Lines[i].ID == lineID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the file and its lines.
func (f LineFile) Clone() LineFile {
	lines := make([]Line, len(f.Lines))
	for i := range f.Lines {
		lines[i] = f.Lines[i].Clone()
	}
	f.Lines = lines
	return f
}
