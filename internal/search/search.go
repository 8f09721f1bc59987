// Package search implements the substring query engine over the line store.
package search

import (
	"strings"

	"mduarte/cca-audit/internal/linestore"
	"mduarte/cca-audit/internal/models"
)

// DefaultPageSize matches the viewer's fixed page size.
const DefaultPageSize = 100

// MinTermLength is the shortest term that activates a search.
const MinTermLength = 2

// Result is one matching line, with enough locality for the caller to jump
// straight to the right page.
type Result struct {
	FileID     string
	FileName   string
	LineID     string
	LineNumber int // 1-based position within the file
	Content    string
	Page       int
}

// Results distinguishes "search inactive" from "zero hits": a nil *Results
// means the term was too short to search, an empty Hits slice means the
// search ran and found nothing.
type Results struct {
	Term string
	Hits []Result
}

// Engine scans the line store in file-registration order then line order.
// There is no relevance ranking beyond this natural order.
type Engine struct {
	lines         *linestore.Store
	pageSize      int
	minTermLength int
}

// New creates an Engine over the given store.
func New(lines *linestore.Store, pageSize, minTermLength int) *Engine {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if minTermLength < 1 {
		minTermLength = MinTermLength
	}
	return &Engine{lines: lines, pageSize: pageSize, minTermLength: minTermLength}
}

// PageSize returns the page size results are computed against.
func (e *Engine) PageSize() int {
	return e.pageSize
}

// Search performs a case-insensitive substring match over every line of
// every file. A pure read: no side effects on any outcome.
func (e *Engine) Search(term string) *Results {
	if len(term) < e.minTermLength {
		return nil
	}

	needle := strings.ToLower(term)
	res := &Results{Term: term, Hits: []Result{}}

	for _, file := range e.lines.Files() {
		for i, line := range file.Lines {
			if !strings.Contains(strings.ToLower(line.Content), needle) {
				continue
			}
			res.Hits = append(res.Hits, Result{
				FileID:     file.ID,
				FileName:   file.Name,
				LineID:     line.ID,
				LineNumber: i + 1,
				Content:    line.Content,
				Page:       e.PageOf(i),
			})
		}
	}
	return res
}

// PageOf converts a 0-based line index to its 1-based viewer page.
func (e *Engine) PageOf(index int) int {
	return index/e.pageSize + 1
}

// PageOfLine locates a line id within a file and returns its page, for
// navigation from a stored SmartLink.
func (e *Engine) PageOfLine(file models.LineFile, lineID string) (int, bool) {
	idx := file.LineIndex(lineID)
	if idx < 0 {
		return 0, false
	}
	return e.PageOf(idx), true
}
