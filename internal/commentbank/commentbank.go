// Package commentbank manages the bank of reusable auditor comments and the
// classification of line comments into alerts.
package commentbank

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Predefined is the starting comment set of every fresh session.
var Predefined = []string{
	"Legalización PARCIAL",
	"Legalización con ERROR",
	"Legalización EXTEMPORANEA",
	"Legalizado OPORTUNAMENTE",
	"NO requiere legalización por ser Devolución",
	"O.K.",
	"SIN Identificar",
	"SIN LEGALIZAR",
	"Mal Registrada",
}

// safeComments are the normalized comments that do NOT raise an alert.
var safeComments = map[string]struct{}{
	"o.k.":                     {},
	"o.k":                      {},
	"ok":                       {},
	"legalizado":               {},
	"legalizado oportunamente": {},
}

// IsAlert reports whether a line comment flags a finding. Empty comments are
// not alerts; anything outside the safe set is.
func IsAlert(comment *string) bool {
	if comment == nil {
		return false
	}
	normalized := strings.ToLower(strings.TrimSpace(*comment))
	if normalized == "" {
		return false
	}
	_, safe := safeComments[normalized]
	return !safe
}

// Bank holds the session's comment list: the predefined set plus any custom
// comments the auditor saved for reuse.
type Bank struct {
	mu       sync.RWMutex
	comments []string
}

// New creates a Bank seeded with the predefined comments.
func New() *Bank {
	return &Bank{comments: append([]string{}, Predefined...)}
}

// Comments returns the current comment list.
func (b *Bank) Comments() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]string{}, b.comments...)
}

// Add appends a comment unless it is empty or already present.
func (b *Bank) Add(comment string) bool {
	if comment == "" {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.comments {
		if c == comment {
			return false
		}
	}
	b.comments = append(b.comments, comment)
	return true
}

// Replace swaps in a full comment list, used when restoring a snapshot.
// An empty list falls back to the predefined set.
func (b *Bank) Replace(comments []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(comments) == 0 {
		b.comments = append([]string{}, Predefined...)
		return
	}
	b.comments = append([]string{}, comments...)
}

// bankFile is the on-disk YAML shape.
type bankFile struct {
	Comments []string `yaml:"comments"`
}

// SaveYAML writes the comment list to a YAML file.
func (b *Bank) SaveYAML(path string) error {
	data, err := yaml.Marshal(bankFile{Comments: b.Comments()})
	if err != nil {
		return fmt.Errorf("failed to marshal comment bank: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write comment bank: %w", err)
	}
	return nil
}

// LoadYAML reads a comment list from a YAML file. A missing file leaves the
// bank unchanged and returns nil, matching the optional-config convention.
func (b *Bank) LoadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read comment bank: %w", err)
	}

	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse comment bank: %w", err)
	}
	b.Replace(f.Comments)
	return nil
}
