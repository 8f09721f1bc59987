// Package auditerr defines the error taxonomy shared across the
// reconciliation engine. None of these errors is fatal to the process:
// ingestion and extraction errors are isolated per file, persistence errors
// are retried on the next autosave tick, and integrity errors degrade the
// affected link to inert.
package auditerr

import "fmt"

// IngestError reports a source file that could not be ingested.
// It is isolated per file and never aborts a batch.
type IngestError struct {
	FileName string
	Err      error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingest failed for %q: %v", e.FileName, e.Err)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}

// ExtractionError reports a collaborator failure for a single item.
// The item degrades to "no metadata"; the batch continues.
type ExtractionError struct {
	Item string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %q: %v", e.Item, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a failed save, load or delete of session state.
type PersistenceError struct {
	Op       string // "save", "load", "delete", "export", "import"
	Identity string
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed for identity %q: %v", e.Op, e.Identity, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IntegrityError reports a reference to an entity that no longer exists,
// typically a snapshot link whose target was removed.
type IntegrityError struct {
	Kind   string // "line", "file", "declaration"
	Target string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("dangling reference to %s %q", e.Kind, e.Target)
}

// InvalidSnapshotError rejects a structurally invalid snapshot document at
// the boundary. Structurally valid but partial documents load with defaults
// and do not produce this error.
type InvalidSnapshotError struct {
	Reason string
	Err    error
}

func (e *InvalidSnapshotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid snapshot document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid snapshot document: %s", e.Reason)
}

func (e *InvalidSnapshotError) Unwrap() error {
	return e.Err
}
