package store

import "github.com/google/uuid"

// Store defines the interface for run persistence operations.
// Implementations must be safe for concurrent use.
//
// Error handling conventions:
//   - Return nil error on success
//   - Return a *NotFoundError if the run doesn't exist (for Load/Delete)
//   - Wrap underlying errors with context using fmt.Errorf("context: %w", err)
type Store interface {
	// SaveResult atomically saves the manifest for the given run.
	// If a manifest already exists for this runID, it is overwritten.
	SaveResult(runID string, result *RunResult) error

	// LoadResult retrieves the manifest for the given run.
	// Returns a *NotFoundError if no manifest exists for this runID.
	LoadResult(runID string) (*RunResult, error)

	// ListResults returns metadata for all persisted runs.
	// The returned slice may be empty if no runs exist.
	ListResults() ([]RunInfo, error)

	// DeleteResult removes the run directory and all associated artifacts
	// (result.json, trace.jsonl, exported matrices).
	// Returns a *NotFoundError if no run exists for this runID.
	DeleteResult(runID string) error
}

// NewRunID returns a fresh unique run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// ErrNotFound is returned when a requested run does not exist.
// Use errors.Is(err, ErrNotFound) to check for this error.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing run error.
type NotFoundError struct {
	RunID string
}

func (e *NotFoundError) Error() string {
	if e.RunID != "" {
		return "run not found: " + e.RunID
	}
	return "run not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
