package store

import (
	"fmt"
	"time"
)

// RunConfig is the solver configuration snapshot persisted with a run.
// It is a plain copy to keep the manifest format independent of the solver
// package and avoid import cycles.
type RunConfig struct {
	Population int     `json:"population"`
	MaxIters   int     `json:"maxIters"`
	Inertia    float64 `json:"inertia"`
	Cognitive  float64 `json:"cognitive"`
	Social     float64 `json:"social"`
	LowerBound float64 `json:"lowerBound"`
	UpperBound float64 `json:"upperBound"`
	Seed       uint64  `json:"seed"`
}

// RunResult is the persisted manifest of one completed fit.
// The coefficient matrix itself is exported separately as CSV; the manifest
// records where it went plus enough metadata to interpret it.
type RunResult struct {
	// RunID is the unique identifier for this run.
	RunID string `json:"runId"`

	// Timestamp records when the run completed.
	Timestamp time.Time `json:"timestamp"`

	// Config is the solver configuration used for the run.
	Config RunConfig `json:"config"`

	// Rows (g), Basis (k) and Samples (s) give the problem shape:
	// W is g x k, X is g x s, H is k x s.
	Rows    int `json:"rows"`
	Basis   int `json:"basis"`
	Samples int `json:"samples"`

	// BestCost is the squared Frobenius residual of the returned H.
	BestCost float64 `json:"bestCost"`

	// Elapsed is the wall-clock duration of the fit.
	Elapsed time.Duration `json:"elapsed"`

	// OutputPath is where the H matrix was written, if anywhere.
	OutputPath string `json:"outputPath,omitempty"`
}

// RunInfo contains run metadata for listings, without config details.
type RunInfo struct {
	RunID     string    `json:"runId"`
	Timestamp time.Time `json:"timestamp"`
	Rows      int       `json:"rows"`
	Basis     int       `json:"basis"`
	Samples   int       `json:"samples"`
	BestCost  float64   `json:"bestCost"`
}

// ToInfo converts a full RunResult to RunInfo (metadata only).
func (r *RunResult) ToInfo() RunInfo {
	return RunInfo{
		RunID:     r.RunID,
		Timestamp: r.Timestamp,
		Rows:      r.Rows,
		Basis:     r.Basis,
		Samples:   r.Samples,
		BestCost:  r.BestCost,
	}
}

// Validate checks that the manifest carries a coherent run.
func (r *RunResult) Validate() error {
	if r.RunID == "" {
		return &ValidationError{Field: "RunID", Reason: "cannot be empty"}
	}
	if r.Rows <= 0 || r.Basis <= 0 || r.Samples <= 0 {
		return &ValidationError{
			Field:  "shape",
			Reason: fmt.Sprintf("dimensions must be positive, got g=%d k=%d s=%d", r.Rows, r.Basis, r.Samples),
		}
	}
	if r.BestCost < 0 {
		return &ValidationError{Field: "BestCost", Reason: "cannot be negative"}
	}
	if r.Timestamp.IsZero() {
		return &ValidationError{Field: "Timestamp", Reason: "cannot be zero"}
	}
	return nil
}

// ValidationError represents a manifest validation error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}
