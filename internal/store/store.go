// Package store persists the run log: one row per analysis with its source,
// outcome and record counts. Delay records themselves are not stored.
package store

import (
	"context"
	"errors"
	"time"
)

// RunStatus is the lifecycle state of a run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one analysis of one input.
type Run struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	Status     RunStatus `json:"status"`
	Updates    int       `json:"updates"`
	Records    int       `json:"records"`
	Advisories int       `json:"advisories"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RunSummary holds the counts recorded when a run completes.
type RunSummary struct {
	Updates    int `json:"updates"`
	Records    int `json:"records"`
	Advisories int `json:"advisories"`
}

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status       RunStatus `json:"status,omitempty"`
	Source       string    `json:"source,omitempty"`
	CreatedAfter time.Time `json:"created_after,omitempty"`
	Limit        int       `json:"limit,omitempty"`
	Offset       int       `json:"offset,omitempty"`
}

const defaultListLimit = 100

func (f RunFilter) limit() int {
	if f.Limit <= 0 {
		return defaultListLimit
	}
	return f.Limit
}

// Store defines the persistence interface for the run log.
type Store interface {
	CreateRun(ctx context.Context, source string) (*Run, error)
	CompleteRun(ctx context.Context, runID string, summary RunSummary) error
	FailRun(ctx context.Context, runID string, errMsg string) error
	GetRun(ctx context.Context, runID string) (*Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]Run, error)

	Migrate(ctx context.Context) error
	Close() error
}

// NotFoundError is returned when a run id does not exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "run not found: " + e.ID
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
