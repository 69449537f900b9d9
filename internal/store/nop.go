package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Nop is a Store that records nothing. It backs the "none" driver.
type Nop struct{}

func (Nop) CreateRun(_ context.Context, source string) (*Run, error) {
	now := time.Now().UTC()
	return &Run{ID: uuid.New().String(), Source: source, Status: RunStatusRunning, CreatedAt: now, UpdatedAt: now}, nil
}

func (Nop) CompleteRun(context.Context, string, RunSummary) error { return nil }
func (Nop) FailRun(context.Context, string, string) error         { return nil }

func (Nop) GetRun(_ context.Context, runID string) (*Run, error) {
	return nil, &NotFoundError{ID: runID}
}

func (Nop) ListRuns(context.Context, RunFilter) ([]Run, error) { return nil, nil }
func (Nop) Migrate(context.Context) error                       { return nil }
func (Nop) Close() error                                        { return nil }
