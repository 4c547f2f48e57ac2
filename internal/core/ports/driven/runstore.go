package driven

import (
	"context"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
)

// RunStore persists processing history.
type RunStore interface {
	// Save stores a completed run record.
	Save(ctx context.Context, record domain.RunRecord) error

	// Get retrieves a run record by ID.
	Get(ctx context.Context, id string) (*domain.RunRecord, error)

	// List returns the most recent runs, newest first, up to limit.
	// A limit of 0 returns all records.
	List(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// Close releases store resources.
	Close() error
}
