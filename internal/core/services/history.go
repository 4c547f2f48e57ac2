package services

import (
	"context"
	"fmt"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driven"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService exposes the stored run history.
type HistoryService struct {
	runs driven.RunStore
}

// NewHistoryService creates a history service.
func NewHistoryService(runs driven.RunStore) *HistoryService {
	return &HistoryService{
		runs: runs,
	}
}

// List returns recent runs, newest first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	records, err := s.runs.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return records, nil
}

// Get retrieves one run by ID.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.RunRecord, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: run id is required", domain.ErrInvalidInput)
	}
	record, err := s.runs.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return record, nil
}

// Analyze computes summary statistics over all recorded runs. Ties
// keep the first record in store order, which is the most recent.
func (s *HistoryService) Analyze(ctx context.Context) (driving.HistoryAnalysis, error) {
	records, err := s.runs.List(ctx, 0)
	if err != nil {
		return driving.HistoryAnalysis{}, fmt.Errorf("analyze runs: %w", err)
	}

	analysis := driving.HistoryAnalysis{TotalRuns: len(records)}
	for i := range records {
		r := &records[i]
		if analysis.Fastest == nil || r.Duration() < analysis.Fastest.Duration() {
			analysis.Fastest = r
		}
		if analysis.MostWords == nil || r.WordCount > analysis.MostWords.WordCount {
			analysis.MostWords = r
		}
	}

	return analysis, nil
}
