package driving

import (
	"context"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
)

// ProcessOptions configures a pipeline run.
type ProcessOptions struct {
	// Normalize toggles the optional normalization stages.
	Normalize NormalizeOptions

	// TypeOverride pins the meeting type instead of classifying.
	TypeOverride domain.MeetingType

	// UseLLMClassify runs the LLM classifier over high-signal
	// excerpts when an engine is configured, falling back to the
	// heuristic result on failure.
	UseLLMClassify bool

	// SkipRepair disables the LLM repair pass even when an engine
	// is configured.
	SkipRepair bool

	// SkipNotes disables note generation.
	SkipNotes bool
}

// ProcessResult is the full output of one pipeline run.
type ProcessResult struct {
	Transcription  domain.Transcription
	Changes        []domain.TranscriptChange
	Classification domain.Classification
	Notes          string
	Record         domain.RunRecord
}

// PipelineService runs the full transcript processing flow: repair,
// normalization, classification, and note generation.
type PipelineService interface {
	// Process runs the pipeline over a parsed transcription.
	Process(ctx context.Context, inputPath string, transcription domain.Transcription, opts ProcessOptions) (*ProcessResult, error)
}

// HistoryAnalysis summarises the stored run history.
type HistoryAnalysis struct {
	// TotalRuns is the number of recorded runs.
	TotalRuns int

	// Fastest is the run with the shortest wall-clock duration.
	Fastest *domain.RunRecord

	// MostWords is the run with the highest word count.
	MostWords *domain.RunRecord
}

// HistoryService exposes processing history to external actors.
type HistoryService interface {
	// List returns recent runs, newest first.
	List(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// Get retrieves one run by ID.
	Get(ctx context.Context, id string) (*domain.RunRecord, error)

	// Analyze computes summary statistics over all recorded runs.
	Analyze(ctx context.Context) (HistoryAnalysis, error)
}
