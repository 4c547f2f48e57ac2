package driving

import (
	"context"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
)

// NormalizeOptions toggles the optional normalization stages.
// Stutter reduction and sentence stitching always run.
type NormalizeOptions struct {
	// RemoveFillers enables the filler-removal stage.
	RemoveFillers bool

	// NormalizeNumbers enables the number/date stage.
	NormalizeNumbers bool
}

// DefaultNormalizeOptions returns the standard stage toggles:
// fillers kept, numbers normalized.
func DefaultNormalizeOptions() NormalizeOptions {
	return NormalizeOptions{RemoveFillers: false, NormalizeNumbers: true}
}

// NormalizerService cleans ASR transcripts deterministically.
type NormalizerService interface {
	// Normalize runs the transform pipeline over the transcription
	// and returns the cleaned copy plus the ordered change log. The
	// input is never mutated.
	Normalize(transcription domain.Transcription, opts NormalizeOptions) domain.NormalizationResult
}

// RepairService applies LLM corrections back onto timestamped segments.
type RepairService interface {
	// Repair asks the configured LLM to correct the transcript and
	// reconciles the corrected text with the original segment
	// timings. Failures wrap domain.ErrRepairFailed; callers fall
	// back to the heuristic-only result.
	Repair(ctx context.Context, transcription domain.Transcription) (domain.NormalizationResult, error)

	// Apply reconciles already-obtained repaired text with the
	// original segments without calling the LLM.
	Apply(transcription domain.Transcription, result domain.RepairResult) domain.NormalizationResult
}
