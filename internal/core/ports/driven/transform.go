package driven

import (
	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
)

// Transform is one deterministic normalization stage. Transforms are
// chained in a fixed pipeline (stutter reduction, filler removal,
// pause stitching, number/date normalization) and must be pure: the
// same segments in always produce the same segments and changes out.
type Transform interface {
	// Name returns the transform name for logging and changelog grouping.
	Name() string

	// Apply rewrites the segment list and reports every edit it made.
	// Implementations never mutate their input; unchanged segments are
	// passed through as-is and produce no change entries.
	Apply(segments []domain.Segment) ([]domain.Segment, []domain.TranscriptChange)
}

// TransformPipeline chains multiple Transforms.
type TransformPipeline interface {
	// Run passes the segments through all transforms in order and
	// returns the final segments with the concatenated change log,
	// one transform's changes completing before the next's begin.
	Run(segments []domain.Segment) ([]domain.Segment, []domain.TranscriptChange)
}
