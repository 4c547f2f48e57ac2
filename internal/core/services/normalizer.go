package services

import (
	"time"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driven"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driving"
	"github.com/scrivia-labs/scrivia-cli/internal/logger"
)

// Ensure NormalizerService implements the interface.
var _ driving.NormalizerService = (*NormalizerService)(nil)

// PipelineBuilder constructs a transform pipeline for the given stage
// toggles. Wiring supplies the concrete transform stack; the service
// itself only knows the port.
type PipelineBuilder func(opts driving.NormalizeOptions) driven.TransformPipeline

// NormalizerService cleans transcripts through the deterministic
// transform pipeline. It is stateless and safe for concurrent use.
type NormalizerService struct {
	buildPipeline PipelineBuilder
}

// NewNormalizerService creates a normalizer over the given pipeline
// builder.
func NewNormalizerService(builder PipelineBuilder) *NormalizerService {
	return &NormalizerService{
		buildPipeline: builder,
	}
}

// Normalize runs the transform pipeline over a deep copy of the
// transcription and rebuilds the top-level text from the final
// segments. The input is never mutated.
func (n *NormalizerService) Normalize(transcription domain.Transcription, opts driving.NormalizeOptions) domain.NormalizationResult {
	started := time.Now()

	working := transcription.Clone()
	segments, changes := n.buildPipeline(opts).Run(working.Segments)

	working.Segments = segments
	working.Text = domain.FullText(segments)

	logger.Timing("normalization", time.Since(started))
	logger.Debug("Normalized %d segments into %d with %d changes",
		len(transcription.Segments), len(segments), len(changes))

	return domain.NormalizationResult{
		Transcription: working,
		Changes:       changes,
	}
}
