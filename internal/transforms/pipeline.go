// Package transforms provides deterministic transcript cleanup implementations.
package transforms

import (
	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driven"
	"github.com/scrivia-labs/scrivia-cli/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driven.TransformPipeline = (*Pipeline)(nil)

// Pipeline chains multiple Transforms and runs them in order.
type Pipeline struct {
	transforms []driven.Transform
}

// NewPipeline creates a new transform pipeline with the given stages.
// Stages are executed in the order provided.
func NewPipeline(transforms ...driven.Transform) *Pipeline {
	return &Pipeline{
		transforms: transforms,
	}
}

// Run passes the segments through all transforms in order. The change
// log keeps stage order: every change from one transform precedes all
// changes from the next, never interleaved by segment.
func (p *Pipeline) Run(segments []domain.Segment) ([]domain.Segment, []domain.TranscriptChange) {
	var changes []domain.TranscriptChange

	for _, transform := range p.transforms {
		var stageChanges []domain.TranscriptChange
		segments, stageChanges = transform.Apply(segments)
		if len(stageChanges) > 0 {
			logger.Debug("Transform %s made %d changes", transform.Name(), len(stageChanges))
		}
		changes = append(changes, stageChanges...)
	}

	return segments, changes
}

// Add appends a transform to the pipeline.
func (p *Pipeline) Add(transform driven.Transform) {
	p.transforms = append(p.transforms, transform)
}

// Len returns the number of transforms in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.transforms)
}
