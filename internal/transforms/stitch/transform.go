// Package stitch provides a transform that merges segments across
// short pauses.
package stitch

import (
	"fmt"
	"strings"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driven"
)

// Ensure Transform implements the interface.
var _ driven.Transform = (*Transform)(nil)

// DefaultMaxPause is the longest gap, in seconds, that still gets
// stitched. ASR engines routinely split mid-sentence on breaths;
// anything over half a second is treated as a real pause.
const DefaultMaxPause = 0.5

// Transform merges consecutive segments whose gap is at most the
// configured pause. The merged segment keeps the id of its first
// constituent and spans from its start to the last constituent's end.
type Transform struct {
	maxPause float64
}

// Option configures the stitch transform.
type Option func(*Transform)

// WithMaxPause sets the pause threshold in seconds.
func WithMaxPause(seconds float64) Option {
	return func(t *Transform) {
		if seconds > 0 {
			t.maxPause = seconds
		}
	}
}

// New creates a new stitch transform with the given options.
func New(opts ...Option) *Transform {
	t := &Transform{
		maxPause: DefaultMaxPause,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the transform name.
func (t *Transform) Name() string {
	return "stitch"
}

// Apply walks the segment list in order, merging each segment into
// the open one while the gap stays within the threshold. One change
// entry is logged per merge.
func (t *Transform) Apply(segments []domain.Segment) ([]domain.Segment, []domain.TranscriptChange) {
	if len(segments) == 0 {
		return segments, nil
	}

	var out []domain.Segment
	var changes []domain.TranscriptChange

	current := segments[0].Clone()

	for _, next := range segments[1:] {
		pause := next.Start - current.End
		if pause > t.maxPause {
			out = append(out, current)
			current = next.Clone()
			continue
		}

		changes = append(changes, domain.TranscriptChange{
			SegmentID:  current.ID,
			Timestamp:  domain.FormatTimespan(current.Start, next.End),
			Before:     fmt.Sprintf("segment %d + segment %d", current.ID, next.ID),
			After:      fmt.Sprintf("merged segment %d", current.ID),
			Reason:     fmt.Sprintf("Stitched across %.3fs pause", pause),
			ChangeType: domain.ChangeNormalization,
		})

		current.Text = strings.TrimSpace(current.Text) + " " + strings.TrimSpace(next.Text)
		current.End = next.End
		if len(current.Words) > 0 && len(next.Words) > 0 {
			current.Words = append(current.Words, next.Words...)
		}
	}

	out = append(out, current)
	return out, changes
}
