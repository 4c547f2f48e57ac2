// Package stutter provides a transform that collapses repeated words.
package stutter

import (
	"strings"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driven"
)

// Ensure Transform implements the interface.
var _ driven.Transform = (*Transform)(nil)

// Transform collapses runs of consecutive identical word tokens into
// a single occurrence. Matching is case-insensitive; the first
// occurrence's casing survives. "I I I think" becomes "I think".
type Transform struct{}

// New creates a new stutter transform.
func New() *Transform {
	return &Transform{}
}

// Name returns the transform name.
func (t *Transform) Name() string {
	return "stutter"
}

// Apply collapses stutters per segment. Segments whose text is
// unchanged pass through untouched and produce no change entries.
func (t *Transform) Apply(segments []domain.Segment) ([]domain.Segment, []domain.TranscriptChange) {
	out := make([]domain.Segment, len(segments))
	var changes []domain.TranscriptChange

	for i, seg := range segments {
		out[i] = seg
		collapsed, changed := collapse(seg.Text)
		if !changed {
			continue
		}
		out[i] = seg.Clone()
		out[i].Text = collapsed
		changes = append(changes, domain.TranscriptChange{
			SegmentID:  seg.ID,
			Timestamp:  domain.FormatTimespan(seg.Start, seg.End),
			Before:     seg.Text,
			After:      collapsed,
			Reason:     domain.ReasonStutter,
			ChangeType: domain.ChangeNormalization,
		})
	}

	return out, changes
}

// collapse removes consecutive duplicate tokens. The original text is
// returned verbatim when no run was found, so whitespace quirks in
// clean segments never count as edits.
func collapse(text string) (string, bool) {
	tokens := strings.Fields(text)
	if len(tokens) < 2 {
		return text, false
	}

	kept := tokens[:1]
	collapsed := false
	for _, tok := range tokens[1:] {
		if strings.EqualFold(tok, kept[len(kept)-1]) {
			collapsed = true
			continue
		}
		kept = append(kept, tok)
	}

	if !collapsed {
		return text, false
	}
	return strings.Join(kept, " "), true
}
