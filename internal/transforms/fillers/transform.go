// Package fillers provides a transform that strips filler words.
package fillers

import (
	"regexp"
	"strings"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driven"
)

// Ensure Transform implements the interface.
var _ driven.Transform = (*Transform)(nil)

var (
	// Standalone hesitation tokens. Word-boundary anchored so words
	// like "umbrella" or "uhuru" are never touched.
	tokenPattern = regexp.MustCompile(`(?i)\b(?:um+|uh+|hmm+)\b`)

	// Fixed filler phrases. A bare "like" is deliberately absent:
	// it is removed only inside these phrases, never on its own.
	phrasePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\byou know\b`),
		regexp.MustCompile(`(?i)\bI mean\b`),
		regexp.MustCompile(`(?i)\bso like\b`),
		regexp.MustCompile(`(?i)\bkind of like\b`),
	}

	multiSpace = regexp.MustCompile(`\s{2,}`)
)

// Transform strips hesitation tokens and a fixed list of filler
// phrases from segment text.
type Transform struct{}

// New creates a new filler-removal transform.
func New() *Transform {
	return &Transform{}
}

// Name returns the transform name.
func (t *Transform) Name() string {
	return "fillers"
}

// Apply strips fillers per segment, collapsing the whitespace the
// removals leave behind. Unchanged segments produce no entries.
func (t *Transform) Apply(segments []domain.Segment) ([]domain.Segment, []domain.TranscriptChange) {
	out := make([]domain.Segment, len(segments))
	var changes []domain.TranscriptChange

	for i, seg := range segments {
		out[i] = seg
		cleaned := strip(seg.Text)
		if cleaned == seg.Text {
			continue
		}
		out[i] = seg.Clone()
		out[i].Text = cleaned
		changes = append(changes, domain.TranscriptChange{
			SegmentID:  seg.ID,
			Timestamp:  domain.FormatTimespan(seg.Start, seg.End),
			Before:     seg.Text,
			After:      cleaned,
			Reason:     domain.ReasonFiller,
			ChangeType: domain.ChangeNormalization,
		})
	}

	return out, changes
}

func strip(text string) string {
	cleaned := tokenPattern.ReplaceAllString(text, "")
	for _, p := range phrasePatterns {
		cleaned = p.ReplaceAllString(cleaned, "")
	}
	cleaned = multiSpace.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
