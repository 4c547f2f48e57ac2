package fillers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
)

// TestTransform_Apply_Hesitations tests um/uh/hmm removal
func TestTransform_Apply_Hesitations(t *testing.T) {
	tr := New()
	segments := []domain.Segment{
		{ID: 0, Start: 0.0, End: 3.0, Text: "um I think uh we should proceed"},
	}

	out, changes := tr.Apply(segments)

	assert.Equal(t, "I think we should proceed", out[0].Text)
	require.Len(t, changes, 1)
	assert.Equal(t, domain.ReasonFiller, changes[0].Reason)
}

// TestTransform_Apply_ElongatedHesitations tests umm/uhhh/hmmm forms
func TestTransform_Apply_ElongatedHesitations(t *testing.T) {
	tr := New()
	segments := []domain.Segment{
		{ID: 0, Start: 0.0, End: 2.0, Text: "Ummm let me see hmmm right"},
	}

	out, _ := tr.Apply(segments)

	assert.Equal(t, "let me see right", out[0].Text)
}

// TestTransform_Apply_Phrases tests fixed filler phrase removal
func TestTransform_Apply_Phrases(t *testing.T) {
	tr := New()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"you know", "this is you know a good idea", "this is a good idea"},
		{"I mean", "I mean we could try it", "we could try it"},
		{"so like", "it was so like really fast", "it was really fast"},
		{"kind of like", "it is kind of like a cache", "it is a cache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := tr.Apply([]domain.Segment{{ID: 0, Start: 0, End: 1, Text: tt.in}})
			assert.Equal(t, tt.want, out[0].Text)
		})
	}
}

// TestTransform_Apply_PreservesBareLike tests that "like" as a verb
// is never stripped
func TestTransform_Apply_PreservesBareLike(t *testing.T) {
	tr := New()
	segments := []domain.Segment{
		{ID: 0, Start: 0.0, End: 2.0, Text: "I like this approach"},
	}

	out, changes := tr.Apply(segments)

	assert.Equal(t, "I like this approach", out[0].Text)
	assert.Empty(t, changes)
}

// TestTransform_Apply_NoFalsePositives tests that filler substrings
// inside real words are untouched
func TestTransform_Apply_NoFalsePositives(t *testing.T) {
	tr := New()
	segments := []domain.Segment{
		{ID: 0, Start: 0.0, End: 2.0, Text: "the umbrella column summary"},
	}

	out, changes := tr.Apply(segments)

	assert.Equal(t, "the umbrella column summary", out[0].Text)
	assert.Empty(t, changes)
}

// TestTransform_Apply_CollapsesWhitespace tests cleanup of the gaps
// removals leave behind
func TestTransform_Apply_CollapsesWhitespace(t *testing.T) {
	tr := New()
	segments := []domain.Segment{
		{ID: 0, Start: 0.0, End: 2.0, Text: "um   we should   uh  proceed"},
	}

	out, _ := tr.Apply(segments)

	assert.Equal(t, "we should proceed", out[0].Text)
	assert.NotContains(t, out[0].Text, "  ")
}

// TestTransform_Apply_DoesNotMutateInput tests copy-on-write
func TestTransform_Apply_DoesNotMutateInput(t *testing.T) {
	tr := New()
	segments := []domain.Segment{
		{ID: 0, Start: 0.0, End: 1.0, Text: "um hello"},
	}

	tr.Apply(segments)

	assert.Equal(t, "um hello", segments[0].Text)
}
