package numbers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
)

// TestTransform_Apply_MonthDay tests "<month> <number-word>" rewriting
func TestTransform_Apply_MonthDay(t *testing.T) {
	tr := New()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "the deadline is march three", "the deadline is March 3"},
		{"title case", "meet on March Three please", "meet on March 3 please"},
		{"teens", "launch on december fifteen", "launch on December 15"},
		{"tens", "review on june thirty", "review on June 30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, changes := tr.Apply([]domain.Segment{{ID: 0, Start: 0, End: 1, Text: tt.in}})
			assert.Equal(t, tt.want, out[0].Text)
			require.Len(t, changes, 1)
			assert.Equal(t, domain.ReasonNumber, changes[0].Reason)
		})
	}
}

// TestTransform_Apply_NumberUnit tests "<number-word> <unit>" rewriting
func TestTransform_Apply_NumberUnit(t *testing.T) {
	tr := New()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"pm", "the call is at five pm", "the call is at 5 pm"},
		{"am", "starts at seven am sharp", "starts at 7 am sharp"},
		{"o'clock", "around nine o'clock works", "around 9 o'clock works"},
		{"dollars", "it costs ten dollars", "it costs 10 dollars"},
		{"percent", "we saw a twenty percent drop", "we saw a 20 percent drop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := tr.Apply([]domain.Segment{{ID: 0, Start: 0, End: 1, Text: tt.in}})
			assert.Equal(t, tt.want, out[0].Text)
		})
	}
}

// TestTransform_Apply_UngatedNumbersUntouched tests that standalone
// number words are never rewritten
func TestTransform_Apply_UngatedNumbersUntouched(t *testing.T) {
	tr := New()
	tests := []string{
		"one of the options is better",
		"we have three candidates",
		"the first of may",
		"twenty people attended",
	}

	for _, text := range tests {
		out, changes := tr.Apply([]domain.Segment{{ID: 0, Start: 0, End: 1, Text: text}})
		assert.Equal(t, text, out[0].Text)
		assert.Empty(t, changes)
	}
}

// TestTransform_Apply_CombinedInOneSegment tests both substitutions
// logging a single change per segment
func TestTransform_Apply_CombinedInOneSegment(t *testing.T) {
	tr := New()
	segments := []domain.Segment{
		{ID: 0, Start: 30.0, End: 95.0, Text: "we ship march three at five pm"},
	}

	out, changes := tr.Apply(segments)

	assert.Equal(t, "we ship March 3 at 5 pm", out[0].Text)
	require.Len(t, changes, 1)
	assert.Equal(t, "00:30-01:35", changes[0].Timestamp)
	assert.Equal(t, "we ship march three at five pm", changes[0].Before)
	assert.Equal(t, "we ship March 3 at 5 pm", changes[0].After)
}

// TestTransform_Apply_DoesNotMutateInput tests copy-on-write
func TestTransform_Apply_DoesNotMutateInput(t *testing.T) {
	tr := New()
	segments := []domain.Segment{
		{ID: 0, Start: 0.0, End: 1.0, Text: "march three"},
	}

	tr.Apply(segments)

	assert.Equal(t, "march three", segments[0].Text)
}
