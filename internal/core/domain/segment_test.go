package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFormatTimespan tests MM:SS-MM:SS rendering
func TestFormatTimespan(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		end   float64
		want  string
	}{
		{"zero start", 0.0, 5.0, "00:00-00:05"},
		{"minutes and seconds", 125.0, 187.0, "02:05-03:07"},
		{"fractional seconds truncate", 10.9, 20.1, "00:10-00:20"},
		{"minutes exceed 59", 3725.0, 3790.5, "62:05-63:10"},
		{"negative clamps to zero", -1.0, 2.0, "00:00-00:02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimespan(tt.start, tt.end))
		})
	}
}

// TestSegment_Clone tests that clones share no backing storage
func TestSegment_Clone(t *testing.T) {
	orig := Segment{
		ID:    3,
		Start: 1.0,
		End:   2.5,
		Text:  "hello world",
		Words: []Word{{Start: 1.0, End: 1.5, Word: "hello"}},
	}

	clone := orig.Clone()
	clone.Text = "changed"
	clone.Words[0].Word = "changed"

	assert.Equal(t, "hello world", orig.Text)
	assert.Equal(t, "hello", orig.Words[0].Word)
	assert.Equal(t, 3, clone.ID)
}

// TestTranscription_Clone tests deep copy of the segment list
func TestTranscription_Clone(t *testing.T) {
	orig := Transcription{
		Text: "a b",
		Segments: []Segment{
			{ID: 0, Start: 0, End: 1, Text: "a"},
			{ID: 1, Start: 1, End: 2, Text: "b"},
		},
	}

	clone := orig.Clone()
	clone.Segments[0].Text = "mutated"

	assert.Equal(t, "a", orig.Segments[0].Text)
	assert.Len(t, clone.Segments, 2)
}

// TestFullText tests joining with trimming and empty-segment skipping
func TestFullText(t *testing.T) {
	segments := []Segment{
		{ID: 0, Text: "  Hello there.  "},
		{ID: 1, Text: ""},
		{ID: 2, Text: "Second part."},
	}

	assert.Equal(t, "Hello there. Second part.", FullText(segments))
	assert.Equal(t, "", FullText(nil))
}

// TestWordCount tests whitespace word counting across segments
func TestWordCount(t *testing.T) {
	segments := []Segment{
		{ID: 0, Text: "one two three"},
		{ID: 1, Text: "four"},
	}

	assert.Equal(t, 4, WordCount(segments))
	assert.Equal(t, 0, WordCount(nil))
}

// TestTotalDuration tests duration summing
func TestTotalDuration(t *testing.T) {
	segments := []Segment{
		{ID: 0, Start: 0.0, End: 1.5},
		{ID: 1, Start: 2.0, End: 4.0},
	}

	assert.InDelta(t, 3.5, TotalDuration(segments), 1e-9)
}
