package domain

import (
	"fmt"
	"strings"
)

// Word is a single word-level timing entry within a segment.
// Word timings are optional; the ASR step may omit them entirely.
type Word struct {
	// Start is the word start time in seconds.
	Start float64 `json:"start"`

	// End is the word end time in seconds.
	End float64 `json:"end"`

	// Word is the word text.
	Word string `json:"word"`
}

// Segment is a timestamped span of transcript text produced by the
// ASR step. Segment IDs are assigned before any processing runs and
// are preserved through normalization; when segments are stitched the
// surviving segment keeps the ID of its first constituent.
type Segment struct {
	// ID is the stable segment identifier.
	ID int `json:"id"`

	// Start is the segment start time in seconds.
	Start float64 `json:"start"`

	// End is the segment end time in seconds (always > Start).
	End float64 `json:"end"`

	// Text is the transcribed text for this span.
	Text string `json:"text"`

	// Words holds optional word-level timings.
	Words []Word `json:"words,omitempty"`
}

// Clone returns a deep copy of the segment.
func (s Segment) Clone() Segment {
	out := s
	if s.Words != nil {
		out.Words = make([]Word, len(s.Words))
		copy(out.Words, s.Words)
	}
	return out
}

// Duration returns the segment duration in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// Transcription is a full ASR result: the concatenated text plus the
// ordered segment list it was built from.
type Transcription struct {
	// Text is the full transcript text.
	Text string `json:"text"`

	// Segments is the ordered segment list.
	Segments []Segment `json:"segments"`

	// Language is the detected or configured language code, if known.
	Language string `json:"language,omitempty"`
}

// Clone returns a deep copy of the transcription. Engines that mutate
// segments operate on a clone so caller-owned data is never touched.
func (t Transcription) Clone() Transcription {
	out := t
	out.Segments = make([]Segment, len(t.Segments))
	for i, s := range t.Segments {
		out.Segments[i] = s.Clone()
	}
	return out
}

// FullText joins the trimmed segment texts with single spaces.
// This is the canonical way the top-level Text field is rebuilt after
// normalization, so FullText(segments) always round-trips with it.
func FullText(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		text := strings.TrimSpace(s.Text)
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// WordCount returns the number of whitespace-separated words across
// all segments.
func WordCount(segments []Segment) int {
	return len(strings.Fields(FullText(segments)))
}

// TotalDuration sums the duration of all segments in seconds.
func TotalDuration(segments []Segment) float64 {
	var total float64
	for _, s := range segments {
		total += s.Duration()
	}
	return total
}

// FormatTimespan renders a start/end pair as "MM:SS-MM:SS".
// Fractional seconds are truncated; minutes may exceed 59 for long
// recordings.
func FormatTimespan(start, end float64) string {
	return fmt.Sprintf("%s-%s", FormatClock(start), FormatClock(end))
}

// FormatClock renders a point in time as "MM:SS", truncating
// fractional seconds.
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
