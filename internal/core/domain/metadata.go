package domain

import "time"

// ProcessingMetadata is attached to the JSON transcript artifact so
// downstream consumers can tell what produced it.
type ProcessingMetadata struct {
	SchemaVersion int       `json:"schema_version"`
	GeneratedAt   time.Time `json:"generated_at"`
	SourceFile    string    `json:"source_file,omitempty"`
	SegmentCount  int       `json:"segment_count"`
	WordCount     int       `json:"word_count"`
	ChangeCount   int       `json:"change_count"`
}

// SchemaVersion is the current JSON artifact schema version.
const SchemaVersion = 2

// RunRecord is one entry in the processing history: a single
// end-to-end run of the pipeline over an input file.
type RunRecord struct {
	// ID is a generated UUID string.
	ID string `json:"id"`

	// InputPath is the source file the run processed.
	InputPath string `json:"input_path"`

	// DetectedType is the classified or overridden meeting type.
	DetectedType MeetingType `json:"detected_type"`

	// Confidence is the calibrated classification confidence.
	Confidence float64 `json:"confidence"`

	// ChangeCount is the number of normalization edits recorded.
	ChangeCount int `json:"change_count"`

	// SegmentCount is the segment count after normalization.
	SegmentCount int `json:"segment_count"`

	// WordCount is the word count after normalization.
	WordCount int `json:"word_count"`

	// Model names the LLM model used for repair, if any.
	Model string `json:"model,omitempty"`

	// Repaired reports whether LLM repair ran successfully.
	Repaired bool `json:"repaired"`

	// StartedAt and FinishedAt bound the run wall-clock time.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Duration returns the run wall-clock duration.
func (r RunRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
