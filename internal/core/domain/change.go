package domain

// Change type values: deterministic pipeline edits versus
// LLM-sourced repairs.
const (
	ChangeNormalization = "normalization"
	ChangeRepair        = "repair"
)

// Change reason strings. Every change a transform or the repair
// reconciler records carries exactly one of these, so the changelog
// renderer can group entries by kind. The stitch transform formats
// its own reason with the measured pause.
const (
	ReasonStutter = "Stutter reduction"
	ReasonFiller  = "Filler word removal"
	ReasonNumber  = "Number/date normalization"
	ReasonRepair  = "LLM-based ASR error correction"
)

// TranscriptChange is one auditable edit applied to the transcript.
// Entries are append-only; a segment may accumulate several across
// pipeline stages.
type TranscriptChange struct {
	// SegmentID identifies the affected segment. For a stitch merge
	// this is the surviving segment's id.
	SegmentID int `json:"segment_id"`

	// Timestamp is the affected span rendered as "MM:SS-MM:SS".
	Timestamp string `json:"timestamp"`

	// Before is the text prior to the edit.
	Before string `json:"before"`

	// After is the text following the edit. Always differs from
	// Before; no-op edits are never recorded.
	After string `json:"after"`

	// Reason is one of the Reason* constants, or a transform's
	// formatted stitch reason.
	Reason string `json:"reason"`

	// ChangeType is ChangeNormalization or ChangeRepair.
	ChangeType string `json:"change_type"`
}

// NormalizationResult pairs the normalized transcription with the
// ordered change log that produced it. Changes appear in stage order:
// all of one transform's edits before any of the next's.
type NormalizationResult struct {
	Transcription Transcription      `json:"transcription"`
	Changes       []TranscriptChange `json:"changes"`
}

// RepairChange is a correction reported by an LLM repair engine
// alongside its repaired text.
type RepairChange struct {
	SegmentID int    `json:"segment_id,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Before    string `json:"before"`
	After     string `json:"after"`
	Reason    string `json:"reason,omitempty"`
}

// RepairResult is the parsed output of an LLM repair call.
type RepairResult struct {
	// RepairedText is the full corrected transcript.
	RepairedText string `json:"repaired_text"`

	// Changes optionally itemises the corrections made. Engines
	// that return plain text leave this empty.
	Changes []RepairChange `json:"changes,omitempty"`
}
