package domain

import "time"

// SecondaryType is a runner-up classification candidate with its raw
// confidence. Raw here means uncalibrated: score capped against the
// saturation constant, with no margin applied.
type SecondaryType struct {
	Type  MeetingType `json:"type"`
	Score float64     `json:"score"`
}

// Classification is the result of running the meeting-type detector
// over a transcript.
type Classification struct {
	// DetectedType is the winning taxonomy member.
	DetectedType MeetingType `json:"detected_type"`

	// Confidence is the calibrated confidence in [0, 1].
	Confidence float64 `json:"confidence"`

	// Evidence lists up to five "keyword (Nx)" strings for the
	// winning type, in deterministic table order.
	Evidence []string `json:"evidence"`

	// SecondaryTypes holds up to five runner-up candidates, ordered
	// by descending score. The detected type itself is never listed
	// here.
	SecondaryTypes []SecondaryType `json:"secondary_types"`

	// Engine identifies what produced the classification, such as
	// "heuristic" or a user override.
	Engine string `json:"engine"`

	// Timestamp records when the classification was produced.
	Timestamp time.Time `json:"timestamp"`
}
