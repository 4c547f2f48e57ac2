package driving

import "github.com/scrivia-labs/scrivia-cli/internal/core/domain"

// ClassifierService detects the meeting type of a transcript.
type ClassifierService interface {
	// Classify scores the transcript against the taxonomy and
	// returns the winning type with calibrated confidence, evidence,
	// and runner-up candidates.
	Classify(text string) domain.Classification

	// ClassifyWithStructure runs Classify with the structural
	// bonuses (question density, timeline references, action
	// markers) applied on top of the keyword scores.
	ClassifyWithStructure(text string) domain.Classification
}
