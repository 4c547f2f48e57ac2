package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates an unknown input or output format.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrLLMUnavailable indicates no LLM engine is configured.
	// Features requiring LLM (transcript repair) are disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrRepairFailed indicates an LLM repair call failed or returned
	// output that could not be applied. The pipeline falls back to
	// the heuristic-only transcript when it sees this.
	ErrRepairFailed = errors.New("transcript repair failed")

	// ErrEmptyTranscript indicates the input contained no segments.
	ErrEmptyTranscript = errors.New("empty transcript")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
