// Package domain defines the core business entities for Scrivia.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Segment: A timestamped span of transcript text
//   - Transcription: A full ASR result with its segment list
//   - Classification: A meeting-type detection result
//   - TranscriptChange: One auditable normalization edit
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
