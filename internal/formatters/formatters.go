package formatters

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
)

// TranscriptDocument is the JSON transcript artifact: versioned
// metadata plus the segment list. It doubles as the input format,
// since watch mode and the process command read the same shape back.
type TranscriptDocument struct {
	SchemaVersion int                       `json:"schema_version"`
	Metadata      domain.ProcessingMetadata `json:"metadata"`
	Text          string                    `json:"text"`
	Language      string                    `json:"language,omitempty"`
	Segments      []domain.Segment          `json:"segments"`
}

// validateSegments rejects shapes the formatters cannot render.
func validateSegments(segments []domain.Segment) error {
	if len(segments) == 0 {
		return fmt.Errorf("%w: cannot format empty segment list", domain.ErrEmptyTranscript)
	}
	for i, seg := range segments {
		if seg.Start >= seg.End {
			return fmt.Errorf("%w: segment %d start (%g) must be less than end (%g)",
				domain.ErrInvalidInput, i, seg.Start, seg.End)
		}
	}
	return nil
}

// ToTXT renders one line per segment: "[HH:MM:SS–HH:MM:SS] text".
// The separator is an en-dash, not a hyphen.
func ToTXT(segments []domain.Segment) (string, error) {
	if err := validateSegments(segments); err != nil {
		return "", err
	}

	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		start, err := SecondsToHMS(seg.Start)
		if err != nil {
			return "", err
		}
		end, err := SecondsToHMS(seg.End)
		if err != nil {
			return "", err
		}
		lines = append(lines, fmt.Sprintf("[%s–%s] %s", start, end, seg.Text))
	}
	return strings.Join(lines, "\n"), nil
}

// ToSRT renders SubRip blocks: sequence number, "start --> end"
// timing with millisecond precision, text, blank-line separated.
func ToSRT(segments []domain.Segment) (string, error) {
	if err := validateSegments(segments); err != nil {
		return "", err
	}

	blocks := make([]string, 0, len(segments))
	for i, seg := range segments {
		start, err := SecondsToSRT(seg.Start)
		if err != nil {
			return "", err
		}
		end, err := SecondsToSRT(seg.End)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, fmt.Sprintf("%d\n%s --> %s\n%s", i+1, start, end, seg.Text))
	}
	return strings.Join(blocks, "\n\n"), nil
}

// ToJSON renders the versioned transcript document, pretty-printed
// with two-space indentation.
func ToJSON(transcription domain.Transcription, sourceFile string, generatedAt time.Time) (string, error) {
	if err := validateSegments(transcription.Segments); err != nil {
		return "", err
	}

	doc := TranscriptDocument{
		SchemaVersion: domain.SchemaVersion,
		Metadata: domain.ProcessingMetadata{
			SchemaVersion: domain.SchemaVersion,
			GeneratedAt:   generatedAt,
			SourceFile:    sourceFile,
			SegmentCount:  len(transcription.Segments),
			WordCount:     domain.WordCount(transcription.Segments),
		},
		Text:     transcription.Text,
		Language: transcription.Language,
		Segments: transcription.Segments,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal transcript: %w", err)
	}
	return string(data), nil
}

// ParseTranscript reads a transcript document or a bare Whisper-style
// result ({text, segments, language}) back into a Transcription.
func ParseTranscript(data []byte) (domain.Transcription, error) {
	var doc TranscriptDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Transcription{}, fmt.Errorf("%w: parse transcript: %v", domain.ErrInvalidInput, err)
	}
	if len(doc.Segments) == 0 {
		return domain.Transcription{}, fmt.Errorf("%w: transcript has no segments", domain.ErrEmptyTranscript)
	}

	transcription := domain.Transcription{
		Text:     doc.Text,
		Segments: doc.Segments,
		Language: doc.Language,
	}
	if transcription.Text == "" {
		transcription.Text = domain.FullText(transcription.Segments)
	}
	return transcription, nil
}
