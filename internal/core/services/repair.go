package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driven"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driving"
	"github.com/scrivia-labs/scrivia-cli/internal/logger"
)

// Ensure RepairService implements the interface.
var _ driving.RepairService = (*RepairService)(nil)

// RepairService applies LLM transcript corrections back onto the
// original segment boundaries.
//
// The reconciliation is proportional word redistribution, not
// alignment: each segment except the last receives as many repaired
// words as its original held (at least one), and the last segment
// absorbs the remainder. Word counts that drift during repair
// therefore shift text between neighbouring segments; timestamps are
// trusted over exact word placement.
type RepairService struct {
	llm driven.LLMService
}

// NewRepairService creates a repair service. The llm parameter may be
// nil, in which case Repair always fails and callers fall back to the
// deterministic result.
func NewRepairService(llm driven.LLMService) *RepairService {
	return &RepairService{
		llm: llm,
	}
}

// Repair asks the configured LLM to correct the transcript, then
// reconciles the corrected text with the original segments.
func (r *RepairService) Repair(ctx context.Context, transcription domain.Transcription) (domain.NormalizationResult, error) {
	if r.llm == nil {
		return domain.NormalizationResult{}, domain.ErrLLMUnavailable
	}

	result, err := r.llm.RepairTranscript(ctx, transcription.Text)
	if err != nil {
		if errors.Is(err, domain.ErrRepairFailed) {
			return domain.NormalizationResult{}, err
		}
		return domain.NormalizationResult{}, fmt.Errorf("%w: %v", domain.ErrRepairFailed, err)
	}

	return r.Apply(transcription, result), nil
}

// Apply reconciles repaired text with the original segments without
// calling the LLM.
func (r *RepairService) Apply(transcription domain.Transcription, result domain.RepairResult) domain.NormalizationResult {
	working := transcription.Clone()
	repaired := strings.TrimSpace(result.RepairedText)

	var changes []domain.TranscriptChange

	if repaired != "" && repaired != transcription.Text {
		changes = redistribute(working.Segments, repaired)
		working.Text = repaired
	}

	for _, rc := range result.Changes {
		if rc.Before == rc.After {
			continue
		}
		reason := rc.Reason
		if reason == "" {
			reason = domain.ReasonRepair
		}
		changes = append(changes, domain.TranscriptChange{
			SegmentID:  rc.SegmentID,
			Timestamp:  rc.Timestamp,
			Before:     rc.Before,
			After:      rc.After,
			Reason:     reason,
			ChangeType: domain.ChangeRepair,
		})
	}

	logger.Debug("Repair reconciled %d segments with %d changes",
		len(working.Segments), len(changes))

	return domain.NormalizationResult{
		Transcription: working,
		Changes:       changes,
	}
}

// redistribute splits the repaired text back over the segments in
// place, proportionally to each segment's original word count, and
// logs a change per segment whose text differs.
func redistribute(segments []domain.Segment, repaired string) []domain.TranscriptChange {
	words := strings.Fields(repaired)
	var changes []domain.TranscriptChange

	for i := range segments {
		seg := &segments[i]

		var take int
		if i == len(segments)-1 {
			take = len(words)
		} else {
			take = max(1, len(strings.Fields(seg.Text)))
			if take > len(words) {
				take = len(words)
			}
		}

		newText := strings.Join(words[:take], " ")
		words = words[take:]

		if newText == seg.Text {
			continue
		}
		changes = append(changes, domain.TranscriptChange{
			SegmentID:  seg.ID,
			Timestamp:  domain.FormatTimespan(seg.Start, seg.End),
			Before:     seg.Text,
			After:      newText,
			Reason:     domain.ReasonRepair,
			ChangeType: domain.ChangeRepair,
		})
		seg.Text = newText
	}

	return changes
}
