package services

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driven"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driving"
	"github.com/scrivia-labs/scrivia-cli/internal/logger"
	"github.com/scrivia-labs/scrivia-cli/internal/notes"
)

// Ensure PipelineService implements the interface.
var _ driving.PipelineService = (*PipelineService)(nil)

// EngineUser marks a classification pinned by the user rather than
// produced by a detector.
const EngineUser = "user"

// PipelineService coordinates the full processing flow over one
// transcript: deterministic normalization, optional LLM repair,
// classification, note generation and the run record. Every LLM step
// is best-effort; a failure degrades to the deterministic result and
// never aborts the run.
type PipelineService struct {
	normalizer driving.NormalizerService
	repair     driving.RepairService
	classifier driving.ClassifierService
	llm        driven.LLMService
	runs       driven.RunStore
	notes      *notes.Generator

	now   func() time.Time
	newID func() string
}

// PipelineOption customises a PipelineService.
type PipelineOption func(*PipelineService)

// WithPipelineClock substitutes the time source.
func WithPipelineClock(now func() time.Time) PipelineOption {
	return func(s *PipelineService) {
		s.now = now
	}
}

// WithIDSource substitutes the run ID generator.
func WithIDSource(newID func() string) PipelineOption {
	return func(s *PipelineService) {
		s.newID = newID
	}
}

// NewPipelineService creates a pipeline service. The llm, runs and
// generator parameters may be nil: a nil llm disables repair and LLM
// classification, a nil runs store skips history recording, and a nil
// generator skips notes.
func NewPipelineService(
	normalizer driving.NormalizerService,
	repair driving.RepairService,
	classifier driving.ClassifierService,
	llm driven.LLMService,
	runs driven.RunStore,
	generator *notes.Generator,
	opts ...PipelineOption,
) *PipelineService {
	s := &PipelineService{
		normalizer: normalizer,
		repair:     repair,
		classifier: classifier,
		llm:        llm,
		runs:       runs,
		notes:      generator,
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Process runs the pipeline over a parsed transcription.
func (s *PipelineService) Process(ctx context.Context, inputPath string, transcription domain.Transcription, opts driving.ProcessOptions) (*driving.ProcessResult, error) {
	if len(transcription.Segments) == 0 {
		return nil, domain.ErrEmptyTranscript
	}

	startedAt := s.now()

	logger.Section("Normalize")
	start := s.now()
	norm := s.normalizer.Normalize(transcription, opts.Normalize)
	current := norm.Transcription
	changes := norm.Changes
	logger.Timing("normalize", s.now().Sub(start))
	logger.Debug("normalization recorded %d changes", len(changes))

	repaired := false
	if !opts.SkipRepair && s.llm != nil && s.repair != nil {
		logger.Section("Repair")
		start = s.now()
		res, err := s.repair.Repair(ctx, current)
		if err != nil {
			logger.Warn("LLM repair unavailable, keeping deterministic output: %v", err)
		} else {
			current = res.Transcription
			changes = append(changes, res.Changes...)
			repaired = true
			logger.Debug("repair recorded %d changes", len(res.Changes))
		}
		logger.Timing("repair", s.now().Sub(start))
	}

	logger.Section("Classify")
	start = s.now()
	classification := s.classify(ctx, current, opts)
	logger.Timing("classify", s.now().Sub(start))
	logger.Info("detected %s (%.0f%% confidence, %s)",
		classification.DetectedType, classification.Confidence*100, classification.Engine)

	notesText := ""
	if !opts.SkipNotes && s.notes != nil {
		logger.Section("Notes")
		start = s.now()
		meta := notes.Metadata{
			InputFile: filepath.Base(inputPath),
			Language:  current.Language,
		}
		if repaired {
			meta.Engine = "llm"
			meta.Model = s.llm.ModelName()
		}
		text, err := s.notes.Generate(current, meta, classification.DetectedType)
		if err != nil {
			logger.Warn("notes skipped: %v", err)
		} else {
			notesText = text
		}
		logger.Timing("notes", s.now().Sub(start))
	}

	record := domain.RunRecord{
		ID:           s.newID(),
		InputPath:    inputPath,
		DetectedType: classification.DetectedType,
		Confidence:   classification.Confidence,
		ChangeCount:  len(changes),
		SegmentCount: len(current.Segments),
		WordCount:    domain.WordCount(current.Segments),
		Repaired:     repaired,
		StartedAt:    startedAt,
		FinishedAt:   s.now(),
	}
	if repaired {
		record.Model = s.llm.ModelName()
	}

	if s.runs != nil {
		if err := s.runs.Save(ctx, record); err != nil {
			logger.Warn("run record not saved: %v", err)
		}
	}

	return &driving.ProcessResult{
		Transcription:  current,
		Changes:        changes,
		Classification: classification,
		Notes:          notesText,
		Record:         record,
	}, nil
}

// classify resolves the meeting type: user override, optional LLM
// pass over high-signal excerpts, or the heuristic detector.
func (s *PipelineService) classify(ctx context.Context, transcription domain.Transcription, opts driving.ProcessOptions) domain.Classification {
	if opts.TypeOverride.IsValid() {
		return domain.Classification{
			DetectedType:   opts.TypeOverride,
			Confidence:     1.0,
			Evidence:       []string{"User override"},
			SecondaryTypes: []domain.SecondaryType{},
			Engine:         EngineUser,
			Timestamp:      s.now().UTC(),
		}
	}

	heuristic := s.classifier.ClassifyWithStructure(transcription.Text)

	if opts.UseLLMClassify && s.llm != nil {
		highSignal := ExtractHighSignalSegments(transcription.Text, 0, 0)
		if len(highSignal) > 0 {
			result, err := s.llm.ClassifyMeetingType(ctx, highSignal)
			if err == nil {
				return result
			}
			logger.Warn("LLM classification unavailable, using heuristic result: %v", err)
		}
	}

	return heuristic
}
