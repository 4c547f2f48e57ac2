package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driving"
	"github.com/scrivia-labs/scrivia-cli/internal/core/services"
)

// mockPipelineService records the options it was called with and
// returns a canned result.
type mockPipelineService struct {
	lastOpts driving.ProcessOptions
	result   *driving.ProcessResult
	err      error
	calls    int
}

func (m *mockPipelineService) Process(_ context.Context, inputPath string, transcription domain.Transcription, opts driving.ProcessOptions) (*driving.ProcessResult, error) {
	m.calls++
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	detected := domain.MeetingStatus
	confidence := 0.72
	engine := "heuristic"
	if opts.TypeOverride.IsValid() {
		detected = opts.TypeOverride
		confidence = 1.0
		engine = "user"
	}
	return &driving.ProcessResult{
		Transcription: transcription,
		Changes:       []domain.TranscriptChange{},
		Classification: domain.Classification{
			DetectedType:   detected,
			Confidence:     confidence,
			Evidence:       []string{"standup (2x)"},
			SecondaryTypes: []domain.SecondaryType{},
			Engine:         engine,
			Timestamp:      now,
		},
		Notes: "# Meeting Notes\n",
		Record: domain.RunRecord{
			ID:           "run-1",
			InputPath:    inputPath,
			DetectedType: detected,
			Confidence:   confidence,
			SegmentCount: len(transcription.Segments),
			WordCount:    domain.WordCount(transcription.Segments),
			StartedAt:    now,
			FinishedAt:   now.Add(2 * time.Second),
		},
	}, nil
}

const transcriptFixture = `{
  "text": "Yesterday I finished the importer. Today I will start on the exporter.",
  "language": "en",
  "segments": [
    {"id": 0, "start": 0.0, "end": 4.0, "text": "Yesterday I finished the importer."},
    {"id": 1, "start": 5.0, "end": 9.0, "text": "Today I will start on the exporter."}
  ]
}`

func writeTranscriptFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "standup.json")
	require.NoError(t, os.WriteFile(path, []byte(transcriptFixture), 0o644))
	return path
}

// withProcessServices swaps in a mock pipeline plus real classifier
// and restores everything afterwards.
func withProcessServices(t *testing.T, pipeline *mockPipelineService) {
	t.Helper()

	oldPipeline := pipelineService
	oldClassifier := classifierService
	oldSettings := settingsService
	oldPicker := pickMeetingType

	pipelineService = pipeline
	classifierService = services.NewClassifierService(nil)
	settingsService = &mockSettingsService{}
	pickMeetingType = func(c domain.Classification) (domain.MeetingType, error) {
		return c.DetectedType, nil
	}

	t.Cleanup(func() {
		pipelineService = oldPipeline
		classifierService = oldClassifier
		settingsService = oldSettings
		pickMeetingType = oldPicker
	})
}

func resetProcessFlags() {
	processOut = ""
	processType = ""
	processYes = false
	processNoRepair = false
	processNoNotes = false
	processFillers = false
	processNoNumbers = false
}

func TestProcessCmd_WritesArtifacts(t *testing.T) {
	pipeline := &mockPipelineService{}
	withProcessServices(t, pipeline)
	resetProcessFlags()

	path := writeTranscriptFixture(t)
	outDir := t.TempDir()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"process", path, "--out", outDir, "--yes"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, 1, pipeline.calls)

	out := buf.String()
	assert.Contains(t, out, "Processed standup")
	assert.Contains(t, out, "status")
	assert.Contains(t, out, outDir)

	for _, name := range []string{
		"standup.transcript.txt",
		"standup.transcript.srt",
		"standup.transcript.json",
		"standup.notes.md",
		"standup.meeting-type.json",
		"standup.changes.md",
		"standup.metadata.json",
	} {
		_, statErr := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, statErr, "expected artifact %s", name)
	}
}

func TestProcessCmd_TypeOverrideFlag(t *testing.T) {
	pipeline := &mockPipelineService{}
	withProcessServices(t, pipeline)
	resetProcessFlags()

	path := writeTranscriptFixture(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"process", path, "--out", t.TempDir(), "--type", "incident"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, domain.MeetingIncident, pipeline.lastOpts.TypeOverride)
	assert.Contains(t, buf.String(), "incident")
}

func TestProcessCmd_InvalidType(t *testing.T) {
	pipeline := &mockPipelineService{}
	withProcessServices(t, pipeline)
	resetProcessFlags()

	path := writeTranscriptFixture(t)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"process", path, "--type", "retrospective"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid meeting type")
	assert.Zero(t, pipeline.calls)
}

func TestProcessCmd_SkipFlags(t *testing.T) {
	pipeline := &mockPipelineService{}
	withProcessServices(t, pipeline)
	resetProcessFlags()

	path := writeTranscriptFixture(t)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"process", path, "--out", t.TempDir(), "--yes", "--no-repair", "--no-notes"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.True(t, pipeline.lastOpts.SkipRepair)
	assert.True(t, pipeline.lastOpts.SkipNotes)
}

func TestProcessCmd_NormalizeFlagsOverrideSettings(t *testing.T) {
	pipeline := &mockPipelineService{}
	withProcessServices(t, pipeline)
	resetProcessFlags()

	path := writeTranscriptFixture(t)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"process", path, "--out", t.TempDir(), "--yes", "--remove-fillers", "--no-numbers"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.True(t, pipeline.lastOpts.Normalize.RemoveFillers)
	assert.False(t, pipeline.lastOpts.Normalize.NormalizeNumbers)
}

func TestProcessCmd_PickerOverride(t *testing.T) {
	pipeline := &mockPipelineService{}
	withProcessServices(t, pipeline)
	resetProcessFlags()

	// The fixture classifies as status with modest confidence, so a
	// high threshold forces the picker.
	settings := domain.DefaultAppSettings()
	settings.Classify.AutoAccept = 0.99
	settingsService = &mockSettingsService{settings: &settings}

	picked := false
	pickMeetingType = func(c domain.Classification) (domain.MeetingType, error) {
		picked = true
		return domain.MeetingPlanning, nil
	}

	path := writeTranscriptFixture(t)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"process", path, "--out", t.TempDir()})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.True(t, picked)
	assert.Equal(t, domain.MeetingPlanning, pipeline.lastOpts.TypeOverride)
}

func TestProcessCmd_PickerConfirmsDetected(t *testing.T) {
	pipeline := &mockPipelineService{}
	withProcessServices(t, pipeline)
	resetProcessFlags()

	settings := domain.DefaultAppSettings()
	settings.Classify.AutoAccept = 0.99
	settingsService = &mockSettingsService{settings: &settings}

	path := writeTranscriptFixture(t)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"process", path, "--out", t.TempDir()})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	// Confirming the detected type leaves classification to the pipeline.
	assert.False(t, pipeline.lastOpts.TypeOverride.IsValid())
}

func TestProcessCmd_YesSkipsPicker(t *testing.T) {
	pipeline := &mockPipelineService{}
	withProcessServices(t, pipeline)
	resetProcessFlags()

	settings := domain.DefaultAppSettings()
	settings.Classify.AutoAccept = 0.99
	settingsService = &mockSettingsService{settings: &settings}

	picked := false
	pickMeetingType = func(c domain.Classification) (domain.MeetingType, error) {
		picked = true
		return c.DetectedType, nil
	}

	path := writeTranscriptFixture(t)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"process", path, "--out", t.TempDir(), "--yes"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.False(t, picked)
}

func TestProcessCmd_MissingInput(t *testing.T) {
	pipeline := &mockPipelineService{}
	withProcessServices(t, pipeline)
	resetProcessFlags()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"process", filepath.Join(t.TempDir(), "missing.json"), "--yes"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read transcript")
	assert.Zero(t, pipeline.calls)
}

func TestProcessCmd_InvalidJSON(t *testing.T) {
	pipeline := &mockPipelineService{}
	withProcessServices(t, pipeline)
	resetProcessFlags()

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"process", path, "--yes"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse transcript")
}

func TestProcessCmd_NoService(t *testing.T) {
	oldPipeline := pipelineService
	pipelineService = nil
	defer func() { pipelineService = oldPipeline }()
	resetProcessFlags()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"process", "whatever.json"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline service not configured")
}
