package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scrivia-labs/scrivia-cli/internal/adapters/driving/tui/typemenu"
	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driving"
	"github.com/scrivia-labs/scrivia-cli/internal/formatters"
	"github.com/scrivia-labs/scrivia-cli/internal/output"
)

var (
	processOut       string
	processType      string
	processYes       bool
	processNoRepair  bool
	processNoNotes   bool
	processFillers   bool
	processNoNumbers bool
)

// pickMeetingType prompts for a low-confidence classification.
// Replaced in tests.
var pickMeetingType = typemenu.Run

var processCmd = &cobra.Command{
	Use:   "process <transcript.json>",
	Short: "Run the full processing pipeline over a transcript",
	Long: `Process parses a Whisper-style transcript JSON file, normalizes the
segments, optionally repairs them with the configured LLM, classifies
the meeting type and writes the full artifact set (txt, srt, json,
notes, change log, meeting type and metadata) next to the input file
or into the directory given with --out.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&processOut, "out", "o", "", "output directory (defaults to the input file's directory)")
	processCmd.Flags().StringVarP(&processType, "type", "t", "", "meeting type override (skips classification)")
	processCmd.Flags().BoolVarP(&processYes, "yes", "y", false, "accept the detected meeting type without prompting")
	processCmd.Flags().BoolVar(&processNoRepair, "no-repair", false, "skip the LLM repair pass")
	processCmd.Flags().BoolVar(&processNoNotes, "no-notes", false, "skip note generation")
	processCmd.Flags().BoolVar(&processFillers, "remove-fillers", false, "remove filler words during normalization")
	processCmd.Flags().BoolVar(&processNoNumbers, "no-numbers", false, "keep spelled-out numbers and dates as-is")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	inputPath := args[0]
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	transcription, err := formatters.ParseTranscript(data)
	if err != nil {
		return fmt.Errorf("parse transcript: %w", err)
	}

	settings := currentSettings()

	opts := driving.ProcessOptions{
		Normalize: driving.NormalizeOptions{
			RemoveFillers:    settings.Normalize.RemoveFillers,
			NormalizeNumbers: settings.Normalize.Numbers,
		},
		UseLLMClassify: settings.Classify.UseLLM,
		SkipRepair:     processNoRepair,
		SkipNotes:      processNoNotes,
	}
	if cmd.Flags().Changed("remove-fillers") {
		opts.Normalize.RemoveFillers = processFillers
	}
	if cmd.Flags().Changed("no-numbers") {
		opts.Normalize.NormalizeNumbers = !processNoNumbers
	}

	if processType != "" {
		mt, ok := domain.ParseMeetingType(processType)
		if !ok {
			return fmt.Errorf("invalid meeting type %q (valid: %s)", processType, meetingTypeList())
		}
		opts.TypeOverride = mt
	} else if !processYes && classifierService != nil {
		override, err := confirmDetectedType(transcription, settings.Classify.AutoAccept)
		if err != nil {
			return err
		}
		opts.TypeOverride = override
	}

	result, err := pipelineService.Process(cmd.Context(), inputPath, transcription, opts)
	if err != nil {
		return err
	}

	manager, err := output.NewManager(inputPath, processOut)
	if err != nil {
		return err
	}
	if err := writeArtifacts(manager, result); err != nil {
		return err
	}

	printProcessSummary(cmd, manager, result)
	return nil
}

// confirmDetectedType runs a preview classification over the raw text
// and prompts when it falls below the auto-accept threshold. Returns
// the override to pin, or "" to let the pipeline classify normally.
func confirmDetectedType(transcription domain.Transcription, autoAccept float64) (domain.MeetingType, error) {
	preview := classifierService.ClassifyWithStructure(domain.FullText(transcription.Segments))
	if preview.Confidence >= autoAccept {
		return "", nil
	}

	chosen, err := pickMeetingType(preview)
	if err != nil {
		return "", fmt.Errorf("meeting type selection: %w", err)
	}
	if chosen == preview.DetectedType {
		return "", nil
	}
	return chosen, nil
}

func writeArtifacts(manager *output.Manager, result *driving.ProcessResult) error {
	paths := manager.Paths()
	segments := result.Transcription.Segments

	txt, err := formatters.ToTXT(segments)
	if err != nil {
		return fmt.Errorf("format txt: %w", err)
	}
	if err := manager.Write(paths.TranscriptTXT, []byte(txt)); err != nil {
		return err
	}

	srt, err := formatters.ToSRT(segments)
	if err != nil {
		return fmt.Errorf("format srt: %w", err)
	}
	if err := manager.Write(paths.TranscriptSRT, []byte(srt)); err != nil {
		return err
	}

	jsonDoc, err := formatters.ToJSON(result.Transcription, manager.InputPath(), result.Record.FinishedAt)
	if err != nil {
		return fmt.Errorf("format json: %w", err)
	}
	if err := manager.Write(paths.TranscriptJSON, []byte(jsonDoc)); err != nil {
		return err
	}

	changes := formatters.RenderChangesLog(result.Changes)
	if err := manager.Write(paths.Changes, []byte(changes)); err != nil {
		return err
	}

	if result.Notes != "" {
		if err := manager.Write(paths.Notes, []byte(result.Notes)); err != nil {
			return err
		}
	}

	classification, err := json.MarshalIndent(result.Classification, "", "  ")
	if err != nil {
		return fmt.Errorf("encode classification: %w", err)
	}
	if err := manager.Write(paths.MeetingType, classification); err != nil {
		return err
	}

	meta := domain.ProcessingMetadata{
		SchemaVersion: domain.SchemaVersion,
		GeneratedAt:   result.Record.FinishedAt,
		SourceFile:    manager.InputPath(),
		SegmentCount:  len(segments),
		WordCount:     domain.WordCount(segments),
		ChangeCount:   len(result.Changes),
	}
	metaDoc, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	return manager.Write(paths.Metadata, metaDoc)
}

func printProcessSummary(cmd *cobra.Command, manager *output.Manager, result *driving.ProcessResult) {
	c := result.Classification
	cmd.Printf("Processed %s\n", manager.BaseName())
	cmd.Printf("  Meeting type: %s (%.0f%%, %s)\n", c.DetectedType, c.Confidence*100, c.Engine)
	cmd.Printf("  Segments: %d  Words: %d  Changes: %d\n",
		result.Record.SegmentCount, result.Record.WordCount, result.Record.ChangeCount)
	if result.Record.Repaired {
		cmd.Printf("  Repaired with %s\n", result.Record.Model)
	}
	if result.Notes == "" {
		cmd.Println("  Notes: skipped")
	}
	cmd.Printf("  Output: %s\n", manager.OutDir())
}

// currentSettings loads settings, falling back to defaults when no
// settings service is wired or loading fails.
func currentSettings() domain.AppSettings {
	if settingsService == nil {
		return domain.DefaultAppSettings()
	}
	settings, err := settingsService.Get()
	if err != nil || settings == nil {
		return domain.DefaultAppSettings()
	}
	return *settings
}

func meetingTypeList() string {
	types := domain.AllMeetingTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
