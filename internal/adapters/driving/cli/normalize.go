package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driving"
	"github.com/scrivia-labs/scrivia-cli/internal/formatters"
)

var (
	normalizeFillers   bool
	normalizeNoNumbers bool
	normalizeChanges   bool
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <transcript.json>",
	Short: "Clean a transcript without the rest of the pipeline",
	Long: `Normalize runs only the deterministic cleanup stages (stutter
reduction, sentence stitching and the optional filler and number
stages) and prints the cleaned transcript. No files are written.`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().BoolVar(&normalizeFillers, "remove-fillers", false, "remove filler words")
	normalizeCmd.Flags().BoolVar(&normalizeNoNumbers, "no-numbers", false, "keep spelled-out numbers and dates as-is")
	normalizeCmd.Flags().BoolVar(&normalizeChanges, "changes", false, "print the change log instead of the transcript")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	if normalizerService == nil {
		return errors.New("normalizer service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}
	transcription, err := formatters.ParseTranscript(data)
	if err != nil {
		return fmt.Errorf("parse transcript: %w", err)
	}

	opts := driving.NormalizeOptions{
		RemoveFillers:    normalizeFillers,
		NormalizeNumbers: !normalizeNoNumbers,
	}
	result := normalizerService.Normalize(transcription, opts)

	if normalizeChanges {
		cmd.Print(formatters.RenderChangesLog(result.Changes))
		return nil
	}

	txt, err := formatters.ToTXT(result.Transcription.Segments)
	if err != nil {
		return fmt.Errorf("format transcript: %w", err)
	}
	cmd.Print(txt)
	return nil
}
