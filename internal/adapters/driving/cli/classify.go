package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
	"github.com/scrivia-labs/scrivia-cli/internal/core/services"
	"github.com/scrivia-labs/scrivia-cli/internal/formatters"
)

var (
	classifyJSON bool
	classifyLLM  bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify <transcript.json>",
	Short: "Detect the meeting type of a transcript",
	Long: `Classify runs the keyword classifier over a transcript and prints the
detected meeting type with its confidence, evidence and runner-up
candidates. With --llm the configured LLM classifies high-signal
excerpts instead, falling back to the heuristic result on failure.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "output the classification as JSON")
	classifyCmd.Flags().BoolVar(&classifyLLM, "llm", false, "classify with the configured LLM")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	if classifierService == nil {
		return errors.New("classifier service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}
	transcription, err := formatters.ParseTranscript(data)
	if err != nil {
		return fmt.Errorf("parse transcript: %w", err)
	}

	text := domain.FullText(transcription.Segments)
	classification := classifierService.ClassifyWithStructure(text)

	if classifyLLM {
		if llmService == nil {
			return errors.New("no LLM provider configured")
		}
		highSignal := services.ExtractHighSignalSegments(text, 0, 0)
		llmResult, llmErr := llmService.ClassifyMeetingType(cmd.Context(), highSignal)
		if llmErr != nil {
			cmd.PrintErrf("LLM classification failed, using heuristic result: %v\n", llmErr)
		} else {
			classification = llmResult
		}
	}

	if classifyJSON {
		return printJSON(cmd, classification)
	}

	printClassification(cmd, classification)
	return nil
}

func printClassification(cmd *cobra.Command, c domain.Classification) {
	cmd.Printf("Detected: %s (%.0f%%, %s)\n", c.DetectedType, c.Confidence*100, c.Engine)
	if len(c.Evidence) > 0 {
		cmd.Println("Evidence:")
		for _, e := range c.Evidence {
			cmd.Printf("  %s\n", e)
		}
	}
	if len(c.SecondaryTypes) > 0 {
		cmd.Println("Also considered:")
		for _, s := range c.SecondaryTypes {
			cmd.Printf("  %s (score %.2f)\n", s.Type, s.Score)
		}
	}
}

// printJSON writes v as indented JSON to the command's output.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
