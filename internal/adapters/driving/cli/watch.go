package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scrivia-labs/scrivia-cli/internal/adapters/driving/watch"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driving"
	"github.com/scrivia-labs/scrivia-cli/internal/formatters"
	"github.com/scrivia-labs/scrivia-cli/internal/output"
)

var (
	watchOut      string
	watchPatterns []string
)

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Process new transcripts as they appear in a directory",
	Long: `Watch monitors a directory and runs the full pipeline over every new
transcript file matching the configured patterns. Detected meeting
types are accepted without prompting. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "output directory (defaults to the input file's directory)")
	watchCmd.Flags().StringSliceVarP(&watchPatterns, "pattern", "p", nil, "glob patterns to watch (defaults to watch.patterns from config)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	settings := currentSettings()

	patterns := settings.Watch.Patterns
	if len(watchPatterns) > 0 {
		patterns = watchPatterns
	}
	if len(patterns) == 0 {
		return errors.New("no watch patterns configured")
	}

	opts := driving.ProcessOptions{
		Normalize: driving.NormalizeOptions{
			RemoveFillers:    settings.Normalize.RemoveFillers,
			NormalizeNumbers: settings.Normalize.Numbers,
		},
		UseLLMClassify: settings.Classify.UseLLM,
	}

	handler := func(ctx context.Context, path string) error {
		return processWatchedFile(ctx, cmd, path, opts)
	}

	watcher, err := watch.New(args[0], patterns, handler)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (patterns: %v). Press Ctrl-C to stop.\n", args[0], patterns)

	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// processWatchedFile runs the pipeline over one settled transcript
// and writes the full artifact set.
func processWatchedFile(ctx context.Context, cmd *cobra.Command, path string, opts driving.ProcessOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}
	transcription, err := formatters.ParseTranscript(data)
	if err != nil {
		return fmt.Errorf("parse transcript: %w", err)
	}

	result, err := pipelineService.Process(ctx, path, transcription, opts)
	if err != nil {
		return err
	}

	manager, err := output.NewManager(path, watchOut)
	if err != nil {
		return err
	}
	if err := writeArtifacts(manager, result); err != nil {
		return err
	}

	printProcessSummary(cmd, manager, result)
	return nil
}
