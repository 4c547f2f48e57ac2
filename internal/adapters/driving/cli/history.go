package cli

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent processing runs",
	Long: `History lists recorded pipeline runs, newest first. Use "history show"
to inspect a single run and "history stats" for a summary across all
runs.`,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the recorded run history",
	RunE:  runHistoryStats,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of runs to list (0 for all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output runs as JSON")
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyStatsCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	records, err := historyService.List(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	if historyJSON {
		return printJSON(cmd, records)
	}

	if len(records) == 0 {
		cmd.Println("No runs recorded yet.")
		return nil
	}

	for _, r := range records {
		printRunLine(cmd, r)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	record, err := historyService.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd, record)
}

func runHistoryStats(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	analysis, err := historyService.Analyze(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Printf("Total runs: %d\n", analysis.TotalRuns)
	if analysis.Fastest != nil {
		cmd.Printf("Fastest: %s (%s in %s)\n",
			analysis.Fastest.ID, filepath.Base(analysis.Fastest.InputPath), analysis.Fastest.Duration())
	}
	if analysis.MostWords != nil {
		cmd.Printf("Most words: %s (%s, %d words)\n",
			analysis.MostWords.ID, filepath.Base(analysis.MostWords.InputPath), analysis.MostWords.WordCount)
	}
	return nil
}

func printRunLine(cmd *cobra.Command, r domain.RunRecord) {
	repaired := ""
	if r.Repaired {
		repaired = "  repaired"
	}
	cmd.Printf("%s  %s  %s  %s (%.0f%%)  %d changes%s\n",
		r.StartedAt.Format("2006-01-02 15:04"),
		r.ID,
		filepath.Base(r.InputPath),
		r.DetectedType,
		r.Confidence*100,
		r.ChangeCount,
		repaired)
}
