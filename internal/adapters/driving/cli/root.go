// Package cli implements the scrivia command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scrivia-labs/scrivia-cli/internal/adapters/driven/ai"
	fileconfig "github.com/scrivia-labs/scrivia-cli/internal/adapters/driven/config/file"
	"github.com/scrivia-labs/scrivia-cli/internal/adapters/driven/storage/memory"
	"github.com/scrivia-labs/scrivia-cli/internal/adapters/driven/storage/sqlite"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driven"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driving"
	"github.com/scrivia-labs/scrivia-cli/internal/core/services"
	"github.com/scrivia-labs/scrivia-cli/internal/logger"
	"github.com/scrivia-labs/scrivia-cli/internal/notes"
	"github.com/scrivia-labs/scrivia-cli/internal/transforms"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services backing the commands. Execute wires the defaults; tests
// swap in mocks.
var (
	settingsService   driving.SettingsService
	pipelineService   driving.PipelineService
	historyService    driving.HistoryService
	classifierService driving.ClassifierService
	normalizerService driving.NormalizerService
	llmService        driven.LLMService
	runStore          driven.RunStore
)

var rootCmd = &cobra.Command{
	Use:   "scrivia",
	Short: "Meeting transcript processing toolkit",
	Long: `Scrivia cleans up ASR meeting transcripts, classifies the meeting
type, and produces subtitles, notes and a change log from a single
transcript JSON file.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose progress output")
}

// Execute wires the default services and runs the root command.
func Execute() error {
	if err := initServices(); err != nil {
		return err
	}
	defer closeServices()

	return rootCmd.Execute()
}

// initServices builds the production service graph. The LLM and the
// run store are optional: commands degrade to heuristic-only
// processing and in-memory history when they are unavailable.
func initServices() error {
	configStore, err := fileconfig.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("initialise config store: %w", err)
	}

	settingsService = services.NewSettingsService(configStore, ai.NewConfigValidator())

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	llmService, err = ai.CreateLLMService(&settings.LLM)
	if err != nil {
		logger.Warn("LLM disabled: %v", err)
		llmService = nil
	}
	if llmService != nil {
		if promptStore, promptErr := fileconfig.NewPromptStore(""); promptErr == nil {
			if aware, ok := llmService.(driven.PromptStoreAware); ok {
				aware.SetPromptStore(promptStore)
			}
		}
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("run history unavailable, falling back to in-memory store: %v", err)
		runStore = memory.NewRunStore()
	} else {
		runStore = store
	}

	normalizerService = services.NewNormalizerService(func(opts driving.NormalizeOptions) driven.TransformPipeline {
		return transforms.NewDefaultPipeline(opts)
	})
	classifierService = services.NewClassifierService(nil)
	repairService := services.NewRepairService(llmService)

	pipelineService = services.NewPipelineService(
		normalizerService,
		repairService,
		classifierService,
		llmService,
		runStore,
		notes.New(),
	)
	historyService = services.NewHistoryService(runStore)

	return nil
}

func closeServices() {
	if llmService != nil {
		llmService.Close()
	}
	if runStore != nil {
		runStore.Close()
	}
}
