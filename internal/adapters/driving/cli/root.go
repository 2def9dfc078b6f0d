// Package cli implements the papersmith command-line interface.
//
// This is the driving adapter in hexagonal architecture terms: it
// parses flags, wires adapters into services, and presents results.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/papersmith/papersmith/internal/adapters/driven/config/file"
	"github.com/papersmith/papersmith/internal/adapters/driven/document"
	"github.com/papersmith/papersmith/internal/adapters/driven/llm/openai"
	"github.com/papersmith/papersmith/internal/core/domain"
	"github.com/papersmith/papersmith/internal/core/ports/driven"
	"github.com/papersmith/papersmith/internal/core/ports/driving"
	"github.com/papersmith/papersmith/internal/core/services"
	"github.com/papersmith/papersmith/internal/filelock"
	"github.com/papersmith/papersmith/internal/logger"
)

// EnvGlobPattern is the environment fallback for the glob pattern,
// consulted after the flag and the config file.
const EnvGlobPattern = "PAPERSMITH_GLOB_PATTERN"

// EnvAPIKey is the environment fallback for the API key.
const EnvAPIKey = "OPENAI_API_KEY"

// version is injected by Execute.
var version = "dev"

// Services wired by ensureServices.
var (
	configStore   *configfile.ConfigStore
	promptStore   *configfile.PromptStore
	extractor     driven.Extractor
	renameService driving.RenameService
	watchService  driving.WatchService
)

// Root command flags.
var (
	flagGlobPattern string
	flagModel       string
	flagDryRun      bool
	flagVerbose     bool
	flagVersion     bool
)

var rootCmd = &cobra.Command{
	Use:   "papersmith",
	Short: "Rename PDF files based on their content",
	Long: `papersmith renames PDF files based on content extracted by an AI model.

Files matching the glob pattern are sent to the inference endpoint, which
reports the document's date, category, and title. Each file is then renamed
to YYYYMMDD-title-category.pdf. Files already in that form are skipped, so
repeated runs are idempotent.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
	RunE: runRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().StringVarP(&flagGlobPattern, "glob-pattern", "g", "", "Glob pattern selecting the PDFs to process")
	rootCmd.Flags().StringVarP(&flagModel, "model", "m", "", `Model identifier (default "`+openai.DefaultModel+`")`)
	rootCmd.Flags().BoolVarP(&flagDryRun, "dry-run", "d", false, "Preview renames without touching the filesystem")
	rootCmd.Flags().BoolVarP(&flagVersion, "version", "V", false, "Print the version number")
}

// Execute runs the CLI with the given build version.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}

func runRoot(cmd *cobra.Command, _ []string) error {
	if flagVersion {
		cmd.Printf("papersmith version %s\n", version)
		return nil
	}

	if err := ensureServices(); err != nil {
		return err
	}

	pattern, err := resolvePattern()
	if err != nil {
		return err
	}

	unlock, err := acquireRunLock()
	if err != nil {
		return err
	}
	defer unlock()

	report, err := renameService.Run(cmd.Context(), driving.RunOptions{
		Pattern: pattern,
		DryRun:  flagDryRun,
	})
	if err != nil {
		return err
	}

	printReport(cmd, report)

	// Per-file failures are reported above but deliberately do not
	// change the exit status: the batch is best-effort.
	return nil
}

// ensureConfig loads the config and prompt stores.
func ensureConfig() error {
	if configStore != nil {
		return nil
	}

	store, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	configStore = store

	prompts, err := configfile.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("failed to load prompts: %w", err)
	}
	promptStore = prompts
	return nil
}

// ensureServices wires the full pipeline: config, reader, extractor,
// rename and watch services. A missing API key is fatal here, before
// any file is touched.
func ensureServices() error {
	if renameService != nil {
		return nil
	}
	if err := ensureConfig(); err != nil {
		return err
	}

	apiKey := configStore.GetString(driven.KeyAPIKey)
	if apiKey == "" {
		apiKey = os.Getenv(EnvAPIKey)
	}
	if apiKey == "" {
		return fmt.Errorf("%w: set %s in %s or export %s",
			domain.ErrMissingAPIKey, driven.KeyAPIKey, configStore.Path(), EnvAPIKey)
	}

	model := flagModel
	if model == "" {
		model = configStore.GetString(driven.KeyModel)
	}

	svc, err := openai.NewExtractionService(openai.Config{
		APIKey:            apiKey,
		BaseURL:           configStore.GetString(driven.KeyBaseURL),
		Model:             model,
		RequestsPerSecond: configStore.GetFloat(driven.KeyRequestsPerSecond),
	})
	if err != nil {
		return err
	}
	svc.SetPromptStore(promptStore)
	extractor = svc

	rename := services.NewRenameService(
		services.NewSelectorService(),
		document.NewReader(),
		extractor,
		resolveFallbacks(),
	)
	renameService = rename
	watchService = services.NewWatchService(rename, 0)
	return nil
}

// resolveFallbacks reads the sentinel date and label from configuration,
// defaulting to domain.DefaultFallbacks.
func resolveFallbacks() domain.Fallbacks {
	fallbacks := domain.DefaultFallbacks()

	if raw := configStore.GetString(driven.KeyFallbackDate); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			fallbacks.Date = t
		} else {
			logger.Warn("ignoring bad %s %q: %v", driven.KeyFallbackDate, raw, err)
		}
	}
	if label := configStore.GetString(driven.KeyFallbackLabel); label != "" {
		fallbacks.Label = label
	}
	return fallbacks
}

// resolvePattern resolves the glob pattern: flag, then config, then
// environment. All empty is a fatal configuration error.
func resolvePattern() (string, error) {
	if flagGlobPattern != "" {
		return flagGlobPattern, nil
	}
	if pattern := configStore.GetString(driven.KeyGlobPattern); pattern != "" {
		return pattern, nil
	}
	logger.Info("no --glob-pattern given, trying %s", EnvGlobPattern)
	if pattern := os.Getenv(EnvGlobPattern); pattern != "" {
		return pattern, nil
	}
	return "", fmt.Errorf("%w: pass --glob-pattern, set %s, or export %s",
		domain.ErrMissingGlobPattern, driven.KeyGlobPattern, EnvGlobPattern)
}

// acquireRunLock takes the process-level run lock next to the config
// file. Two concurrent runs over the same files would race each other's
// renames.
func acquireRunLock() (func(), error) {
	lock := filelock.New(filepath.Join(filepath.Dir(configStore.Path()), "papersmith.lock"))
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, domain.ErrRunInProgress
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("%v", err)
		}
	}, nil
}
