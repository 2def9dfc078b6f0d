package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage papersmith configuration",
	Long: `View and edit the papersmith configuration file.

Useful keys:
  openai.api_key               Inference API key
  openai.base_url              Endpoint override for compatible APIs
  openai.model                 Default model identifier
  openai.requests_per_second   Inference call throttle
  rename.glob_pattern          Default glob pattern
  rename.fallback_date         Sentinel date for undated documents (YYYY-MM-DD)
  rename.fallback_label        Sentinel title/category label`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runConfigPath,
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the inference endpoint is reachable",
	Long:  `Makes a lightweight authenticated request to validate the API key without running inference.`,
	RunE:  runConfigCheck,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configCheckCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if err := ensureConfig(); err != nil {
		return err
	}

	val, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}

	cmd.Printf("%v\n", val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := ensureConfig(); err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := configStore.Set(key, parseConfigValue(value)); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("%s set.\n", key)
	return nil
}

// parseConfigValue converts a CLI string into a typed config value so
// booleans and numbers round-trip through TOML as themselves.
func parseConfigValue(s string) any {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if err := ensureConfig(); err != nil {
		return err
	}

	cmd.Println(configStore.Path())
	return nil
}

func runConfigCheck(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if extractor == nil {
		return errors.New("extraction service not configured")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	if err := extractor.Ping(ctx); err != nil {
		return fmt.Errorf("endpoint check failed: %w", err)
	}

	cmd.Printf("Endpoint reachable, model %s.\n", extractor.ModelName())
	return nil
}
