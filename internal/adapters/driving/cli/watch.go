package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papersmith/papersmith/internal/core/ports/driving"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and rename new PDFs as they appear",
	Long: `Watches a directory and runs the rename pipeline on every new PDF,
e.g. a folder a scanner or browser drops files into. Files already in
canonical form are ignored. Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&flagDryRun, "dry-run", "d", false, "Preview renames without touching the filesystem")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	unlock, err := acquireRunLock()
	if err != nil {
		return err
	}
	defer unlock()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for new PDFs. Ctrl-C to stop.\n", dir)

	err = watchService.Watch(ctx, dir, flagDryRun, func(res driving.FileResult) {
		printResult(cmd, res)
	})
	if errors.Is(err, context.Canceled) {
		cmd.Println("Stopped.")
		return nil
	}
	return err
}
