package cli

import (
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/papersmith/papersmith/internal/core/ports/driving"
)

// Result labels are coloured so failures stand out in a long batch.
var (
	labelRenamed = color.New(color.FgGreen).SprintFunc()
	labelDryRun  = color.New(color.FgCyan).SprintFunc()
	labelSkipped = color.New(color.FgYellow).SprintFunc()
	labelFailed  = color.New(color.FgRed).SprintFunc()
)

// printResult prints a single file outcome.
func printResult(cmd *cobra.Command, res driving.FileResult) {
	base := filepath.Base(res.Path)
	switch res.Outcome {
	case driving.OutcomeRenamed:
		cmd.Printf("  %s  %s -> %s\n", labelRenamed("renamed"), base, res.Target)
	case driving.OutcomeWouldRename:
		cmd.Printf("  %s  %s -> %s\n", labelDryRun("dry-run"), base, res.Target)
	case driving.OutcomeSkipped:
		cmd.Printf("  %s  %s\n", labelSkipped("skipped"), base)
	case driving.OutcomeFailed:
		cmd.Printf("  %s   %s: %v\n", labelFailed("failed"), base, res.Err)
	}
}

// printReport prints the per-file outcomes and a summary line.
func printReport(cmd *cobra.Command, report *driving.RunReport) {
	if len(report.Results) == 0 {
		cmd.Printf("No files to process for pattern %q.\n", report.Pattern)
		return
	}

	for _, res := range report.Results {
		printResult(cmd, res)
	}

	cmd.Println()
	if report.DryRun {
		cmd.Printf("Dry run: %d would be renamed, %d skipped, %d failed.\n",
			report.Count(driving.OutcomeWouldRename),
			report.Count(driving.OutcomeSkipped),
			report.Count(driving.OutcomeFailed))
		return
	}
	cmd.Printf("Done: %d renamed, %d skipped, %d failed.\n",
		report.Count(driving.OutcomeRenamed),
		report.Count(driving.OutcomeSkipped),
		report.Count(driving.OutcomeFailed))
}
