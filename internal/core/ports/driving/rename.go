package driving

import "context"

// Outcome classifies the result of one file's trip through the pipeline.
type Outcome string

const (
	// OutcomeRenamed means the file was renamed on disk.
	OutcomeRenamed Outcome = "renamed"

	// OutcomeWouldRename means dry-run mode reported the rename
	// without touching the filesystem.
	OutcomeWouldRename Outcome = "would-rename"

	// OutcomeSkipped means the file required no action.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeFailed means the file was left in place after an error.
	OutcomeFailed Outcome = "failed"
)

// FileResult records what happened to a single file.
type FileResult struct {
	// Path is the file's original path.
	Path string

	// Target is the derived canonical filename, when one was computed.
	Target string

	// Outcome classifies the result.
	Outcome Outcome

	// Err holds the per-file error for OutcomeFailed results.
	Err error
}

// RunReport summarises one batch invocation.
type RunReport struct {
	// ID uniquely identifies the run, for log correlation.
	ID string

	// Pattern is the glob pattern that was expanded.
	Pattern string

	// DryRun records whether the run was a preview.
	DryRun bool

	// Results holds one entry per processed file, in processing order.
	Results []FileResult
}

// Count returns the number of results with the given outcome.
func (r *RunReport) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// RunOptions configures one batch invocation.
type RunOptions struct {
	// Pattern is the glob pattern to expand. Required.
	Pattern string

	// DryRun previews renames without mutating the filesystem.
	DryRun bool
}

// RenameService runs the rename pipeline over a batch of files.
type RenameService interface {
	// Run expands the pattern and processes each file sequentially.
	// Per-file failures are recorded in the report; only fatal
	// preconditions (e.g. a missing pattern) return an error.
	Run(ctx context.Context, opts RunOptions) (*RunReport, error)

	// RunFile processes a single file through the pipeline.
	RunFile(ctx context.Context, path string, dryRun bool) FileResult
}

// WatchService processes newly created PDFs in a directory as they appear.
type WatchService interface {
	// Watch blocks until the context is cancelled, invoking notify for
	// every file processed.
	Watch(ctx context.Context, dir string, dryRun bool, notify func(FileResult)) error
}
