package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrMissingAPIKey indicates no API key was found in configuration
	// or environment. Fatal before any file is touched.
	ErrMissingAPIKey = errors.New("API key not configured")

	// ErrMissingGlobPattern indicates neither the flag nor configuration
	// provided a glob pattern. Fatal before any file is touched.
	ErrMissingGlobPattern = errors.New("glob pattern not configured")

	// ErrUnreadableFile indicates a selected file could not be read.
	// Per-file: the batch continues.
	ErrUnreadableFile = errors.New("file unreadable")

	// ErrInferenceFailed indicates the inference call did not yield a
	// usable extraction (network failure, non-2xx status, or a response
	// body that could not be parsed). Per-file: the batch continues.
	ErrInferenceFailed = errors.New("inference failed")

	// ErrTargetExists indicates the derived filename is already taken.
	// The original file is left untouched; there is no auto-suffixing.
	ErrTargetExists = errors.New("target filename already exists")

	// ErrRunInProgress indicates another papersmith process holds the
	// run lock.
	ErrRunInProgress = errors.New("another run is in progress")
)
