// Package filelock provides a process-level run lock so two papersmith
// invocations cannot rename files out from under each other.
package filelock

import (
	"fmt"

	"github.com/gofrs/flock"
)

// RunLock wraps a flock advisory lock on a well-known lock file.
type RunLock struct {
	flock *flock.Flock
	path  string
}

// New creates a run lock for the given lock file path.
// The file is created on first acquisition.
func New(path string) *RunLock {
	return &RunLock{
		flock: flock.New(path),
		path:  path,
	}
}

// TryLock attempts to acquire the lock without blocking.
// Returns true if the lock was acquired, false if another process holds it.
func (l *RunLock) TryLock() (bool, error) {
	acquired, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", l.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock.
func (l *RunLock) Unlock() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}
	return nil
}

// Path returns the lock file path.
func (l *RunLock) Path() string {
	return l.path
}
