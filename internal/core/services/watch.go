package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/papersmith/papersmith/internal/core/domain"
	"github.com/papersmith/papersmith/internal/core/ports/driving"
	"github.com/papersmith/papersmith/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// DefaultSettleDelay is how long a newly created file is left alone
// before processing, so scanners and downloaders can finish writing.
const DefaultSettleDelay = 2 * time.Second

// WatchService processes newly created PDFs in a directory as they
// appear, running each through the same per-file pipeline as a batch run.
type WatchService struct {
	rename *RenameService
	settle time.Duration
}

// NewWatchService creates a new watch service.
// A zero settle delay falls back to DefaultSettleDelay.
func NewWatchService(rename *RenameService, settle time.Duration) *WatchService {
	if settle == 0 {
		settle = DefaultSettleDelay
	}
	return &WatchService{rename: rename, settle: settle}
}

// Watch blocks until the context is cancelled, invoking notify for
// every file processed. Canonical and non-PDF names are ignored.
func (s *WatchService) Watch(ctx context.Context, dir string, dryRun bool, notify func(driving.FileResult)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Info("watching %s", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Only Create triggers processing. Files moved into the
			// directory also arrive as Create; a Rename event names the
			// old path of a file that just left (including our own
			// renames), which no longer exists.
			if !event.Op.Has(fsnotify.Create) {
				continue
			}
			base := filepath.Base(event.Name)
			if !strings.EqualFold(filepath.Ext(base), ".pdf") {
				continue
			}
			if domain.IsCanonicalName(base) {
				logger.Debug("skipping %s", base)
				continue
			}

			// Let the writer finish before reading the file.
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.settle):
			}

			result := s.rename.RunFile(ctx, event.Name, dryRun)
			if result.Outcome == driving.OutcomeFailed {
				logger.Error("%s: %v", base, result.Err)
			}
			if notify != nil {
				notify(result)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)
		}
	}
}
