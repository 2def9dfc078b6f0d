package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/papersmith/papersmith/internal/core/domain"
	"github.com/papersmith/papersmith/internal/core/ports/driven"
	"github.com/papersmith/papersmith/internal/core/ports/driving"
	"github.com/papersmith/papersmith/internal/logger"
)

// Ensure RenameService implements the interface.
var _ driving.RenameService = (*RenameService)(nil)

// RenameService runs the rename pipeline: select, encode, extract,
// derive, rename. Files are processed one at a time; a failure on one
// file never prevents the others from being processed.
type RenameService struct {
	selector  *SelectorService
	reader    driven.DocumentReader
	extractor driven.Extractor
	fallbacks domain.Fallbacks
}

// NewRenameService creates a new rename service.
func NewRenameService(
	selector *SelectorService,
	reader driven.DocumentReader,
	extractor driven.Extractor,
	fallbacks domain.Fallbacks,
) *RenameService {
	return &RenameService{
		selector:  selector,
		reader:    reader,
		extractor: extractor,
		fallbacks: fallbacks,
	}
}

// Run expands the pattern and processes each candidate sequentially.
// Only fatal preconditions return an error; per-file failures are
// recorded in the report and the batch continues.
func (s *RenameService) Run(ctx context.Context, opts driving.RunOptions) (*driving.RunReport, error) {
	candidates, err := s.selector.Select(opts.Pattern)
	if err != nil {
		return nil, err
	}

	report := &driving.RunReport{
		ID:      uuid.NewString(),
		Pattern: opts.Pattern,
		DryRun:  opts.DryRun,
	}
	logger.Info("run %s: %d files to process", report.ID, len(candidates))

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result := s.process(ctx, c, opts.DryRun)
		if result.Outcome == driving.OutcomeFailed {
			logger.Error("%s: %v", c.Base, result.Err)
		}
		report.Results = append(report.Results, result)
	}

	return report, nil
}

// RunFile processes a single file through the pipeline.
// Used by watch mode, where files arrive one at a time.
func (s *RenameService) RunFile(ctx context.Context, path string, dryRun bool) driving.FileResult {
	return s.process(ctx, domain.Candidate{Path: path, Base: filepath.Base(path)}, dryRun)
}

// process runs one candidate through encode, extract, and rename.
func (s *RenameService) process(ctx context.Context, c domain.Candidate, dryRun bool) driving.FileResult {
	logger.Info("processing %s", c.Base)

	doc, err := s.reader.Read(c.Path)
	if err != nil {
		return driving.FileResult{Path: c.Path, Outcome: driving.OutcomeFailed, Err: err}
	}

	extraction, err := s.extractor.Extract(ctx, doc)
	if err != nil {
		return driving.FileResult{Path: c.Path, Outcome: driving.OutcomeFailed, Err: err}
	}

	target := domain.TargetName(extraction, s.fallbacks)
	if target == c.Base {
		logger.Debug("%s already has its target name", c.Base)
		return driving.FileResult{Path: c.Path, Target: target, Outcome: driving.OutcomeSkipped}
	}

	if dryRun {
		logger.Info("not renaming %s to %s (dry-run)", c.Base, target)
		return driving.FileResult{Path: c.Path, Target: target, Outcome: driving.OutcomeWouldRename}
	}

	if err := s.rename(c.Path, target); err != nil {
		return driving.FileResult{Path: c.Path, Target: target, Outcome: driving.OutcomeFailed, Err: err}
	}

	logger.Info("renamed %s to %s", c.Base, target)
	return driving.FileResult{Path: c.Path, Target: target, Outcome: driving.OutcomeRenamed}
}

// rename moves the file to its target name within the same directory.
// An existing file at the target path is never overwritten.
func (s *RenameService) rename(path, target string) error {
	newPath := filepath.Join(filepath.Dir(path), target)

	if _, err := os.Lstat(newPath); err == nil {
		return fmt.Errorf("%w: %s", domain.ErrTargetExists, target)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", newPath, err)
	}

	if err := os.Rename(path, newPath); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
