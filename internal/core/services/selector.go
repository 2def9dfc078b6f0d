package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/papersmith/papersmith/internal/core/domain"
	"github.com/papersmith/papersmith/internal/logger"
)

// SelectorService expands a glob pattern into rename candidates.
// Files already in canonical YYYYMMDD form are filtered out, which is
// what makes repeated runs over the same directory idempotent.
type SelectorService struct{}

// NewSelectorService creates a new selector service.
func NewSelectorService() *SelectorService {
	return &SelectorService{}
}

// Select expands the pattern and returns candidates in glob order.
// Zero matches is not an error: the pipeline simply processes nothing.
func (s *SelectorService) Select(pattern string) ([]domain.Candidate, error) {
	if pattern == "" {
		return nil, domain.ErrMissingGlobPattern
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
	}

	var candidates []domain.Candidate
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			logger.Debug("skipping non-regular match %s", path)
			continue
		}

		base := filepath.Base(path)
		if domain.IsCanonicalName(base) {
			logger.Debug("skipping %s", base)
			continue
		}

		candidates = append(candidates, domain.Candidate{Path: path, Base: base})
	}

	logger.Info("selected %d of %d matches for %q", len(candidates), len(matches), pattern)
	return candidates, nil
}
