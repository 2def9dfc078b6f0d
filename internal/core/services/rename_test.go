package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papersmith/papersmith/internal/adapters/driven/document"
	"github.com/papersmith/papersmith/internal/core/domain"
	"github.com/papersmith/papersmith/internal/core/ports/driving"
)

// fakeExtractor implements driven.Extractor for service tests.
type fakeExtractor struct {
	extract func(doc domain.EncodedDocument) (domain.Extraction, error)
}

func (f *fakeExtractor) Extract(_ context.Context, doc domain.EncodedDocument) (domain.Extraction, error) {
	return f.extract(doc)
}

func (f *fakeExtractor) ModelName() string { return "fake-model" }

func (f *fakeExtractor) Ping(_ context.Context) error { return nil }

func (f *fakeExtractor) Close() error { return nil }

func invoiceExtractor() *fakeExtractor {
	return &fakeExtractor{
		extract: func(_ domain.EncodedDocument) (domain.Extraction, error) {
			return domain.Extraction{Date: "2024-09-16", Category: "invoice", Title: "bunnings"}, nil
		},
	}
}

func newRenameService(extractor *fakeExtractor) *RenameService {
	return NewRenameService(
		NewSelectorService(),
		document.NewReader(),
		extractor,
		domain.DefaultFallbacks(),
	)
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRun_RenamesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Scanned Document 1.pdf")

	svc := newRenameService(invoiceExtractor())
	report, err := svc.Run(context.Background(), driving.RunOptions{
		Pattern: filepath.Join(dir, "*.pdf"),
	})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, driving.OutcomeRenamed, report.Results[0].Outcome)
	assert.Equal(t, "20240916-bunnings-invoice.pdf", report.Results[0].Target)

	assert.ElementsMatch(t, []string{"20240916-bunnings-invoice.pdf"}, listDir(t, dir))
}

func TestRun_DryRunNeverMutates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Scanned Document 1.pdf")
	writeFile(t, dir, "tax time.pdf")
	before := listDir(t, dir)

	svc := newRenameService(invoiceExtractor())
	report, err := svc.Run(context.Background(), driving.RunOptions{
		Pattern: filepath.Join(dir, "*.pdf"),
		DryRun:  true,
	})
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	for _, res := range report.Results {
		assert.Equal(t, driving.OutcomeWouldRename, res.Outcome)
	}

	assert.ElementsMatch(t, before, listDir(t, dir), "dry-run must leave the directory untouched")
}

func TestRun_NeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	original := writeFile(t, dir, "Scanned Document 1.pdf")
	writeFile(t, dir, "20240916-bunnings-invoice.pdf")

	svc := newRenameService(invoiceExtractor())
	report, err := svc.Run(context.Background(), driving.RunOptions{
		Pattern: filepath.Join(dir, "*.pdf"),
	})
	require.NoError(t, err)
	require.Len(t, report.Results, 1) // canonical file was never a candidate
	assert.Equal(t, driving.OutcomeFailed, report.Results[0].Outcome)
	assert.ErrorIs(t, report.Results[0].Err, domain.ErrTargetExists)

	// Original left in place, target unmodified.
	_, err = os.Stat(original)
	assert.NoError(t, err)
}

func TestRun_OneFailureDoesNotAbortTheBatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a scan.pdf")
	writeFile(t, dir, "b scan.pdf")
	writeFile(t, dir, "c scan.pdf")

	titles := map[string]string{"a scan.pdf": "alpha", "c scan.pdf": "charlie"}
	extractor := &fakeExtractor{
		extract: func(doc domain.EncodedDocument) (domain.Extraction, error) {
			if doc.Name == "b scan.pdf" {
				return domain.Extraction{}, domain.ErrInferenceFailed
			}
			return domain.Extraction{Date: "2024-09-16", Category: "invoice", Title: titles[doc.Name]}, nil
		},
	}

	svc := newRenameService(extractor)
	report, err := svc.Run(context.Background(), driving.RunOptions{
		Pattern: filepath.Join(dir, "*.pdf"),
	})
	require.NoError(t, err, "per-file failures must not surface as a run error")
	require.Len(t, report.Results, 3)
	assert.Equal(t, 2, report.Count(driving.OutcomeRenamed))
	assert.Equal(t, 1, report.Count(driving.OutcomeFailed))

	assert.ElementsMatch(t, []string{
		"20240916-alpha-invoice.pdf",
		"b scan.pdf",
		"20240916-charlie-invoice.pdf",
	}, listDir(t, dir))
}

func TestRun_MissingPatternIsFatal(t *testing.T) {
	svc := newRenameService(invoiceExtractor())
	_, err := svc.Run(context.Background(), driving.RunOptions{})
	assert.ErrorIs(t, err, domain.ErrMissingGlobPattern)
}

func TestRun_SentinelFallbacks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mystery.pdf")

	extractor := &fakeExtractor{
		extract: func(_ domain.EncodedDocument) (domain.Extraction, error) {
			return domain.Extraction{Title: "document"}, nil
		},
	}

	svc := newRenameService(extractor)
	report, err := svc.Run(context.Background(), driving.RunOptions{
		Pattern: filepath.Join(dir, "*.pdf"),
	})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "20211231-document-unknown.pdf", report.Results[0].Target)
}

func TestRunFile_UnreadableFile(t *testing.T) {
	svc := newRenameService(invoiceExtractor())
	result := svc.RunFile(context.Background(), filepath.Join(t.TempDir(), "gone.pdf"), false)
	assert.Equal(t, driving.OutcomeFailed, result.Outcome)
	assert.ErrorIs(t, result.Err, domain.ErrUnreadableFile)
}

func TestRunFile_SkipsWhenAlreadyNamed(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "20240916-bunnings-invoice.pdf")

	svc := newRenameService(invoiceExtractor())
	result := svc.RunFile(context.Background(), path, false)
	assert.Equal(t, driving.OutcomeSkipped, result.Outcome)
	assert.ElementsMatch(t, []string{"20240916-bunnings-invoice.pdf"}, listDir(t, dir))
}

func TestRun_ExtractorErrorIsReported(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "scan.pdf")

	extractor := &fakeExtractor{
		extract: func(_ domain.EncodedDocument) (domain.Extraction, error) {
			return domain.Extraction{}, errors.Join(domain.ErrInferenceFailed, errors.New("status 500"))
		},
	}

	svc := newRenameService(extractor)
	report, err := svc.Run(context.Background(), driving.RunOptions{
		Pattern: filepath.Join(dir, "*.pdf"),
	})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.ErrorIs(t, report.Results[0].Err, domain.ErrInferenceFailed)
	assert.ElementsMatch(t, []string{"scan.pdf"}, listDir(t, dir))
}
