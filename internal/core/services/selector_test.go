package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papersmith/papersmith/internal/core/domain"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 test"), 0644))
	return path
}

func TestSelect_FiltersCanonicalNames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Scanned Document 1.pdf")
	writeFile(t, dir, "tax time.pdf")
	writeFile(t, dir, "20240916-bunnings-invoice.pdf")

	svc := NewSelectorService()
	candidates, err := svc.Select(filepath.Join(dir, "*.pdf"))
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	names := []string{candidates[0].Base, candidates[1].Base}
	assert.Contains(t, names, "Scanned Document 1.pdf")
	assert.Contains(t, names, "tax time.pdf")
	assert.NotContains(t, names, "20240916-bunnings-invoice.pdf")
}

func TestSelect_ZeroMatches(t *testing.T) {
	dir := t.TempDir()

	svc := NewSelectorService()
	candidates, err := svc.Select(filepath.Join(dir, "*.pdf"))
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestSelect_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.pdf"), 0755))
	writeFile(t, dir, "statement.pdf")

	svc := NewSelectorService()
	candidates, err := svc.Select(filepath.Join(dir, "*.pdf"))
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "statement.pdf", candidates[0].Base)
}

func TestSelect_EmptyPattern(t *testing.T) {
	svc := NewSelectorService()
	_, err := svc.Select("")
	assert.ErrorIs(t, err, domain.ErrMissingGlobPattern)
}

func TestSelect_MalformedPattern(t *testing.T) {
	svc := NewSelectorService()
	_, err := svc.Select("[")
	assert.Error(t, err)
}
