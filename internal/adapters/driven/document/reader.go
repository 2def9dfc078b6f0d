// Package document reads PDF files from disk and encodes them for
// transport to the inference endpoint.
package document

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/papersmith/papersmith/internal/core/domain"
	"github.com/papersmith/papersmith/internal/core/ports/driven"
	"github.com/papersmith/papersmith/internal/logger"
)

// Ensure Reader implements the interface.
var _ driven.DocumentReader = (*Reader)(nil)

// Reader reads a file's bytes and base64-encodes them. No local size
// limit is enforced; the remote endpoint's limits are the effective
// constraint.
type Reader struct{}

// NewReader creates a new document reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read returns the encoded form of the file at path.
// The PDF page count is probed best-effort: a malformed or unusual PDF
// still gets encoded and sent, just without page context.
func (r *Reader) Read(path string) (domain.EncodedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.EncodedDocument{}, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
	}

	pages, err := api.PageCountFile(path)
	if err != nil {
		logger.Debug("page count unavailable for %s: %v", path, err)
		pages = 0
	}

	return domain.EncodedDocument{
		Name:   filepath.Base(path),
		Base64: base64.StdEncoding.EncodeToString(data),
		Size:   len(data),
		Pages:  pages,
	}, nil
}
