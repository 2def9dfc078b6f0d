package driven

import (
	"context"

	"github.com/papersmith/papersmith/internal/core/domain"
)

// Extractor sends an encoded document to the inference endpoint and
// returns the structured extraction. This is the tool's single remote
// dependency, kept behind a narrow interface so it can be swapped or
// faked in tests.
//
// Implementations may include:
//   - OpenAI Responses API (gpt-4o-mini and friends)
//   - Any OpenAI-compatible endpoint via a base URL override
type Extractor interface {
	// Extract performs one inference call for one document.
	// Failures of any kind (network, non-2xx status, malformed body)
	// wrap domain.ErrInferenceFailed. There are no retries.
	Extract(ctx context.Context, doc domain.EncodedDocument) (domain.Extraction, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the endpoint is reachable and the key is accepted
	// without running inference.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// DocumentReader reads a file from disk and encodes it for transport.
type DocumentReader interface {
	// Read returns the encoded form of the file at path.
	// Unreadable files wrap domain.ErrUnreadableFile.
	Read(path string) (domain.EncodedDocument, error)
}
