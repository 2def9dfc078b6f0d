// Package domain defines the core business entities for papersmith.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Candidate: A file selected for processing
//   - EncodedDocument: A document prepared for transport to the model
//   - Extraction: The structured result parsed from the model's reply
//   - Fallbacks: Sentinel values used when the model omits fields
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
