package domain

// Candidate is a file selected for processing.
// Candidates are ephemeral: created by the selector, consumed by the
// pipeline, and discarded after the rename attempt.
type Candidate struct {
	// Path is the full filesystem path.
	Path string

	// Base is the current basename, sent to the model as context.
	Base string
}

// EncodedDocument is a document prepared for transport to the model.
// It exists only for the duration of one inference call.
type EncodedDocument struct {
	// Name is the document's current basename.
	Name string

	// Base64 is the standard base64 encoding of the raw file bytes.
	Base64 string

	// Size is the raw byte count before encoding.
	Size int

	// Pages is the PDF page count, or 0 when it could not be determined.
	// Page count is advisory context for the model, never a gate.
	Pages int
}
