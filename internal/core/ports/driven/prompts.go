package driven

// PromptStore provides access to model prompt templates.
// Implementations load from user-editable files with embedded fallbacks.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)
}

// Prompt names used by papersmith.
const (
	// PromptExtraction instructs the model to report the document's
	// date, category, and title as JSON.
	PromptExtraction = "extraction"
)

// PromptStoreAware is an optional interface for adapters that can use
// custom prompts. It allows decoupled configuration by injecting a
// PromptStore after construction.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the adapter uses its embedded default prompts.
	SetPromptStore(store PromptStore)
}
