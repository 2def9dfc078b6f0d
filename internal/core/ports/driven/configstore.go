package driven

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetFloat retrieves a floating-point configuration value.
	// Returns 0 if key doesn't exist or isn't numeric.
	GetFloat(key string) float64

	// GetBool retrieves a boolean configuration value.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}

// Configuration keys understood by papersmith.
const (
	// KeyAPIKey is the inference API key. The OPENAI_API_KEY
	// environment variable is consulted when this is unset.
	KeyAPIKey = "openai.api_key"

	// KeyBaseURL overrides the inference endpoint base URL.
	KeyBaseURL = "openai.base_url"

	// KeyModel is the default model identifier.
	KeyModel = "openai.model"

	// KeyRequestsPerSecond throttles inference calls.
	KeyRequestsPerSecond = "openai.requests_per_second"

	// KeyGlobPattern is the default glob pattern used when the
	// --glob-pattern flag is absent. The PAPERSMITH_GLOB_PATTERN
	// environment variable is consulted when this is unset.
	KeyGlobPattern = "rename.glob_pattern"

	// KeyFallbackDate is the sentinel date (YYYY-MM-DD) used when the
	// model returns no date.
	KeyFallbackDate = "rename.fallback_date"

	// KeyFallbackLabel is the sentinel label used when the model
	// returns no title or category.
	KeyFallbackLabel = "rename.fallback_label"
)
