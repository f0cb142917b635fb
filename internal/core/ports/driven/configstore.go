package driven

// ConfigStore persists the user's settings as a flat key space.
//
// Keys are dotted paths that map onto TOML tables, for example
// "api.url" or "upload.dismiss_delay_ms". The typed getters return the
// zero value for a missing key or one whose value cannot be coerced.
type ConfigStore interface {
	// Get returns the raw value stored under key and whether it exists.
	Get(key string) (any, bool)

	GetString(key string) string

	// GetInt accepts integer, float and numeric string values.
	GetInt(key string) int

	// GetFloat accepts float, integer and numeric string values.
	GetFloat(key string) float64

	GetBool(key string) bool

	// Set writes key and persists the whole store before returning.
	Set(key string, value any) error

	// Load discards in-memory values and rereads the backing storage.
	// A missing file is not an error.
	Load() error

	// Path names the backing storage, for display in diagnostics.
	Path() string
}
