package driving

import (
	"time"

	"github.com/custodia-labs/documind/internal/core/domain"
)

// SettingsService manages client settings.
type SettingsService interface {
	// Get returns current settings, falling back to defaults.
	Get() (*domain.Settings, error)

	// SetAPIURL changes the service URL.
	SetAPIURL(url string) error

	// SetDismissDelay changes the upload confirmation delay.
	SetDismissDelay(d time.Duration) error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
