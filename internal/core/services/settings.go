package services

import (
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyAPIURL            = "api.url"
	keyDismissDelayMS    = "upload.dismiss_delay_ms"
	keyWatchRate         = "watch.rate"
	keyTranscriptEnabled = "transcript.enabled"
	keyTranscriptPath    = "transcript.path"
)

// EnvAPIURL overrides the configured service URL.
const EnvAPIURL = "DOCUMIND_API_URL"

// SettingsService manages client settings.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get retrieves current settings. The environment wins over the config file
// for the API URL.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		APIURL:       s.getString(keyAPIURL, defaults.APIURL),
		DismissDelay: s.getDelay(defaults.DismissDelay),
		WatchRate:    s.getFloat(keyWatchRate, defaults.WatchRate),
		Transcript: domain.TranscriptSettings{
			Enabled: s.configStore.GetBool(keyTranscriptEnabled),
			Path:    s.configStore.GetString(keyTranscriptPath),
		},
	}

	if env := s.getenv(EnvAPIURL); env != "" {
		settings.APIURL = env
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// SetAPIURL updates the service URL.
func (s *SettingsService) SetAPIURL(url string) error {
	candidate := domain.DefaultSettings()
	candidate.APIURL = url
	if err := candidate.Validate(); err != nil {
		return err
	}
	if err := s.configStore.Set(keyAPIURL, url); err != nil {
		return fmt.Errorf("save api url: %w", err)
	}
	return nil
}

// SetDismissDelay updates how long upload confirmations stay visible.
func (s *SettingsService) SetDismissDelay(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("dismiss delay %s: %w", d, domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(keyDismissDelayMS, d.Milliseconds()); err != nil {
		return fmt.Errorf("save dismiss delay: %w", err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return *domain.DefaultSettings()
}

// getString returns a string setting or its default when unset.
func (s *SettingsService) getString(key, def string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return def
}

// getFloat returns a float setting or its default when unset.
func (s *SettingsService) getFloat(key string, def float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetFloat(key)
}

// getDelay returns the dismiss delay or its default when unset.
func (s *SettingsService) getDelay(def time.Duration) time.Duration {
	if _, ok := s.configStore.Get(keyDismissDelayMS); !ok {
		return def
	}
	return time.Duration(s.configStore.GetInt(keyDismissDelayMS)) * time.Millisecond
}
