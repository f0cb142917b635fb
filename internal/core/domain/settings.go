package domain

import (
	"fmt"
	"net/url"
	"time"
)

// Default settings values.
const (
	// DefaultAPIURL is where the original service listens.
	DefaultAPIURL = "http://localhost:8000/api"

	// DefaultDismissDelay is how long the upload confirmation stays visible.
	DefaultDismissDelay = 1500 * time.Millisecond

	// DefaultWatchRate is the number of watch-mode uploads per second.
	DefaultWatchRate = 0.5
)

// Settings holds client configuration.
type Settings struct {
	// APIURL is the base URL of the service API, including the /api prefix.
	APIURL string

	// DismissDelay is how long a successful upload stays on screen.
	DismissDelay time.Duration

	// WatchRate limits uploads started by folder watching, per second.
	WatchRate float64

	// Transcript controls conversation persistence.
	Transcript TranscriptSettings
}

// TranscriptSettings controls where conversation messages are recorded.
type TranscriptSettings struct {
	// Enabled turns on the SQLite transcript.
	Enabled bool

	// Path is the directory holding transcript.db. Empty means ~/.documind.
	Path string
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		APIURL:       DefaultAPIURL,
		DismissDelay: DefaultDismissDelay,
		WatchRate:    DefaultWatchRate,
	}
}

// Validate checks the settings are usable.
func (s *Settings) Validate() error {
	u, err := url.Parse(s.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api url %q: %w", s.APIURL, ErrInvalidInput)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api url scheme %q: %w", u.Scheme, ErrInvalidInput)
	}
	if s.DismissDelay < 0 {
		return fmt.Errorf("dismiss delay %s: %w", s.DismissDelay, ErrInvalidInput)
	}
	if s.WatchRate <= 0 {
		return fmt.Errorf("watch rate %v: %w", s.WatchRate, ErrInvalidInput)
	}
	return nil
}
