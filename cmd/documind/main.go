// Command documind is a terminal client for the DocuMind document Q&A service.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/documind/internal/adapters/driven/backend/rest"
	"github.com/custodia-labs/documind/internal/adapters/driven/config/file"
	"github.com/custodia-labs/documind/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/documind/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/documind/internal/adapters/driven/watcher"
	"github.com/custodia-labs/documind/internal/adapters/driving/cli"
	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/core/services"
	"github.com/custodia-labs/documind/internal/logger"
)

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()

	dataDir, err := file.DefaultDir()
	if err != nil {
		dataDir = ""
	}

	var configStore driven.ConfigStore
	store, err := file.NewConfigStore(dataDir)
	if err != nil {
		logger.Error("config unavailable, using defaults: %v", err)
		configStore = memory.NewConfigStore()
	} else {
		configStore = store
	}

	settingsService := services.NewSettingsService(configStore)
	cli.SetSettingsService(settingsService)
	cli.SetBuilder(func(opts cli.BuildOptions) (*cli.Services, error) {
		settings, err := settingsService.Get()
		if err != nil {
			return nil, err
		}
		if opts.APIURL != "" {
			settings.APIURL = opts.APIURL
			if err := settings.Validate(); err != nil {
				return nil, err
			}
		}
		return build(settings, dataDir, opts)
	})

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// build wires the controllers over the REST client and local stores.
func build(settings *domain.Settings, dataDir string, opts cli.BuildOptions) (*cli.Services, error) {
	logger.Debug("using service at %s", settings.APIURL)
	backend := rest.NewClient(settings.APIURL, rest.WithProgress(opts.Progress))

	transcript, err := openTranscript(settings.Transcript, dataDir)
	if err != nil {
		return nil, err
	}

	registry := services.NewRegistry(backend)
	uploader := services.NewUploader(backend, registry, settings.DismissDelay)
	conversation := services.NewConversation(backend, transcript)

	svc := &cli.Services{
		Registry:     registry,
		Uploader:     uploader,
		Conversation: conversation,
	}
	if dataDir != "" {
		svc.LogFile = filepath.Join(dataDir, "documind.log")
	}

	fileWatcher, err := watcher.New()
	if err != nil {
		logger.Warn("folder watching unavailable: %v", err)
	} else {
		svc.Watcher = services.NewWatcher(fileWatcher, uploader, settings.WatchRate)
	}

	svc.Close = func() error {
		uploader.Stop()
		var errs []error
		if fileWatcher != nil {
			errs = append(errs, fileWatcher.Close())
		}
		errs = append(errs, transcript.Close())
		return errors.Join(errs...)
	}
	return svc, nil
}

// openTranscript opens the SQLite transcript when enabled and an in-memory
// one otherwise.
func openTranscript(cfg domain.TranscriptSettings, dataDir string) (driven.TranscriptStore, error) {
	if !cfg.Enabled {
		return memory.NewTranscriptStore(), nil
	}
	dir := cfg.Path
	if dir == "" {
		dir = dataDir
	}
	store, err := sqlite.NewStore(dir)
	if err != nil {
		return nil, fmt.Errorf("opening transcript: %w", err)
	}
	return store, nil
}
