// Package watcher provides the folder watching adapter.
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.FileWatcher = (*Watcher)(nil)

// ErrClosed is returned by Watch after Close.
var ErrClosed = errors.New("watcher closed")

// eventBuffer bounds queued paths while the consumer is busy uploading.
const eventBuffer = 64

// Watcher reports files created or written in a directory using fsnotify.
// Directories and hidden files are skipped. Filtering by extension is left
// to the consumer.
type Watcher struct {
	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// New creates a folder watcher.
func New() (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{watcher: w}, nil
}

// Watch starts monitoring dir. The returned channel is closed when ctx
// ends or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrClosed
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "watch", Path: dir, Err: errors.New("not a directory")}
	}
	if err := w.watcher.Add(dir); err != nil {
		return nil, err
	}

	paths := make(chan string, eventBuffer)

	go func() {
		defer close(paths)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				path, ok := handleEvent(event)
				if !ok {
					continue
				}
				select {
				case paths <- path:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watching %s: %v", dir, err)
			}
		}
	}()

	return paths, nil
}

// Close stops the watcher. Channels returned by Watch are closed.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.watcher.Close()
}

// handleEvent returns the path of a file that may be ready to upload.
func handleEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return event.Name, true
}
