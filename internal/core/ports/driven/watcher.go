package driven

import "context"

// FileWatcher reports files appearing in a directory.
type FileWatcher interface {
	// Watch emits the path of every file created or rewritten in dir.
	// The channel is closed when ctx is cancelled or the watcher stops.
	Watch(ctx context.Context, dir string) (<-chan string, error)

	// Close stops the watcher.
	Close() error
}
