package driving

import "context"

// FolderWatcher uploads PDFs as they appear in a directory.
type FolderWatcher interface {
	// Run watches dir until ctx is cancelled. onResult is called after
	// every upload attempt with the file name and its outcome.
	Run(ctx context.Context, dir string, onResult func(name string, err error)) error
}
