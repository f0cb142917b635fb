package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/core/ports/driving"
	"github.com/custodia-labs/documind/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driving.FolderWatcher = (*Watcher)(nil)

// Watcher uploads PDFs appearing in a folder through the upload controller,
// one at a time and no faster than the configured rate.
type Watcher struct {
	files    driven.FileWatcher
	uploader driving.UploadController
	limiter  *rate.Limiter
	settle   time.Duration
	stat     func(string) (os.FileInfo, error)
}

// DefaultSettleInterval is how long a file must stay unchanged before it
// is uploaded.
const DefaultSettleInterval = 500 * time.Millisecond

// NewWatcher creates a folder watcher. perSecond limits upload starts.
func NewWatcher(files driven.FileWatcher, uploader driving.UploadController, perSecond float64) *Watcher {
	if perSecond <= 0 {
		perSecond = domain.DefaultWatchRate
	}
	return &Watcher{
		files:    files,
		uploader: uploader,
		limiter:  rate.NewLimiter(rate.Limit(perSecond), 1),
		settle:   DefaultSettleInterval,
		stat:     os.Stat,
	}
}

// WithSettle sets how long a file must stay unchanged before upload.
func (w *Watcher) WithSettle(d time.Duration) *Watcher {
	if d >= 0 {
		w.settle = d
	}
	return w
}

// fileVersion identifies one version of a file so rewrites are uploaded again
// but bursts of write events for the same content are not.
type fileVersion struct {
	size    int64
	modTime time.Time
}

func (v fileVersion) equal(o fileVersion) bool {
	return v.size == o.size && v.modTime.Equal(o.modTime)
}

// Run watches dir until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, dir string, onResult func(name string, err error)) error {
	events, err := w.files.Watch(ctx, dir)
	if err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	logger.Info("watching %s for PDFs", dir)

	seen := make(map[string]fileVersion)
	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-events:
			if !ok {
				return nil
			}
			if !domain.IsPDF(filepath.Base(path)) {
				continue
			}
			version, ok := w.stableVersion(ctx, path)
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				continue
			}
			// Still empty; the write that fills it sends another event.
			if version.size == 0 {
				continue
			}
			if prev, ok := seen[path]; ok && prev.equal(version) {
				continue
			}
			seen[path] = version
			file := domain.File{Name: filepath.Base(path), Path: path, Size: version.size}

			if err := w.limiter.Wait(ctx); err != nil {
				return nil
			}
			err = w.upload(ctx, file)
			if onResult != nil {
				onResult(file.Name, err)
			}
		}
	}
}

// stableVersion polls path until its size and modification time hold for
// one settle interval. It reports false if the file vanished, is a
// directory, or ctx ended first.
func (w *Watcher) stableVersion(ctx context.Context, path string) (fileVersion, bool) {
	prev, ok := w.version(path)
	if !ok {
		return fileVersion{}, false
	}

	timer := time.NewTimer(w.settle)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return fileVersion{}, false
		case <-timer.C:
		}
		cur, ok := w.version(path)
		if !ok {
			return fileVersion{}, false
		}
		if cur.equal(prev) {
			return cur, true
		}
		logger.Debug("%s still changing (%d bytes)", filepath.Base(path), cur.size)
		prev = cur
		timer.Reset(w.settle)
	}
}

func (w *Watcher) version(path string) (fileVersion, bool) {
	info, err := w.stat(path)
	if err != nil || info.IsDir() {
		return fileVersion{}, false
	}
	return fileVersion{size: info.Size(), modTime: info.ModTime()}, true
}

// upload runs one file through a full upload session.
func (w *Watcher) upload(ctx context.Context, file domain.File) error {
	if err := w.uploader.Open(); err != nil && !errors.Is(err, domain.ErrInvalidTransition) {
		return err
	}
	transfer, err := w.uploader.Choose(file)
	if err != nil {
		_ = w.uploader.Close()
		return err
	}
	err = transfer(ctx)
	_ = w.uploader.Close()
	return err
}
