package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/core/ports/driving"
	"github.com/custodia-labs/documind/internal/logger"
)

// Ensure Uploader implements the interface.
var _ driving.UploadController = (*Uploader)(nil)

// UploadFailedMessage is shown when the service gives no reason for a failed upload.
const UploadFailedMessage = "Upload failed. Please try again."

// Uploader drives the upload surface. One session is live at a time;
// each Open starts a new session generation.
type Uploader struct {
	backend  driven.Backend
	registry driving.DocumentRegistry
	delay    time.Duration

	mu      sync.Mutex
	phase   domain.Phase
	file    *domain.File
	message string
	gen     uint64
	timer   *time.Timer
	done    chan struct{}
	stopped bool
}

// NewUploader creates an upload controller. A successful upload refreshes
// registry and closes the surface after delay.
func NewUploader(backend driven.Backend, registry driving.DocumentRegistry, delay time.Duration) *Uploader {
	if delay < 0 {
		delay = domain.DefaultDismissDelay
	}
	done := make(chan struct{})
	close(done)
	return &Uploader{
		backend:  backend,
		registry: registry,
		delay:    delay,
		phase:    domain.PhaseIdle,
		done:     done,
	}
}

// Open shows the surface and starts a new session.
func (u *Uploader) Open() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.phase.IsOpen() {
		return fmt.Errorf("open from %s: %w", u.phase, domain.ErrInvalidTransition)
	}

	u.gen++
	u.phase = domain.PhaseAwaitingInput
	u.file = nil
	u.message = ""
	u.done = make(chan struct{})
	return nil
}

// DragEnter moves to DragHover when at least one file hovers over the drop zone.
func (u *Uploader) DragEnter(candidates int) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	switch u.phase {
	case domain.PhaseAwaitingInput:
		if candidates < 1 {
			return domain.ErrNoCandidates
		}
		u.phase = domain.PhaseDragHover
		return nil
	case domain.PhaseDragHover:
		return nil
	default:
		return u.rejectLocked("drag enter")
	}
}

// DragLeave returns to AwaitingInput.
func (u *Uploader) DragLeave() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	switch u.phase {
	case domain.PhaseDragHover:
		u.phase = domain.PhaseAwaitingInput
		return nil
	case domain.PhaseAwaitingInput:
		return nil
	default:
		return u.rejectLocked("drag leave")
	}
}

// Drop filters files to PDFs and starts the transfer of the first one in
// drop order. The others are discarded. A drop without PDFs changes nothing.
func (u *Uploader) Drop(files []domain.File) (domain.Transfer, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.phase.AcceptsFiles() {
		return nil, u.rejectLocked("drop")
	}

	for _, f := range files {
		if domain.IsPDF(f.Name) {
			if skipped := len(files) - 1; skipped > 0 {
				logger.Debug("drop: selected %q, discarded %d other file(s)", f.Name, skipped)
			}
			return u.startLocked(f), nil
		}
	}
	return nil, domain.ErrNoCandidates
}

// Choose starts the transfer of a picked file.
func (u *Uploader) Choose(file domain.File) (domain.Transfer, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.phase.AcceptsFiles() {
		return nil, u.rejectLocked("choose")
	}
	if !domain.IsPDF(file.Name) {
		return nil, fmt.Errorf("%s: %w", file.Name, domain.ErrNotPDF)
	}
	return u.startLocked(file), nil
}

// Retry returns a failed session to AwaitingInput.
func (u *Uploader) Retry() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.phase != domain.PhaseFailed {
		return u.rejectLocked("retry")
	}
	u.phase = domain.PhaseAwaitingInput
	u.file = nil
	u.message = ""
	return nil
}

// Close dismisses the surface. While a transfer runs the request is ignored
// and ErrUploadInFlight is returned. Closing a closed surface is a no-op.
func (u *Uploader) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.phase == domain.PhaseInFlight {
		logger.Debug("close ignored: upload of %q in flight", u.file.Name)
		return domain.ErrUploadInFlight
	}
	if !u.phase.IsOpen() {
		return nil
	}
	u.closeLocked()
	return nil
}

// Snapshot returns the current session state.
func (u *Uploader) Snapshot() domain.UploadSession {
	u.mu.Lock()
	defer u.mu.Unlock()

	s := domain.UploadSession{
		Phase:   u.phase,
		Message: u.message,
	}
	if u.file != nil {
		f := *u.file
		s.File = &f
	}
	return s
}

// Done returns a channel closed when the current session closes.
// With no live session the channel is already closed.
func (u *Uploader) Done() <-chan struct{} {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.done
}

// Stop cancels any pending auto-dismiss and prevents new ones.
// It is called when the presentation layer tears down.
func (u *Uploader) Stop() {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.stopped = true
	u.stopTimerLocked()
}

// startLocked moves to InFlight and returns the transfer (caller must hold lock).
func (u *Uploader) startLocked(file domain.File) domain.Transfer {
	u.phase = domain.PhaseInFlight
	u.file = &file
	u.message = ""
	gen := u.gen

	var ran atomic.Bool
	return func(ctx context.Context) error {
		if !ran.CompareAndSwap(false, true) {
			return fmt.Errorf("transfer already ran: %w", domain.ErrInvalidTransition)
		}

		logger.Info("uploading %q", file.Name)
		err := u.backend.UploadDocument(ctx, file)
		if err != nil {
			u.fail(gen, file, err)
			return err
		}
		u.succeed(ctx, gen, file)
		return nil
	}
}

// succeed records the outcome, refreshes the registry and arms the dismiss timer.
func (u *Uploader) succeed(ctx context.Context, gen uint64, file domain.File) {
	u.mu.Lock()
	if gen != u.gen {
		u.mu.Unlock()
		return
	}
	u.phase = domain.PhaseSucceeded
	u.message = fmt.Sprintf("%q uploaded successfully!", file.Name)
	u.mu.Unlock()

	if u.registry != nil {
		u.registry.Refresh(ctx)
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if gen != u.gen || u.phase != domain.PhaseSucceeded || u.stopped {
		return
	}
	u.stopTimerLocked()
	u.timer = time.AfterFunc(u.delay, func() { u.autoClose(gen) })
}

// fail records a failed transfer.
func (u *Uploader) fail(gen uint64, file domain.File, err error) {
	logger.Warn("uploading %q: %v", file.Name, err)

	u.mu.Lock()
	defer u.mu.Unlock()
	if gen != u.gen {
		return
	}
	u.phase = domain.PhaseFailed
	if detail, ok := domain.Detail(err); ok {
		u.message = detail
	} else {
		u.message = UploadFailedMessage
	}
}

// autoClose closes the session that armed the timer, if it is still showing success.
func (u *Uploader) autoClose(gen uint64) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if gen != u.gen || u.phase != domain.PhaseSucceeded {
		return
	}
	u.timer = nil
	u.closeLocked()
}

// closeLocked moves to Closed (caller must hold lock).
func (u *Uploader) closeLocked() {
	u.stopTimerLocked()
	u.phase = domain.PhaseClosed
	select {
	case <-u.done:
	default:
		close(u.done)
	}
}

// stopTimerLocked cancels the dismiss timer (caller must hold lock).
func (u *Uploader) stopTimerLocked() {
	if u.timer != nil {
		u.timer.Stop()
		u.timer = nil
	}
}

// rejectLocked builds the error for an action not allowed in the current phase.
func (u *Uploader) rejectLocked(action string) error {
	if u.phase == domain.PhaseInFlight {
		return domain.ErrUploadInFlight
	}
	return fmt.Errorf("%s from %s: %w", action, u.phase, domain.ErrInvalidTransition)
}
