package driving

import "github.com/custodia-labs/documind/internal/core/domain"

// UploadController drives the upload surface state machine.
// Methods that do not start a transfer never block.
type UploadController interface {
	// Open shows the surface. Allowed from Idle and Closed.
	Open() error

	// DragEnter records files hovering over the drop zone.
	DragEnter(candidates int) error

	// DragLeave records the hover ending.
	DragLeave() error

	// Drop selects the first PDF of files and starts its transfer.
	Drop(files []domain.File) (domain.Transfer, error)

	// Choose starts the transfer of a picked file.
	Choose(file domain.File) (domain.Transfer, error)

	// Retry returns a failed session to awaiting input.
	Retry() error

	// Close dismisses the surface. Ignored while a transfer runs.
	Close() error

	// Snapshot returns the current session state.
	Snapshot() domain.UploadSession

	// Done returns a channel closed when the current session closes.
	Done() <-chan struct{}

	// Stop cancels any pending auto-dismiss timer.
	Stop()
}
