package domain

import "context"

// Phase is the state of the upload surface.
type Phase int

const (
	// PhaseIdle means the surface has never been opened.
	PhaseIdle Phase = iota
	// PhaseAwaitingInput means the surface is open and waiting for a file.
	PhaseAwaitingInput
	// PhaseDragHover means files are being dragged over the drop zone.
	PhaseDragHover
	// PhaseInFlight means a transfer is running.
	PhaseInFlight
	// PhaseSucceeded means the last transfer finished and the surface will close.
	PhaseSucceeded
	// PhaseFailed means the last transfer failed.
	PhaseFailed
	// PhaseClosed means the surface was dismissed.
	PhaseClosed
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingInput:
		return "awaiting_input"
	case PhaseDragHover:
		return "drag_hover"
	case PhaseInFlight:
		return "in_flight"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	case PhaseClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// IsOpen reports whether the surface is visible in this phase.
func (p Phase) IsOpen() bool {
	return p != PhaseIdle && p != PhaseClosed
}

// AcceptsFiles reports whether a file may be dropped or chosen in this phase.
func (p Phase) AcceptsFiles() bool {
	return p == PhaseAwaitingInput || p == PhaseDragHover
}

// UploadSession is a snapshot of the upload surface.
type UploadSession struct {
	// Phase is the current state.
	Phase Phase

	// File is the file selected for the current or last transfer.
	File *File

	// Message is the confirmation or error shown to the user.
	Message string
}

// Transfer performs a started upload. It blocks on the service call and
// returns the upload error, if any, after the session has been updated.
type Transfer func(ctx context.Context) error
