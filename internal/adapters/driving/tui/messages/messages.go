// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/documind/internal/core/domain"
)

// Pane identifies which part of the screen receives keys.
type Pane int

const (
	// PaneChat is the conversation and question input.
	PaneChat Pane = iota
	// PaneSidebar is the document list.
	PaneSidebar
	// PaneUpload is the upload modal. It takes all keys while open.
	PaneUpload
)

// String returns the string representation of the pane.
func (p Pane) String() string {
	switch p {
	case PaneChat:
		return "chat"
	case PaneSidebar:
		return "sidebar"
	case PaneUpload:
		return "upload"
	default:
		return "unknown"
	}
}

// FocusChanged is sent when keyboard focus moves to another pane.
type FocusChanged struct {
	Pane Pane
}

// DocumentsChanged carries the registry view after a refresh.
type DocumentsChanged struct {
	Documents []domain.Document
}

// DocumentDeleted signals a delete finished.
type DocumentDeleted struct {
	Name string
	Err  error
}

// QuestionAsked signals a question was accepted and is pending.
type QuestionAsked struct {
	Question string
}

// AnswerReceived carries the assistant message that resolved a turn.
type AnswerReceived struct {
	Message domain.Message
}

// UploadRequested asks the app to open the upload modal.
type UploadRequested struct{}

// UploadFinished signals a transfer completed, successfully or not.
type UploadFinished struct {
	Name string
	Err  error
}

// UploadClosed signals the upload session closed, manually or on its timer.
type UploadClosed struct{}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
