// Package tui provides an interactive terminal user interface for documind.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/documind/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Registry holds the document list shown in the sidebar.
	Registry driving.DocumentRegistry

	// Uploader drives the upload dialog.
	Uploader driving.UploadController

	// Conversation drives the chat.
	Conversation driving.ConversationController
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	registry driving.DocumentRegistry,
	uploader driving.UploadController,
	conversation driving.ConversationController,
) *Ports {
	return &Ports{
		Registry:     registry,
		Uploader:     uploader,
		Conversation: conversation,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Registry == nil {
		return ErrMissingRegistry
	}
	if p.Uploader == nil {
		return ErrMissingUploader
	}
	if p.Conversation == nil {
		return ErrMissingConversation
	}
	return nil
}
