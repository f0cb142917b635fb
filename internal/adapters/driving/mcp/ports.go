package mcp

import (
	"github.com/custodia-labs/documind/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Registry lists and deletes indexed documents.
	Registry driving.DocumentRegistry

	// Uploader sends local PDFs to the service.
	Uploader driving.UploadController

	// Conversation answers questions.
	Conversation driving.ConversationController
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Registry == nil {
		return ErrMissingRegistry
	}
	if p.Conversation == nil {
		return ErrMissingConversation
	}
	// Without an uploader the upload tool is not registered.
	return nil
}
