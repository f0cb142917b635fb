// Package mcp provides an MCP (Model Context Protocol) server adapter for DocuMind.
// It lets AI assistants list, upload and question the user's documents.
package mcp

import "errors"

var (
	// ErrMissingRegistry is returned when the document registry is not provided.
	ErrMissingRegistry = errors.New("mcp: document registry is required")

	// ErrMissingConversation is returned when the conversation is not provided.
	ErrMissingConversation = errors.New("mcp: conversation is required")
)
