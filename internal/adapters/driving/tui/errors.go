package tui

import "errors"

// Errors returned by Ports.Validate and NewApp.
var (
	ErrInvalidPorts        = errors.New("tui: invalid ports configuration")
	ErrMissingRegistry     = errors.New("tui: document registry is required")
	ErrMissingUploader     = errors.New("tui: upload controller is required")
	ErrMissingConversation = errors.New("tui: conversation controller is required")
)
