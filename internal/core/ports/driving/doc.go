// Package driving declares what the CLI, TUI and MCP adapters may ask of
// the core: the document registry, the upload and conversation
// controllers, the folder watcher and settings. internal/core/services
// implements them.
package driving
