package driven

import (
	"context"

	"github.com/custodia-labs/documind/internal/core/domain"
)

// TranscriptStore records conversation messages as they are appended.
type TranscriptStore interface {
	// Append records one message under the given session.
	Append(ctx context.Context, sessionID string, msg domain.Message) error

	// List returns the messages of a session in append order.
	List(ctx context.Context, sessionID string) ([]domain.Message, error)

	// Sessions returns known session IDs, most recent first.
	Sessions(ctx context.Context) ([]string, error)

	// Close releases resources.
	Close() error
}
