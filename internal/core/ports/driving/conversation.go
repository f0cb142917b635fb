package driving

import (
	"context"

	"github.com/custodia-labs/documind/internal/core/domain"
)

// ConversationController drives the chat turn lifecycle.
// At most one question is pending at a time; later ones are rejected.
type ConversationController interface {
	// Start appends the user message and marks the conversation pending.
	// The returned Turn issues the question and appends the reply.
	Start(question string) (domain.Turn, error)

	// Submit starts a turn and resolves it.
	Submit(ctx context.Context, question string) (domain.Message, error)

	// Messages returns a copy of the conversation.
	Messages() []domain.Message

	// Pending reports whether a question awaits its answer.
	Pending() bool

	// SessionID identifies this conversation.
	SessionID() string
}
