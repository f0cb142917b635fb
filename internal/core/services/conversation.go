package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/core/ports/driving"
	"github.com/custodia-labs/documind/internal/logger"
)

// Ensure Conversation implements the interface.
var _ driving.ConversationController = (*Conversation)(nil)

// FallbackReply is shown when a question fails without a service detail.
const FallbackReply = "Something went wrong. Is the backend running?"

// Conversation owns the chat history of one session.
// At most one question is pending; the pending flag is a single permit
// taken with compare-and-swap before anything is appended.
type Conversation struct {
	backend    driven.Backend
	transcript driven.TranscriptStore
	sessionID  string
	now        func() time.Time

	pending atomic.Bool

	mu       sync.RWMutex
	messages []domain.Message
}

// NewConversation creates an empty conversation. transcript may be nil.
func NewConversation(backend driven.Backend, transcript driven.TranscriptStore) *Conversation {
	return &Conversation{
		backend:    backend,
		transcript: transcript,
		sessionID:  uuid.NewString(),
		now:        time.Now,
		messages:   []domain.Message{},
	}
}

// Start appends the user message and takes the pending permit.
// Empty questions and questions asked while another is pending are
// rejected without side effects.
func (c *Conversation) Start(question string) (domain.Turn, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.ErrEmptyQuestion
	}
	if !c.pending.CompareAndSwap(false, true) {
		return nil, domain.ErrQuestionPending
	}

	c.append(context.Background(), domain.Message{
		Role:    domain.RoleUser,
		Content: question,
	})

	var ran atomic.Bool
	return func(ctx context.Context) domain.Message {
		if !ran.CompareAndSwap(false, true) {
			return domain.Message{}
		}
		return c.resolve(ctx, question)
	}, nil
}

// Submit asks a question and waits for the reply.
func (c *Conversation) Submit(ctx context.Context, question string) (domain.Message, error) {
	turn, err := c.Start(question)
	if err != nil {
		return domain.Message{}, err
	}
	return turn(ctx), nil
}

// Messages returns a copy of the conversation.
func (c *Conversation) Messages() []domain.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// Pending reports whether a question awaits its answer.
func (c *Conversation) Pending() bool {
	return c.pending.Load()
}

// SessionID identifies this conversation.
func (c *Conversation) SessionID() string {
	return c.sessionID
}

// resolve issues the question and appends exactly one assistant message.
// The reply is appended before the permit is released so no other turn
// can slip between a question and its answer.
func (c *Conversation) resolve(ctx context.Context, question string) domain.Message {
	defer c.pending.Store(false)

	logger.Debug("asking: %s", question)
	answer, err := c.backend.Ask(ctx, question)

	var reply domain.Message
	if err != nil {
		logger.Warn("question failed: %v", err)
		reply = domain.Message{
			Role:    domain.RoleAssistant,
			Content: errorReply(err),
		}
	} else {
		sources := make([]string, len(answer.Sources))
		copy(sources, answer.Sources)
		reply = domain.Message{
			Role:    domain.RoleAssistant,
			Content: answer.Text,
			Sources: sources,
		}
	}

	return c.append(ctx, reply)
}

// append stamps and records a message, then mirrors it to the transcript.
func (c *Conversation) append(ctx context.Context, msg domain.Message) domain.Message {
	msg.ID = uuid.NewString()
	msg.CreatedAt = c.now()

	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()

	if c.transcript != nil {
		if err := c.transcript.Append(context.WithoutCancel(ctx), c.sessionID, msg); err != nil {
			logger.Warn("recording %s message: %v", msg.Role, err)
		}
	}
	return msg
}

// errorReply builds the assistant text for a failed question.
func errorReply(err error) string {
	if detail, ok := domain.Detail(err); ok {
		return domain.ErrorReplyPrefix + detail
	}
	return domain.ErrorReplyPrefix + FallbackReply
}

// String summarises the conversation for logs.
func (c *Conversation) String() string {
	return fmt.Sprintf("conversation %s (%d messages, pending=%t)", c.sessionID, c.Len(), c.Pending())
}
