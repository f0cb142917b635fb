package domain

import (
	"context"
	"strings"
	"time"
)

// Role identifies who authored a conversation message.
type Role string

const (
	// RoleUser marks a question typed by the user.
	RoleUser Role = "user"

	// RoleAssistant marks an answer or an error reply.
	RoleAssistant Role = "assistant"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// ErrorReplyPrefix starts assistant messages that report a failed question.
const ErrorReplyPrefix = "⚠️ "

// Message is one entry of the conversation.
// Once appended a message is never modified.
type Message struct {
	// ID uniquely identifies the message within the session.
	ID string `json:"id"`

	// Role is the author of the message.
	Role Role `json:"role"`

	// Content is the message text.
	Content string `json:"content"`

	// Sources lists the document references an answer was grounded in.
	// Empty for user messages and error replies.
	Sources []string `json:"sources,omitempty"`

	// CreatedAt is when the message was appended.
	CreatedAt time.Time `json:"created_at"`
}

// HasSources reports whether the message cites any documents.
func (m Message) HasSources() bool {
	return len(m.Sources) > 0
}

// IsErrorReply reports whether the message is an assistant reply standing in
// for a failed question.
func (m Message) IsErrorReply() bool {
	return m.Role == RoleAssistant && strings.HasPrefix(m.Content, ErrorReplyPrefix)
}

// Answer is the service's reply to a question.
type Answer struct {
	// Text is the answer body.
	Text string `json:"answer"`

	// Sources lists document references, possibly empty.
	Sources []string `json:"sources"`
}

// Turn resolves a started question. It blocks on the service call and
// returns the assistant message that was appended as a result.
type Turn func(ctx context.Context) Message
