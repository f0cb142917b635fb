package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
)

// Ensure TranscriptStore implements the interface.
var _ driven.TranscriptStore = (*TranscriptStore)(nil)

// TranscriptStore is an in-memory implementation of driven.TranscriptStore.
// It is used when transcript persistence is disabled.
type TranscriptStore struct {
	mu       sync.RWMutex
	sessions map[string][]domain.Message
	order    []string
}

// NewTranscriptStore creates a new in-memory transcript.
func NewTranscriptStore() *TranscriptStore {
	return &TranscriptStore{
		sessions: make(map[string][]domain.Message),
	}
}

// Append records one message under the given session.
func (s *TranscriptStore) Append(_ context.Context, sessionID string, msg domain.Message) error {
	if sessionID == "" {
		return fmt.Errorf("appending message: %w", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; ok {
		s.touchLocked(sessionID)
	} else {
		s.order = append(s.order, sessionID)
	}
	s.sessions[sessionID] = append(s.sessions[sessionID], msg)
	return nil
}

// List returns the messages of a session in append order.
func (s *TranscriptStore) List(_ context.Context, sessionID string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.sessions[sessionID]
	out := make([]domain.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

// Sessions returns known session IDs, most recent first.
func (s *TranscriptStore) Sessions(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.order[i])
	}
	return out, nil
}

// Close is a no-op.
func (s *TranscriptStore) Close() error {
	return nil
}

// touchLocked moves a session to the most recent position (caller must hold lock).
func (s *TranscriptStore) touchLocked(sessionID string) {
	for i, id := range s.order {
		if id == sessionID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.order = append(s.order, sessionID)
}
