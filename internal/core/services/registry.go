package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/core/ports/driving"
	"github.com/custodia-labs/documind/internal/logger"
)

// Ensure Registry implements the interface.
var _ driving.DocumentRegistry = (*Registry)(nil)

// Registry holds the local view of the remote document index.
type Registry struct {
	backend driven.Backend

	mu        sync.RWMutex
	documents []domain.Document
	loaded    bool
	subs      map[int]chan []domain.Document
	nextSub   int
}

// NewRegistry creates an empty registry backed by the given service.
func NewRegistry(backend driven.Backend) *Registry {
	return &Registry{
		backend:   backend,
		documents: []domain.Document{},
		subs:      make(map[int]chan []domain.Document),
	}
}

// Refresh replaces the view with the service's current list.
// On failure the previous view is kept and the error is only logged.
func (r *Registry) Refresh(ctx context.Context) {
	docs, err := r.backend.ListDocuments(ctx)
	if err != nil {
		logger.Warn("refreshing documents: %v", err)
		return
	}

	snapshot := make([]domain.Document, len(docs))
	copy(snapshot, docs)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.documents = snapshot
	r.loaded = true
	logger.Debug("registry refreshed: %d documents", len(snapshot))
	r.publish()
}

// Documents returns a copy of the current view.
func (r *Registry) Documents() []domain.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.copyDocuments()
}

// Loaded reports whether any refresh has succeeded.
func (r *Registry) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// Delete removes a document and refreshes the view on success.
func (r *Registry) Delete(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("document name: %w", domain.ErrInvalidInput)
	}

	if err := r.backend.DeleteDocument(ctx, name); err != nil {
		logger.Error("deleting document %q: %v", name, err)
		return fmt.Errorf("deleting %q: %w", name, err)
	}

	r.Refresh(ctx)
	return nil
}

// Subscribe returns a channel that receives the view after every
// successful refresh. Slow readers only see the latest view.
func (r *Registry) Subscribe() (<-chan []domain.Document, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextSub
	r.nextSub++
	ch := make(chan []domain.Document, 1)
	r.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			delete(r.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// publish sends the current view to every subscriber (caller must hold lock).
func (r *Registry) publish() {
	for _, ch := range r.subs {
		snapshot := r.copyDocuments()
		select {
		case ch <- snapshot:
		default:
			// Drop the stale view and deliver the latest one.
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}

// copyDocuments copies the view (caller must hold lock).
func (r *Registry) copyDocuments() []domain.Document {
	out := make([]domain.Document, len(r.documents))
	copy(out, r.documents)
	return out
}
