package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/services"
)

// mockRegistry is a mock implementation of driving.DocumentRegistry.
type mockRegistry struct {
	documents []domain.Document
	loaded    bool
	deleteErr error
	deleted   []string
	refreshes int
}

func (m *mockRegistry) Refresh(_ context.Context) {
	m.refreshes++
}

func (m *mockRegistry) Documents() []domain.Document {
	return append([]domain.Document(nil), m.documents...)
}

func (m *mockRegistry) Loaded() bool {
	return m.loaded
}

func (m *mockRegistry) Delete(_ context.Context, name string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, name)
	return nil
}

func (m *mockRegistry) Subscribe() (<-chan []domain.Document, func()) {
	ch := make(chan []domain.Document)
	return ch, func() {}
}

// mockBackend is a mock implementation of driven.Backend.
type mockBackend struct {
	uploadFunc func(ctx context.Context, file domain.File) error
	askFunc    func(ctx context.Context, question string) (domain.Answer, error)
}

func (m *mockBackend) ListDocuments(_ context.Context) ([]domain.Document, error) {
	return []domain.Document{}, nil
}

func (m *mockBackend) UploadDocument(ctx context.Context, file domain.File) error {
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, file)
	}
	return nil
}

func (m *mockBackend) DeleteDocument(_ context.Context, _ string) error { return nil }

func (m *mockBackend) Ask(ctx context.Context, question string) (domain.Answer, error) {
	if m.askFunc != nil {
		return m.askFunc(ctx, question)
	}
	return domain.Answer{}, nil
}

// newTestServer builds a server over real controllers backed by backend.
func newTestServer(t *testing.T, registry *mockRegistry, backend *mockBackend) *Server {
	t.Helper()

	uploader := services.NewUploader(backend, nil, time.Hour)
	t.Cleanup(uploader.Stop)

	server, err := NewServer(&Ports{
		Registry:     registry,
		Uploader:     uploader,
		Conversation: services.NewConversation(backend, nil),
	}, "test")
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return server
}
