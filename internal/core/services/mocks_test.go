package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/documind/internal/core/domain"
)

// mockBackend implements driven.Backend for testing.
// Each call is counted; behaviour comes from the func fields.
type mockBackend struct {
	ListFunc   func(ctx context.Context) ([]domain.Document, error)
	UploadFunc func(ctx context.Context, file domain.File) error
	DeleteFunc func(ctx context.Context, name string) error
	AskFunc    func(ctx context.Context, question string) (domain.Answer, error)

	mu        sync.Mutex
	lists     int
	uploads   []string
	deletes   []string
	questions []string
}

func (m *mockBackend) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	m.mu.Lock()
	m.lists++
	m.mu.Unlock()
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.Document{}, nil
}

func (m *mockBackend) UploadDocument(ctx context.Context, file domain.File) error {
	m.mu.Lock()
	m.uploads = append(m.uploads, file.Name)
	m.mu.Unlock()
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, file)
	}
	return nil
}

func (m *mockBackend) DeleteDocument(ctx context.Context, name string) error {
	m.mu.Lock()
	m.deletes = append(m.deletes, name)
	m.mu.Unlock()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, name)
	}
	return nil
}

func (m *mockBackend) Ask(ctx context.Context, question string) (domain.Answer, error) {
	m.mu.Lock()
	m.questions = append(m.questions, question)
	m.mu.Unlock()
	if m.AskFunc != nil {
		return m.AskFunc(ctx, question)
	}
	return domain.Answer{}, nil
}

func (m *mockBackend) listCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lists
}

func (m *mockBackend) uploadCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.uploads...)
}

func (m *mockBackend) questionCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.questions...)
}

// indexBackend is a mockBackend whose list reflects uploads and deletes,
// standing in for a service with real state.
func indexBackend(initial ...domain.Document) *mockBackend {
	var mu sync.Mutex
	index := append([]domain.Document(nil), initial...)

	m := &mockBackend{}
	m.ListFunc = func(context.Context) ([]domain.Document, error) {
		mu.Lock()
		defer mu.Unlock()
		return append([]domain.Document(nil), index...), nil
	}
	m.UploadFunc = func(_ context.Context, f domain.File) error {
		mu.Lock()
		defer mu.Unlock()
		for i := range index {
			if index[i].Name == f.Name {
				index[i].Size = f.Size
				return nil
			}
		}
		index = append(index, domain.Document{Name: f.Name, Size: f.Size})
		return nil
	}
	m.DeleteFunc = func(_ context.Context, name string) error {
		mu.Lock()
		defer mu.Unlock()
		for i := range index {
			if index[i].Name == name {
				index = append(index[:i], index[i+1:]...)
				return nil
			}
		}
		return &domain.ServiceError{Op: "delete document", Status: 404, Detail: "Document not found."}
	}
	return m
}

// mockTranscript implements driven.TranscriptStore for testing.
type mockTranscript struct {
	mu        sync.Mutex
	messages  []domain.Message
	appendErr error
}

func (m *mockTranscript) Append(_ context.Context, _ string, msg domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockTranscript) List(_ context.Context, _ string) ([]domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Message(nil), m.messages...), nil
}

func (m *mockTranscript) Sessions(_ context.Context) ([]string, error) {
	return nil, nil
}

func (m *mockTranscript) Close() error {
	return nil
}

// mockRegistry implements driving.DocumentRegistry and counts refreshes.
type mockRegistry struct {
	mu        sync.Mutex
	refreshes int
}

func (m *mockRegistry) Refresh(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshes++
}

func (m *mockRegistry) Documents() []domain.Document { return nil }

func (m *mockRegistry) Loaded() bool { return true }

func (m *mockRegistry) Delete(context.Context, string) error { return nil }

func (m *mockRegistry) Subscribe() (<-chan []domain.Document, func()) {
	ch := make(chan []domain.Document)
	return ch, func() {}
}

func (m *mockRegistry) refreshCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshes
}
