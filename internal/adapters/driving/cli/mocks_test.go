package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/services"
)

// MockRegistry implements driving.DocumentRegistry for command tests.
type MockRegistry struct {
	RefreshFunc func(ctx context.Context)
	DeleteFunc  func(ctx context.Context, name string) error

	documents []domain.Document
	loaded    bool
}

func (m *MockRegistry) Refresh(ctx context.Context) {
	if m.RefreshFunc != nil {
		m.RefreshFunc(ctx)
	}
}

func (m *MockRegistry) Documents() []domain.Document {
	return append([]domain.Document(nil), m.documents...)
}

func (m *MockRegistry) Loaded() bool {
	return m.loaded
}

func (m *MockRegistry) Delete(ctx context.Context, name string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, name)
	}
	return nil
}

func (m *MockRegistry) Subscribe() (<-chan []domain.Document, func()) {
	return make(chan []domain.Document), func() {}
}

// MockBackend implements driven.Backend for the real controllers.
type MockBackend struct {
	UploadFunc func(ctx context.Context, file domain.File) error
	AskFunc    func(ctx context.Context, question string) (domain.Answer, error)
}

func (m *MockBackend) ListDocuments(_ context.Context) ([]domain.Document, error) {
	return []domain.Document{}, nil
}

func (m *MockBackend) UploadDocument(ctx context.Context, file domain.File) error {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, file)
	}
	return nil
}

func (m *MockBackend) DeleteDocument(_ context.Context, _ string) error { return nil }

func (m *MockBackend) Ask(ctx context.Context, question string) (domain.Answer, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, question)
	}
	return domain.Answer{}, nil
}

// MockFileWatcher replays a fixed list of paths then closes.
type MockFileWatcher struct {
	Paths []string
}

func (m *MockFileWatcher) Watch(_ context.Context, _ string) (<-chan string, error) {
	ch := make(chan string, len(m.Paths))
	for _, p := range m.Paths {
		ch <- p
	}
	close(ch)
	return ch, nil
}

func (m *MockFileWatcher) Close() error { return nil }

// MockSettingsService implements driving.SettingsService.
type MockSettingsService struct {
	settings *domain.Settings
	getErr   error
}

func newMockSettingsService() *MockSettingsService {
	return &MockSettingsService{settings: domain.DefaultSettings()}
}

func (m *MockSettingsService) Get() (*domain.Settings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s := *m.settings
	return &s, nil
}

func (m *MockSettingsService) SetAPIURL(url string) error {
	candidate := *m.settings
	candidate.APIURL = url
	if err := candidate.Validate(); err != nil {
		return err
	}
	m.settings.APIURL = url
	return nil
}

func (m *MockSettingsService) SetDismissDelay(d time.Duration) error {
	m.settings.DismissDelay = d
	return nil
}

func (m *MockSettingsService) GetDefaults() domain.Settings {
	return *domain.DefaultSettings()
}

// setupTestServices installs services over registry and backend and resets
// command state when the test ends.
func setupTestServices(t *testing.T, registry *MockRegistry, backend *MockBackend) *Services {
	t.Helper()

	uploader := services.NewUploader(backend, nil, time.Hour)
	svc := &Services{
		Registry:     registry,
		Uploader:     uploader,
		Conversation: services.NewConversation(backend, nil),
	}
	SetServices(svc)

	t.Cleanup(func() {
		uploader.Stop()
		SetServices(nil)
		resetFlags()
	})
	return svc
}

// resetFlags restores flag variables that persist between executions.
func resetFlags() {
	watchDir = ""
	showProgress = true
	apiURL = ""
	markdownStyle = ""
	mcpPort = 0
	mcpHost = "localhost"
	rootCmd.SetArgs(nil)
	rootCmd.SetIn(nil)
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
