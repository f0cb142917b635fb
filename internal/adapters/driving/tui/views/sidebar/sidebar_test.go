package sidebar

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/documind/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/documind/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/documind/internal/core/domain"
)

// MockRegistry implements driving.DocumentRegistry for testing.
type MockRegistry struct {
	RefreshFunc   func(ctx context.Context)
	DocumentsFunc func() []domain.Document
	DeleteFunc    func(ctx context.Context, name string) error

	refreshes int
}

func (m *MockRegistry) Refresh(ctx context.Context) {
	m.refreshes++
	if m.RefreshFunc != nil {
		m.RefreshFunc(ctx)
	}
}

func (m *MockRegistry) Documents() []domain.Document {
	if m.DocumentsFunc != nil {
		return m.DocumentsFunc()
	}
	return []domain.Document{}
}

func (m *MockRegistry) Loaded() bool { return true }

func (m *MockRegistry) Delete(ctx context.Context, name string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, name)
	}
	return nil
}

func (m *MockRegistry) Subscribe() (<-chan []domain.Document, func()) {
	return make(chan []domain.Document), func() {}
}

func sampleDocs() []domain.Document {
	return []domain.Document{
		{Name: "report.pdf", Size: 2048},
		{Name: "notes.pdf", Size: 512},
		{Name: "manual.pdf", Size: 3 * 1024 * 1024},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newFocusedView(registry *MockRegistry) *View {
	v := NewView(styles.DefaultStyles(), nil, registry)
	v.SetDimensions(styles.SidebarWidth, 40)
	v.Focus()
	v.Update(messages.DocumentsChanged{Documents: sampleDocs()})
	return v
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, &MockRegistry{})

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.NotNil(t, v.keymap)
	assert.Empty(t, v.Documents())
	assert.False(t, v.Loaded())
	assert.False(t, v.Focused())
}

func TestView_Init_RefreshesRegistry(t *testing.T) {
	registry := &MockRegistry{DocumentsFunc: sampleDocs}
	v := NewView(nil, nil, registry)

	cmd := v.Init()
	require.NotNil(t, cmd)
	msg := cmd()

	changed, ok := msg.(messages.DocumentsChanged)
	require.True(t, ok)
	assert.Len(t, changed.Documents, 3)
	assert.Equal(t, 1, registry.refreshes)
}

func TestView_Reload_NilRegistry(t *testing.T) {
	v := NewView(nil, nil, nil)

	assert.Nil(t, v.Reload()())
}

func TestView_DocumentsChanged(t *testing.T) {
	v := newFocusedView(&MockRegistry{})

	assert.True(t, v.Loaded())
	assert.Len(t, v.Documents(), 3)

	view := v.View()
	assert.Contains(t, view, "report.pdf")
	assert.Contains(t, view, "2.0 KB")
	assert.NotContains(t, view, EmptyText)
}

func TestView_EmptyState(t *testing.T) {
	v := NewView(nil, nil, &MockRegistry{})
	v.SetDimensions(styles.SidebarWidth, 40)

	view := v.View()

	assert.Contains(t, view, "DocuMind")
	assert.Contains(t, view, "Upload PDF")
	assert.Contains(t, view, "Documents")
	assert.Contains(t, view, EmptyText)
}

func TestView_Navigation(t *testing.T) {
	v := newFocusedView(&MockRegistry{})

	v.Update(keyMsg("down"))
	assert.Equal(t, 1, v.SelectedIndex())

	v.Update(keyMsg("j"))
	v.Update(keyMsg("j"))
	assert.Equal(t, 2, v.SelectedIndex())

	v.Update(keyMsg("up"))
	v.Update(keyMsg("k"))
	v.Update(keyMsg("k"))
	assert.Equal(t, 0, v.SelectedIndex())
}

func TestView_IgnoresKeysWhenBlurred(t *testing.T) {
	v := newFocusedView(&MockRegistry{})
	v.Blur()

	_, cmd := v.Update(keyMsg("d"))

	assert.Nil(t, cmd)
	assert.Equal(t, 0, v.SelectedIndex())
}

func TestView_SelectionClampedOnShrink(t *testing.T) {
	v := newFocusedView(&MockRegistry{})
	v.Update(keyMsg("down"))
	v.Update(keyMsg("down"))

	v.Update(messages.DocumentsChanged{Documents: sampleDocs()[:1]})

	assert.Equal(t, 0, v.SelectedIndex())
	require.NotNil(t, v.SelectedDocument())
	assert.Equal(t, "report.pdf", v.SelectedDocument().Name)
}

func TestView_Delete(t *testing.T) {
	var deleted string
	remaining := sampleDocs()[1:]
	registry := &MockRegistry{
		DeleteFunc: func(_ context.Context, name string) error {
			deleted = name
			return nil
		},
		DocumentsFunc: func() []domain.Document { return remaining },
	}
	v := newFocusedView(registry)

	_, cmd := v.Update(keyMsg("d"))
	require.NotNil(t, cmd)
	assert.Contains(t, v.View(), "deleting...")

	// A second delete waits for the first.
	_, again := v.Update(keyMsg("d"))
	assert.Nil(t, again)

	msg := cmd()
	assert.Equal(t, "report.pdf", deleted)
	assert.Equal(t, messages.DocumentDeleted{Name: "report.pdf"}, msg)

	v.Update(msg)
	assert.Equal(t, remaining, v.Documents())
	assert.NoError(t, v.Err())
}

func TestView_DeleteFailureKeepsList(t *testing.T) {
	registry := &MockRegistry{
		DeleteFunc: func(_ context.Context, _ string) error {
			return errors.New("Document not found.")
		},
	}
	v := newFocusedView(registry)

	_, cmd := v.Update(keyMsg("d"))
	v.Update(cmd())

	assert.Error(t, v.Err())
	assert.Len(t, v.Documents(), 3)
	assert.Contains(t, v.View(), "Delete failed")
}

func TestView_DeleteEmptyList(t *testing.T) {
	v := NewView(nil, nil, &MockRegistry{})
	v.Focus()

	_, cmd := v.Update(keyMsg("d"))

	assert.Nil(t, cmd)
}

func TestView_ReloadKey(t *testing.T) {
	registry := &MockRegistry{DocumentsFunc: sampleDocs}
	v := newFocusedView(registry)

	_, cmd := v.Update(keyMsg("r"))
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, 1, registry.refreshes)
}

func TestView_UploadKey(t *testing.T) {
	v := newFocusedView(&MockRegistry{})

	_, cmd := v.Update(keyMsg("u"))
	require.NotNil(t, cmd)

	assert.Equal(t, messages.UploadRequested{}, cmd())
}

func TestView_Scrolling(t *testing.T) {
	docs := make([]domain.Document, 20)
	for i := range docs {
		docs[i] = domain.Document{Name: string(rune('a'+i)) + ".pdf"}
	}
	v := NewView(nil, nil, &MockRegistry{})
	v.SetDimensions(styles.SidebarWidth, 15)
	v.Focus()
	v.Update(messages.DocumentsChanged{Documents: docs})

	for range 10 {
		v.Update(keyMsg("down"))
	}

	assert.Equal(t, 10, v.SelectedIndex())
	assert.Greater(t, v.scrollOffset, 0)
	assert.Contains(t, v.View(), "of 20]")
}

func TestView_TruncatesLongNames(t *testing.T) {
	v := NewView(nil, nil, &MockRegistry{})
	v.SetDimensions(styles.SidebarWidth, 40)
	long := "a-very-long-document-name-that-does-not-fit-anywhere.pdf"

	v.Update(messages.DocumentsChanged{Documents: []domain.Document{{Name: long}}})

	assert.NotContains(t, v.View(), long)
	assert.Contains(t, v.View(), "...")
}
