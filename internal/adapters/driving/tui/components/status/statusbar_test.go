package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/documind/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/documind/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/documind/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/documind/internal/core/domain"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.DocumentCount())
	assert.Equal(t, messages.PaneChat, bar.Pane())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_Init(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Nil(t, bar.Init())
}

func TestStatusBar_Update_IgnoresKeys(t *testing.T) {
	bar := NewBar(nil, nil)

	updated, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_Update_DocumentsChanged(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.Update(messages.DocumentsChanged{Documents: []domain.Document{{Name: "a.pdf"}, {Name: "b.pdf"}}})

	assert.Equal(t, 2, bar.DocumentCount())
	assert.Contains(t, bar.View(), "2 documents")
}

func TestStatusBar_Update_FocusChanged(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(200)

	bar.Update(messages.FocusChanged{Pane: messages.PaneSidebar})

	assert.Equal(t, messages.PaneSidebar, bar.Pane())
	assert.Contains(t, bar.View(), "delete")
}

func TestStatusBar_SetMessage(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetMessage("test message")

	assert.Equal(t, "test message", bar.Message())
	assert.Contains(t, bar.View(), "test message")
}

func TestStatusBar_SetWidth(t *testing.T) {
	bar := NewBar(nil, nil)
	assert.Equal(t, 80, bar.Width())

	bar.SetWidth(120)

	assert.Equal(t, 120, bar.Width())
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.Update(messages.DocumentsChanged{Documents: []domain.Document{{Name: "a.pdf"}}})
	bar.SetState(StateError)
	bar.SetMessage("error message")

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 1, bar.DocumentCount())
}

func TestStatusBar_View(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		message string
		docs    int
		want    string
	}{
		{name: "ready", state: StateReady, want: "Ready"},
		{name: "one document", state: StateReady, docs: 1, want: "1 document"},
		{name: "asking", state: StateAsking, want: "Thinking"},
		{name: "uploading", state: StateUploading, want: "Uploading"},
		{name: "error", state: StateError, want: "Error"},
		{name: "error with message", state: StateError, message: "connection failed", want: "connection failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(200)
			bar.SetState(tt.state)
			bar.SetMessage(tt.message)
			docs := make([]domain.Document, tt.docs)
			bar.Update(messages.DocumentsChanged{Documents: docs})

			assert.Contains(t, bar.View(), tt.want)
		})
	}
}

func TestStatusBar_View_ShowsKeybindings(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(200)

	assert.Contains(t, bar.View(), "quit")
}

func TestState_Constants(t *testing.T) {
	assert.Equal(t, State("ready"), StateReady)
	assert.Equal(t, State("asking"), StateAsking)
	assert.Equal(t, State("uploading"), StateUploading)
	assert.Equal(t, State("error"), StateError)
}
