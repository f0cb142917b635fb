// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// SwitchPane moves focus between the sidebar and the chat.
	SwitchPane key.Binding

	// Upload opens the upload modal.
	Upload key.Binding

	// Send submits the typed question.
	Send key.Binding

	// Up navigates up in a list or scrolls the chat.
	Up key.Binding

	// Down navigates down in a list or scrolls the chat.
	Down key.Binding

	// Delete removes the selected document.
	Delete key.Binding

	// Reload refreshes the document list.
	Reload key.Binding

	// Choose uploads the typed path in the upload modal.
	Choose key.Binding

	// Retry returns a failed upload to the drop zone.
	Retry key.Binding

	// Close dismisses the upload modal.
	Close key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Upload: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "upload"),
		),
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "upload path"),
		),
		Retry: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("enter", "try again"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// ChatHelp returns keybindings shown while the chat has focus.
func (k *KeyMap) ChatHelp() []key.Binding {
	return []key.Binding{k.Send, k.SwitchPane, k.Upload, k.Quit}
}

// SidebarHelp returns keybindings shown while the sidebar has focus.
func (k *KeyMap) SidebarHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Delete, k.Reload, k.SwitchPane, k.Upload}
}

// UploadHelp returns keybindings shown while the upload modal is open.
func (k *KeyMap) UploadHelp() []key.Binding {
	return []key.Binding{k.Choose, k.Close}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
