// Package sidebar provides the document list shown beside the chat.
package sidebar

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/documind/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/documind/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/documind/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driving"
)

// EmptyText is shown when the registry holds no documents.
const EmptyText = "No documents uploaded yet."

// View is the sidebar view.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	registry driving.DocumentRegistry

	documents    []domain.Document
	selected     int
	scrollOffset int
	width        int
	height       int
	focused      bool
	loaded       bool
	deleting     string
	err          error
}

// NewView creates a new sidebar view.
func NewView(s *styles.Styles, km *keymap.KeyMap, registry driving.DocumentRegistry) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:    s,
		keymap:    km,
		registry:  registry,
		documents: []domain.Document{},
		width:     styles.SidebarWidth,
	}
}

// Init returns the command that performs the first refresh.
func (v *View) Init() tea.Cmd {
	return v.Reload()
}

// Reload returns a command that refreshes the registry and reports its view.
func (v *View) Reload() tea.Cmd {
	registry := v.registry
	return func() tea.Msg {
		if registry == nil {
			return nil
		}
		registry.Refresh(context.Background())
		return messages.DocumentsChanged{Documents: registry.Documents()}
	}
}

// Update handles messages for the sidebar.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.DocumentsChanged:
		v.setDocuments(msg.Documents)
		return v, nil

	case messages.DocumentDeleted:
		if msg.Name == v.deleting {
			v.deleting = ""
		}
		v.err = msg.Err
		if msg.Err != nil {
			return v, nil
		}
		// The registry refreshed itself after the delete.
		if v.registry != nil {
			v.setDocuments(v.registry.Documents())
		}
		return v, nil

	case tea.KeyMsg:
		if !v.focused {
			return v, nil
		}
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses while the sidebar has focus.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case keymap.Matches(key, v.keymap.Down):
		if v.selected < len(v.documents)-1 {
			v.selected++
			v.adjustScroll()
		}
	case keymap.Matches(key, v.keymap.Delete):
		doc := v.SelectedDocument()
		if doc == nil || v.deleting != "" {
			return v, nil
		}
		v.deleting = doc.Name
		return v, v.deleteDocument(doc.Name)
	case keymap.Matches(key, v.keymap.Reload):
		return v, v.Reload()
	case key == "u":
		return v, func() tea.Msg { return messages.UploadRequested{} }
	}
	return v, nil
}

// deleteDocument returns a command that deletes a document by name.
func (v *View) deleteDocument(name string) tea.Cmd {
	registry := v.registry
	return func() tea.Msg {
		if registry == nil {
			return messages.DocumentDeleted{Name: name, Err: fmt.Errorf("document registry not available")}
		}
		err := registry.Delete(context.Background(), name)
		return messages.DocumentDeleted{Name: name, Err: err}
	}
}

// setDocuments replaces the list and keeps the selection in range.
func (v *View) setDocuments(docs []domain.Document) {
	v.documents = docs
	v.loaded = true
	if v.selected >= len(docs) {
		v.selected = len(docs) - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}
	v.adjustScroll()
}

// adjustScroll adjusts the scroll offset to keep the selected item visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of documents that fit. Each takes two lines.
func (v *View) visibleItemCount() int {
	// Brand, tagline, button, section header and spacing.
	reserved := 9
	available := (v.height - reserved) / 2
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the sidebar.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("DocuMind"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Local AI · Private"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Selected.Render(" + Upload PDF "))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Subtitle.Render("Documents"))
	b.WriteString("\n")

	switch {
	case len(v.documents) == 0:
		b.WriteString(v.styles.Muted.Render(EmptyText))
		b.WriteString("\n")
	default:
		visibleItems := v.visibleItemCount()
		for i := v.scrollOffset; i < len(v.documents) && i < v.scrollOffset+visibleItems; i++ {
			b.WriteString(v.renderDocument(i, &v.documents[i]))
			b.WriteString("\n")
		}
		if len(v.documents) > visibleItems {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("[%d-%d of %d]",
				v.scrollOffset+1,
				min(v.scrollOffset+visibleItems, len(v.documents)),
				len(v.documents))))
			b.WriteString("\n")
		}
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(v.truncate("Delete failed")))
		b.WriteString("\n")
	}

	inner := v.width - 3
	if inner < 10 {
		inner = 10
	}
	return v.styles.Sidebar.Width(inner).Height(max(v.height, 1)).Render(b.String())
}

// renderDocument renders one document as a name line and a size line.
func (v *View) renderDocument(index int, doc *domain.Document) string {
	name := v.truncate(doc.Name)
	size := domain.FormatSize(doc.Size)
	if doc.Name == v.deleting {
		size = "deleting..."
	}

	indicator := "  "
	if index == v.selected && v.focused {
		indicator = "> "
		return v.styles.Selected.Render(indicator+name) + "\n" + v.styles.Muted.Render("  "+size)
	}
	return v.styles.Normal.Render(indicator+name) + "\n" + v.styles.Muted.Render("  "+size)
}

// truncate shortens text to fit the sidebar.
func (v *View) truncate(text string) string {
	limit := v.width - 9
	if limit < 8 {
		limit = 8
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-3]) + "..."
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.adjustScroll()
}

// Focus gives the sidebar keyboard focus.
func (v *View) Focus() {
	v.focused = true
}

// Blur removes keyboard focus.
func (v *View) Blur() {
	v.focused = false
}

// Focused reports whether the sidebar has focus.
func (v *View) Focused() bool {
	return v.focused
}

// Documents returns the displayed documents.
func (v *View) Documents() []domain.Document {
	return v.documents
}

// Loaded reports whether a document list has been received.
func (v *View) Loaded() bool {
	return v.loaded
}

// SelectedIndex returns the currently selected document index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedDocument returns the currently selected document.
func (v *View) SelectedDocument() *domain.Document {
	if v.selected < len(v.documents) {
		return &v.documents[v.selected]
	}
	return nil
}

// Err returns the last delete error.
func (v *View) Err() error {
	return v.err
}
