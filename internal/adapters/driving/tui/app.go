package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/documind/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/documind/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/documind/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/documind/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/documind/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/documind/internal/adapters/driving/tui/views/sidebar"
	"github.com/custodia-labs/documind/internal/adapters/driving/tui/views/upload"
	"github.com/custodia-labs/documind/internal/core/domain"
)

// documentsPublished carries a view pushed by the registry subscription.
type documentsPublished struct {
	documents []domain.Document
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// sidebarView lists the indexed documents.
	sidebarView *sidebar.View

	// chatView shows the conversation and the question input.
	chatView *chat.View

	// uploadView is the upload dialog drawn over the layout.
	uploadView *upload.View

	// statusBar shows state and keybinding hints.
	statusBar *status.Bar

	// focus is the pane receiving keys while the dialog is closed.
	focus messages.Pane

	// updates receives registry views; unsubscribe ends the subscription.
	updates     <-chan []domain.Document
	unsubscribe func()

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		sidebarView: sidebar.NewView(s, km, ports.Registry),
		chatView:    chat.NewView(s, km, ports.Conversation, ""),
		uploadView:  upload.NewView(s, km, ports.Uploader),
		statusBar:   status.NewBar(s, km),
		focus:       messages.PaneChat,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithMarkdownStyle sets the glamour style used for answers.
// Empty picks a style from the terminal background.
func (a *App) WithMarkdownStyle(style string) *App {
	a.chatView = chat.NewView(a.styles, a.keymap, a.ports.Conversation, style)
	if a.ready {
		a.layout()
	}
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	if a.unsubscribe == nil {
		a.updates, a.unsubscribe = a.ports.Registry.Subscribe()
	}
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("DocuMind"),
		a.sidebarView.Init(),
		a.chatView.Init(),
		a.waitForDocuments(),
	)
}

// waitForDocuments returns a command that waits for the next registry view.
func (a *App) waitForDocuments() tea.Cmd {
	updates := a.updates
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		docs, ok := <-updates
		if !ok {
			return nil
		}
		return documentsPublished{documents: docs}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.MouseMsg:
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case documentsPublished:
		a.applyDocuments(msg.documents)
		return a, a.waitForDocuments()

	case messages.DocumentsChanged:
		a.applyDocuments(msg.Documents)
		return a, nil

	case messages.DocumentDeleted:
		a.sidebarView, cmd = a.sidebarView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(describe(msg.Err))
		} else {
			a.statusBar.Clear()
			a.statusBar.SetMessage(fmt.Sprintf("Deleted %s", msg.Name))
		}
		return a, cmd

	case messages.UploadRequested:
		return a, a.openUpload()

	case messages.UploadFinished:
		a.uploadView, cmd = a.uploadView.Update(msg)
		a.statusBar.Clear()
		if msg.Err != nil {
			a.err = msg.Err
		}
		return a, cmd

	case messages.UploadClosed:
		a.uploadView, cmd = a.uploadView.Update(msg)
		a.statusBar.Update(messages.FocusChanged{Pane: a.focus})
		return a, cmd

	case messages.QuestionAsked:
		a.statusBar.Clear()
		a.statusBar.SetState(status.StateAsking)
		return a, nil

	case messages.AnswerReceived:
		a.chatView, cmd = a.chatView.Update(msg)
		a.statusBar.Clear()
		return a, cmd

	case spinner.TickMsg:
		var chatCmd, uploadCmd tea.Cmd
		a.chatView, chatCmd = a.chatView.Update(msg)
		a.uploadView, uploadCmd = a.uploadView.Update(msg)
		return a, tea.Batch(chatCmd, uploadCmd)

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(describe(msg.Err))
		return a, nil
	}

	// Blink and other component internals go to whichever input is active.
	if a.uploadView.IsOpen() {
		a.uploadView, cmd = a.uploadView.Update(msg)
	} else {
		a.chatView, cmd = a.chatView.Update(msg)
	}
	return a, cmd
}

// handleKeyMsg routes a key press. The upload dialog takes every key while open.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	key := msg.String()

	if keymap.Matches(key, a.keymap.Quit) {
		a.close()
		return a, tea.Quit
	}

	if a.uploadView.IsOpen() {
		a.uploadView, cmd = a.uploadView.Update(msg)
		if a.uploadView.IsOpen() && a.ports.Uploader.Snapshot().Phase == domain.PhaseInFlight {
			a.statusBar.SetState(status.StateUploading)
		}
		return a, cmd
	}

	switch {
	case keymap.Matches(key, a.keymap.Upload):
		return a, a.openUpload()
	case keymap.Matches(key, a.keymap.SwitchPane):
		return a, a.toggleFocus()
	}

	if a.focus == messages.PaneSidebar {
		a.sidebarView, cmd = a.sidebarView.Update(msg)
		return a, cmd
	}
	a.chatView, cmd = a.chatView.Update(msg)
	return a, cmd
}

// openUpload opens the upload dialog.
func (a *App) openUpload() tea.Cmd {
	cmd := a.uploadView.Open()
	if cmd != nil {
		a.statusBar.Update(messages.FocusChanged{Pane: messages.PaneUpload})
	}
	return cmd
}

// toggleFocus moves keyboard focus between the chat and the sidebar.
func (a *App) toggleFocus() tea.Cmd {
	var cmd tea.Cmd
	if a.focus == messages.PaneChat {
		a.focus = messages.PaneSidebar
		a.chatView.Blur()
		a.sidebarView.Focus()
	} else {
		a.focus = messages.PaneChat
		a.sidebarView.Blur()
		cmd = a.chatView.Focus()
	}
	a.statusBar.Update(messages.FocusChanged{Pane: a.focus})
	return cmd
}

// applyDocuments hands a registry view to the sidebar and status bar.
func (a *App) applyDocuments(docs []domain.Document) {
	changed := messages.DocumentsChanged{Documents: docs}
	a.sidebarView.Update(changed)
	a.statusBar.Update(changed)
}

// layout sizes every component from the terminal dimensions.
func (a *App) layout() {
	bodyHeight := a.height - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	chatWidth := a.width - styles.SidebarWidth - 2
	if chatWidth < 20 {
		chatWidth = 20
	}
	a.sidebarView.SetDimensions(styles.SidebarWidth, bodyHeight)
	a.chatView.SetDimensions(chatWidth, bodyHeight)
	a.uploadView.SetDimensions(a.width, bodyHeight)
	a.statusBar.SetWidth(a.width)
}

// close ends the registry subscription.
func (a *App) close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// describe returns the service detail of err, or its message.
func describe(err error) string {
	if detail, ok := domain.Detail(err); ok {
		return detail
	}
	return err.Error()
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	if a.uploadView.IsOpen() {
		body = a.uploadView.Overlay()
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			a.sidebarView.View(),
			"  ",
			a.chatView.View(),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, a.statusBar.View())
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.close()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Focus returns the pane that receives keys while the dialog is closed.
func (a *App) Focus() messages.Pane {
	return a.focus
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.layout()
}
