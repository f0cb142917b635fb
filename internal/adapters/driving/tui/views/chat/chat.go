// Package chat provides the conversation view of the TUI.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/documind/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/documind/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/documind/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/documind/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driving"
	"github.com/custodia-labs/documind/internal/logger"
)

const (
	// Title heads the chat pane.
	Title = "DocuMind Chat"
	// Subtitle sits under the title.
	Subtitle = "Ask anything about your documents"
	// WelcomeTitle is shown before the first question.
	WelcomeTitle = "Welcome to DocuMind"
	// WelcomeText explains what to do first.
	WelcomeText = "Upload a PDF document and start asking questions."
	// AssistantTag labels answers.
	AssistantTag = "DocuMind"
	// SourcesLabel precedes the cited documents.
	SourcesLabel = "Sources:"
)

// headerHeight and inputHeight are the lines around the viewport.
const (
	headerHeight = 3
	inputHeight  = 3
)

// View is the chat view.
type View struct {
	styles       *styles.Styles
	keymap       *keymap.KeyMap
	conversation driving.ConversationController

	viewport     viewport.Model
	spinner      spinner.Model
	input        *input.Field
	renderer     *glamour.TermRenderer
	glamourStyle string

	width   int
	height  int
	focused bool
}

// NewView creates a new chat view. glamourStyle names a glamour standard
// style; empty selects one from the terminal background.
func NewView(s *styles.Styles, km *keymap.KeyMap, conversation driving.ConversationController, glamourStyle string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Muted

	v := &View{
		styles:       s,
		keymap:       km,
		conversation: conversation,
		viewport:     viewport.New(80, 20),
		spinner:      sp,
		input:        input.NewQuestionField(s),
		glamourStyle: glamourStyle,
		width:        80,
		height:       20 + headerHeight + inputHeight,
		focused:      true,
	}
	v.renderer = v.newRenderer()
	v.refresh()
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !v.focused {
			return v, nil
		}
		return v.handleKeyMsg(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd

	case spinner.TickMsg:
		if !v.pending() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		v.refresh()
		return v, cmd

	case messages.AnswerReceived:
		v.refresh()
		return v, nil
	}

	// Cursor blinks and other input internals.
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg handles key presses while the chat has focus.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return v, v.ask()
	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// ask starts a turn with the typed question. The input keeps its text when
// the question is rejected.
func (v *View) ask() tea.Cmd {
	if v.conversation == nil {
		return nil
	}
	question := v.input.Value()
	turn, err := v.conversation.Start(question)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuestion) || errors.Is(err, domain.ErrQuestionPending) {
			return nil
		}
		logger.Warn("starting question: %v", err)
		return func() tea.Msg { return messages.ErrorOccurred{Err: err} }
	}

	v.input.Reset()
	v.refresh()

	return tea.Batch(
		func() tea.Msg { return messages.QuestionAsked{Question: question} },
		v.spinner.Tick,
		func() tea.Msg {
			return messages.AnswerReceived{Message: turn(context.Background())}
		},
	)
}

// pending reports whether a question awaits its answer.
func (v *View) pending() bool {
	return v.conversation != nil && v.conversation.Pending()
}

// refresh re-renders the history into the viewport and scrolls to the end.
func (v *View) refresh() {
	v.viewport.SetContent(v.renderHistory())
	v.viewport.GotoBottom()
}

// renderHistory renders every message, then the thinking indicator.
func (v *View) renderHistory() string {
	var msgs []domain.Message
	if v.conversation != nil {
		msgs = v.conversation.Messages()
	}

	if len(msgs) == 0 {
		welcome := v.styles.Title.Render(WelcomeTitle) + "\n\n" + v.styles.Muted.Render(WelcomeText)
		return lipgloss.Place(v.viewport.Width, v.viewport.Height, lipgloss.Center, lipgloss.Center, welcome)
	}

	var b strings.Builder
	for _, msg := range msgs {
		if msg.Role == domain.RoleUser {
			b.WriteString(v.renderUser(msg))
		} else {
			b.WriteString(v.renderAssistant(msg))
		}
		b.WriteString("\n\n")
	}
	if v.pending() {
		b.WriteString(v.styles.Subtitle.Render(AssistantTag))
		b.WriteString("\n")
		b.WriteString(v.spinner.View() + v.styles.Muted.Render(" Thinking..."))
	}
	return b.String()
}

// renderUser renders a question aligned to the right.
func (v *View) renderUser(msg domain.Message) string {
	maxWidth := v.viewport.Width * 3 / 4
	bubble := v.styles.UserBubble.MaxWidth(maxWidth).Render(msg.Content)
	return lipgloss.PlaceHorizontal(v.viewport.Width, lipgloss.Right, bubble)
}

// renderAssistant renders an answer as markdown with its sources.
func (v *View) renderAssistant(msg domain.Message) string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(AssistantTag))
	b.WriteString("\n")
	b.WriteString(v.renderMarkdown(msg.Content))

	if msg.HasSources() {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(SourcesLabel))
		for _, src := range msg.Sources {
			b.WriteString(" ")
			b.WriteString(v.styles.SourceBadge.Render(src))
		}
	}
	return b.String()
}

// renderMarkdown renders content with glamour, falling back to plain text.
func (v *View) renderMarkdown(content string) string {
	if v.renderer == nil {
		return v.styles.Normal.Render(content)
	}
	out, err := v.renderer.Render(content)
	if err != nil {
		logger.Debug("rendering markdown: %v", err)
		return v.styles.Normal.Render(content)
	}
	return strings.Trim(out, "\n")
}

// newRenderer builds a glamour renderer wrapped to the viewport.
func (v *View) newRenderer() *glamour.TermRenderer {
	styleOpt := glamour.WithAutoStyle()
	if v.glamourStyle != "" {
		styleOpt = glamour.WithStandardStyle(v.glamourStyle)
	}
	wrap := v.viewport.Width - 4
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(wrap))
	if err != nil {
		logger.Warn("creating markdown renderer: %v", err)
		return nil
	}
	return r
}

// View renders the chat view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(Title))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(Subtitle))
	b.WriteString("\n\n")
	b.WriteString(v.viewport.View())
	b.WriteString("\n")
	b.WriteString(v.input.View())

	return b.String()
}

// SetDimensions sets the view dimensions and re-wraps the history.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height

	vpHeight := height - headerHeight - inputHeight - 1
	if vpHeight < 3 {
		vpHeight = 3
	}
	v.viewport.Width = width
	v.viewport.Height = vpHeight
	v.input.SetWidth(width)
	v.renderer = v.newRenderer()
	v.refresh()
}

// Focus gives the chat keyboard focus.
func (v *View) Focus() tea.Cmd {
	v.focused = true
	return v.input.Focus()
}

// Blur removes keyboard focus.
func (v *View) Blur() {
	v.focused = false
	v.input.Blur()
}

// Focused reports whether the chat has focus.
func (v *View) Focused() bool {
	return v.focused
}

// Input returns the question currently typed.
func (v *View) Input() string {
	return v.input.Value()
}

// SetInput replaces the typed question.
func (v *View) SetInput(text string) {
	v.input.SetValue(text)
}
