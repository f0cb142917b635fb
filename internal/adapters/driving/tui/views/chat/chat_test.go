package chat

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/documind/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/documind/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/documind/internal/core/domain"
)

// MockConversation implements driving.ConversationController for testing.
type MockConversation struct {
	AnswerFunc func(question string) domain.Message

	mu       sync.Mutex
	messages []domain.Message
	pending  bool
}

func (m *MockConversation) Start(question string) (domain.Turn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrEmptyQuestion
	}
	if m.pending {
		return nil, domain.ErrQuestionPending
	}
	m.pending = true
	m.messages = append(m.messages, domain.Message{Role: domain.RoleUser, Content: question})
	return func(_ context.Context) domain.Message {
		reply := domain.Message{Role: domain.RoleAssistant, Content: "answer"}
		if m.AnswerFunc != nil {
			reply = m.AnswerFunc(question)
		}
		m.mu.Lock()
		defer m.mu.Unlock()
		m.messages = append(m.messages, reply)
		m.pending = false
		return reply
	}, nil
}

func (m *MockConversation) Submit(ctx context.Context, question string) (domain.Message, error) {
	turn, err := m.Start(question)
	if err != nil {
		return domain.Message{}, err
	}
	return turn(ctx), nil
}

func (m *MockConversation) Messages() []domain.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Message(nil), m.messages...)
}

func (m *MockConversation) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

func (m *MockConversation) SessionID() string { return "session" }

func newView(conv *MockConversation) *View {
	v := NewView(styles.DefaultStyles(), nil, conv, "notty")
	v.SetDimensions(100, 40)
	return v
}

func typeText(v *View, text string) {
	for _, r := range text {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// runBatch executes a command and any batched commands, returning the
// messages they produce. Spinner ticks are skipped.
func runBatch(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		if c == nil {
			continue
		}
		m := c()
		if _, tick := m.(spinner.TickMsg); tick {
			continue
		}
		out = append(out, m)
	}
	return out
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, &MockConversation{}, "notty")

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.NotNil(t, v.keymap)
	assert.NotNil(t, v.renderer)
	assert.True(t, v.Focused())
}

func TestView_Init(t *testing.T) {
	v := newView(&MockConversation{})

	assert.NotNil(t, v.Init())
}

func TestView_Welcome(t *testing.T) {
	v := newView(&MockConversation{})

	view := v.View()

	assert.Contains(t, view, Title)
	assert.Contains(t, view, Subtitle)
	assert.Contains(t, view, WelcomeTitle)
	assert.Contains(t, view, WelcomeText)
	assert.Contains(t, view, "Ask a question")
}

func TestView_AskAndAnswer(t *testing.T) {
	conv := &MockConversation{
		AnswerFunc: func(_ string) domain.Message {
			return domain.Message{
				Role:    domain.RoleAssistant,
				Content: "The revenue grew.",
				Sources: []string{"report.pdf"},
			}
		},
	}
	v := newView(conv)
	typeText(v, "How did revenue change?")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	assert.Equal(t, "", v.Input())
	assert.Contains(t, v.View(), "How did revenue change?")
	assert.Contains(t, v.View(), "Thinking...")

	msgs := runBatch(cmd)
	require.Len(t, msgs, 2)
	assert.Equal(t, messages.QuestionAsked{Question: "How did revenue change?"}, msgs[0])
	answer, ok := msgs[1].(messages.AnswerReceived)
	require.True(t, ok)
	assert.Equal(t, "The revenue grew.", answer.Message.Content)

	v.Update(answer)
	view := v.View()
	assert.Contains(t, view, AssistantTag)
	assert.Contains(t, view, "revenue grew")
	assert.Contains(t, view, SourcesLabel)
	assert.Contains(t, view, "report.pdf")
	assert.NotContains(t, view, "Thinking...")
}

func TestView_NoSourcesLabelWithoutSources(t *testing.T) {
	v := newView(&MockConversation{})
	typeText(v, "hello")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	for _, msg := range runBatch(cmd) {
		v.Update(msg)
	}

	assert.NotContains(t, v.View(), SourcesLabel)
}

func TestView_EmptyQuestionIgnored(t *testing.T) {
	conv := &MockConversation{}
	v := newView(conv)
	typeText(v, "   ")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, conv.Messages())
	assert.Equal(t, "   ", v.Input())
}

func TestView_PendingRejectsSecondQuestion(t *testing.T) {
	conv := &MockConversation{}
	v := newView(conv)
	typeText(v, "first")
	_, first := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, first)

	typeText(v, "second")
	_, second := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, second)
	assert.Equal(t, "second", v.Input())
	assert.Len(t, conv.Messages(), 1)
}

func TestView_IgnoresKeysWhenBlurred(t *testing.T) {
	v := newView(&MockConversation{})
	v.Blur()

	typeText(v, "abc")

	assert.False(t, v.Focused())
	assert.Equal(t, "", v.Input())

	v.Focus()
	typeText(v, "abc")
	assert.Equal(t, "abc", v.Input())
}

func TestView_SpinnerTickOnlyWhilePending(t *testing.T) {
	v := newView(&MockConversation{})

	_, cmd := v.Update(spinner.TickMsg{})

	assert.Nil(t, cmd)
}

func TestView_SetInput(t *testing.T) {
	v := newView(&MockConversation{})

	v.SetInput("prefilled")

	assert.Equal(t, "prefilled", v.Input())
}

func TestView_NilConversation(t *testing.T) {
	v := NewView(nil, nil, nil, "notty")
	typeText(v, "hello")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Contains(t, v.View(), WelcomeTitle)
}

func TestView_SetDimensions(t *testing.T) {
	v := newView(&MockConversation{})

	v.SetDimensions(60, 30)

	assert.Equal(t, 60, v.viewport.Width)
	assert.Equal(t, 30-headerHeight-inputHeight-1, v.viewport.Height)

	v.SetDimensions(60, 2)
	assert.Equal(t, 3, v.viewport.Height)
}
