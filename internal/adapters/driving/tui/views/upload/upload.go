// Package upload provides the upload dialog shown over the main layout.
//
// Terminals deliver dropped files as a bracketed paste of their paths, so a
// paste is treated as a drop: it hovers the drop zone and then releases.
package upload

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
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
	// Title heads the dialog.
	Title = "Upload Document"
	// DropText is shown in the idle drop zone.
	DropText = "Drag & drop a PDF here"
	// DropHint explains the keyboard alternative.
	DropHint = "or type a path and press enter"
	// HoverText is shown while files hover over the drop zone.
	HoverText = "Release to upload"
	// InFlightText is shown during a transfer.
	InFlightText = "Uploading & indexing..."
	// InFlightHint sits under InFlightText.
	InFlightHint = "This may take a moment"
	// NotPDFHint is shown after a drop or path without a PDF.
	NotPDFHint = "Only PDF files are accepted."
	// RetryHint is shown under a failure.
	RetryHint = "Press enter to try again"
)

// modalWidth is the outer width of the dialog.
const modalWidth = 56

// View is the upload dialog.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	uploader driving.UploadController

	path    *input.Field
	spinner spinner.Model
	hint    string
	width   int
	height  int
}

// NewView creates the upload dialog.
func NewView(s *styles.Styles, km *keymap.KeyMap, uploader driving.UploadController) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = s.Title

	path := input.NewPathField(s)
	path.SetWidth(modalWidth - 6)

	return &View{
		styles:   s,
		keymap:   km,
		uploader: uploader,
		path:     path,
		spinner:  sp,
		width:    80,
		height:   24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Open starts a session and returns a command that reports its close.
// It returns nil when the dialog is already open.
func (v *View) Open() tea.Cmd {
	if v.uploader == nil {
		return nil
	}
	if err := v.uploader.Open(); err != nil {
		logger.Debug("opening upload dialog: %v", err)
		return nil
	}
	v.hint = ""
	v.path.Reset()
	v.path.Focus()

	done := v.uploader.Done()
	return tea.Batch(
		v.path.Init(),
		func() tea.Msg {
			<-done
			return messages.UploadClosed{}
		},
	)
}

// IsOpen reports whether the dialog is visible.
func (v *View) IsOpen() bool {
	return v.uploader != nil && v.uploader.Snapshot().Phase.IsOpen()
}

// Update handles messages for the upload dialog.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !v.IsOpen() {
			return v, nil
		}
		return v.handleKeyMsg(msg)

	case spinner.TickMsg:
		if v.uploader == nil || v.uploader.Snapshot().Phase != domain.PhaseInFlight {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.UploadClosed:
		v.hint = ""
		v.path.Reset()
		return v, nil
	}

	var cmd tea.Cmd
	v.path, cmd = v.path.Update(msg)
	return v, cmd
}

// handleKeyMsg routes a key according to the session phase.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	phase := v.uploader.Snapshot().Phase
	key := msg.String()

	if keymap.Matches(key, v.keymap.Close) {
		if err := v.uploader.Close(); err != nil {
			logger.Debug("closing upload dialog: %v", err)
		}
		return v, nil
	}

	switch phase {
	case domain.PhaseFailed:
		if keymap.Matches(key, v.keymap.Retry) {
			if err := v.uploader.Retry(); err != nil {
				logger.Debug("retrying upload: %v", err)
			}
			v.path.Focus()
		}
		return v, nil

	case domain.PhaseAwaitingInput, domain.PhaseDragHover:
		if msg.Paste {
			return v, v.drop(string(msg.Runes))
		}
		if keymap.Matches(key, v.keymap.Choose) {
			return v, v.choose(strings.TrimSpace(v.path.Value()))
		}
		v.hint = ""
		var cmd tea.Cmd
		v.path, cmd = v.path.Update(msg)
		return v, cmd
	}

	return v, nil
}

// drop hovers the pasted files over the drop zone and releases them.
func (v *View) drop(text string) tea.Cmd {
	paths := SplitPaths(text)
	files := make([]domain.File, 0, len(paths))
	for _, p := range paths {
		f, err := domain.FileFromPath(p)
		if err != nil {
			logger.Debug("ignoring dropped path %q: %v", p, err)
			continue
		}
		files = append(files, f)
	}

	if err := v.uploader.DragEnter(len(files)); err != nil {
		v.hint = NotPDFHint
		return nil
	}
	transfer, err := v.uploader.Drop(files)
	if err != nil {
		if errors.Is(err, domain.ErrNoCandidates) {
			v.hint = NotPDFHint
		}
		if leaveErr := v.uploader.DragLeave(); leaveErr != nil {
			logger.Debug("leaving drop zone: %v", leaveErr)
		}
		return nil
	}
	return v.run(transfer)
}

// choose starts the transfer of a typed path.
func (v *View) choose(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	file, err := domain.FileFromPath(expandHome(path))
	if err != nil {
		v.hint = "File not found."
		return nil
	}
	transfer, err := v.uploader.Choose(file)
	if err != nil {
		if errors.Is(err, domain.ErrNotPDF) {
			v.hint = NotPDFHint
		}
		return nil
	}
	return v.run(transfer)
}

// run executes a started transfer and ticks the spinner meanwhile.
func (v *View) run(transfer domain.Transfer) tea.Cmd {
	v.hint = ""
	v.path.Blur()
	name := ""
	if f := v.uploader.Snapshot().File; f != nil {
		name = f.Name
	}
	return tea.Batch(
		v.spinner.Tick,
		func() tea.Msg {
			err := transfer(context.Background())
			return messages.UploadFinished{Name: name, Err: err}
		},
	)
}

// View renders the dialog, or nothing when it is closed.
func (v *View) View() string {
	if v.uploader == nil {
		return ""
	}
	session := v.uploader.Snapshot()
	if !session.Phase.IsOpen() {
		return ""
	}

	inner := modalWidth - 6
	var b strings.Builder
	b.WriteString(v.styles.Title.Render(Title))
	b.WriteString("\n\n")

	switch session.Phase {
	case domain.PhaseAwaitingInput:
		b.WriteString(v.styles.DropZone.Width(inner).Render(
			v.styles.Normal.Render(DropText) + "\n" + v.styles.Muted.Render(DropHint)))
		b.WriteString("\n\n")
		b.WriteString(v.path.View())
	case domain.PhaseDragHover:
		b.WriteString(v.styles.DropZoneActive.Width(inner).Render(v.styles.Title.Render(HoverText)))
	case domain.PhaseInFlight:
		b.WriteString(v.spinner.View() + " " + v.styles.Normal.Render(InFlightText))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(InFlightHint))
	case domain.PhaseSucceeded:
		b.WriteString(v.styles.Success.Width(inner).Render("✓ " + session.Message))
	case domain.PhaseFailed:
		b.WriteString(v.styles.Error.Width(inner).Render("✗ " + session.Message))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render(RetryHint))
	}

	if v.hint != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Warning.Render(v.hint))
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[esc] close"))

	return v.styles.Modal.Width(modalWidth - 2).Render(b.String())
}

// Overlay centres the dialog over the given background size.
func (v *View) Overlay() string {
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, v.View())
}

// SetDimensions sets the size of the area the dialog is centred in.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Hint returns the last validation hint shown under the drop zone.
func (v *View) Hint() string {
	return v.hint
}

// SplitPaths splits pasted text into file paths. Paths are separated by
// whitespace; quotes and backslash escapes keep spaces inside a path.
func SplitPaths(text string) []string {
	var (
		paths   []string
		current strings.Builder
		quote   rune
		escaped bool
		inPath  bool
	)
	flush := func() {
		if inPath {
			paths = append(paths, strings.TrimPrefix(current.String(), "file://"))
		}
		current.Reset()
		inPath = false
	}

	for _, r := range text {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inPath = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inPath = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			current.WriteRune(r)
			inPath = true
		}
	}
	flush()
	return paths
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}
