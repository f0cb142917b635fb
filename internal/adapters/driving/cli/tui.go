package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/documind/internal/adapters/driving/tui"
	"github.com/custodia-labs/documind/internal/logger"
)

// markdownStyle selects the glamour style for answers; empty picks one
// from the terminal background.
var markdownStyle string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for DocuMind.

The TUI shows your documents in a sidebar next to the chat. Drag a PDF
onto the upload dialog or type its path to index it.

Controls:
  Tab      - Switch between chat and documents
  Enter    - Send question
  Ctrl+O   - Upload a PDF
  ↑/k, ↓/j - Navigate documents
  d        - Delete selected document
  Esc      - Close the upload dialog
  Ctrl+C   - Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&markdownStyle, "style", "", "Markdown style for answers (dark, light, notty)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	svc, err := requireServices()
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs go to a file meanwhile.
	if svc.LogFile != "" {
		if err := logger.SetFile(svc.LogFile); err != nil {
			logger.Warn("logging to %s: %v", svc.LogFile, err)
		} else {
			defer func() { _ = logger.Close() }()
		}
	}
	logger.Section("tui")

	app, err := tui.NewApp(tui.NewPorts(svc.Registry, svc.Uploader, svc.Conversation))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())
	if markdownStyle != "" {
		app.WithMarkdownStyle(markdownStyle)
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
