// Package cli provides the cobra command tree for documind.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/documind/internal/core/ports/driving"
	"github.com/custodia-labs/documind/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

// Services aggregates the controllers commands drive. Close releases
// whatever the builder opened and may be nil.
type Services struct {
	Registry     driving.DocumentRegistry
	Uploader     driving.UploadController
	Conversation driving.ConversationController
	Watcher      driving.FolderWatcher

	// LogFile receives logs while the TUI runs. Empty keeps stderr.
	LogFile string

	Close func() error
}

// BuildOptions are passed to the service builder.
type BuildOptions struct {
	// APIURL overrides the configured service URL when set.
	APIURL string

	// Progress receives upload progress.
	Progress func(name string, sent, total int64)
}

// Builder creates the services on first use.
type Builder func(opts BuildOptions) (*Services, error)

var (
	settingsService driving.SettingsService
	builder         Builder
	built           *Services

	// progressOut receives upload progress while an upload command runs.
	progressMu  sync.Mutex
	progressOut io.Writer
)

var (
	verbose bool
	apiURL  string
)

var rootCmd = &cobra.Command{
	Use:   "documind",
	Short: "Chat with your PDF documents",
	Long: `documind is a terminal client for the DocuMind document Q&A service.

Upload PDF documents to the service's index, then ask questions and get
answers grounded in those documents, with the documents they came from.

Run without a subcommand in a terminal to open the interactive UI.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Service URL (overrides settings)")
}

// SetSettingsService sets the settings service used by the settings commands.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetBuilder sets the function that creates services on first use.
func SetBuilder(b Builder) {
	builder = b
}

// SetServices installs ready-made services, bypassing the builder.
func SetServices(s *Services) {
	built = s
}

// Execute runs the root command and releases the services afterwards.
func Execute() error {
	defer closeServices()
	return rootCmd.Execute()
}

// runRoot opens the TUI on a terminal and prints help otherwise.
func runRoot(cmd *cobra.Command, args []string) error {
	if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		return runTUI(cmd, args)
	}
	return cmd.Help()
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// requireServices returns the services, building them on first use.
func requireServices() (*Services, error) {
	if built != nil {
		return built, nil
	}
	if builder == nil {
		return nil, errors.New("services not configured")
	}
	s, err := builder(BuildOptions{APIURL: apiURL, Progress: reportProgress})
	if err != nil {
		return nil, fmt.Errorf("initialising services: %w", err)
	}
	built = s
	return built, nil
}

// closeServices releases services created by the builder.
func closeServices() {
	if built == nil || built.Close == nil {
		return
	}
	if err := built.Close(); err != nil {
		logger.Warn("closing services: %v", err)
	}
}

// setProgressOutput directs upload progress to w; nil silences it.
func setProgressOutput(w io.Writer) {
	progressMu.Lock()
	defer progressMu.Unlock()
	progressOut = w
}

// reportProgress prints a progress line, overwriting the previous one.
func reportProgress(name string, sent, total int64) {
	progressMu.Lock()
	defer progressMu.Unlock()
	if progressOut == nil {
		return
	}
	if total > 0 {
		fmt.Fprintf(progressOut, "\r%s: %3d%%", name, sent*100/total)
		if sent >= total {
			fmt.Fprintln(progressOut)
		}
		return
	}
	fmt.Fprintf(progressOut, "\r%s: %d bytes", name, sent)
}
