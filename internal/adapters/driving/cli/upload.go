package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/documind/internal/core/domain"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]...",
	Short: "Upload a PDF document",
	Long: `Upload a PDF document to the service's index.

When several files are given the first PDF is uploaded and the rest are
ignored, the way a drop onto the upload dialog behaves.

With --watch, documind keeps running and uploads every PDF that appears in
the directory until interrupted.`,
	Example: `  documind upload report.pdf
  documind upload --watch ~/Documents/inbox`,
	RunE: runUpload,
}

var (
	watchDir     string
	showProgress bool
)

func init() {
	uploadCmd.Flags().StringVarP(&watchDir, "watch", "w", "", "Watch a directory and upload new PDFs")
	uploadCmd.Flags().BoolVar(&showProgress, "progress", true, "Show upload progress")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if watchDir == "" && len(args) == 0 {
		return errors.New("requires at least one file or --watch")
	}

	svc, err := requireServices()
	if err != nil {
		return err
	}

	if showProgress {
		setProgressOutput(cmd.ErrOrStderr())
		defer setProgressOutput(nil)
	}

	if watchDir != "" {
		return runWatch(cmd, svc)
	}

	files := make([]domain.File, 0, len(args))
	for _, path := range args {
		f, err := domain.FileFromPath(path)
		if err != nil {
			cmd.PrintErrf("Skipping %s: %v\n", path, err)
			continue
		}
		files = append(files, f)
	}

	if err := svc.Uploader.Open(); err != nil {
		return fmt.Errorf("starting upload: %w", err)
	}
	// Nobody watches the confirmation here, so skip the dismiss delay.
	defer func() { _ = svc.Uploader.Close() }()

	transfer, err := svc.Uploader.Drop(files)
	if err != nil {
		if errors.Is(err, domain.ErrNoCandidates) {
			return errors.New("no PDF files to upload (only .pdf files are accepted)")
		}
		return err
	}

	err = transfer(cmd.Context())
	session := svc.Uploader.Snapshot()
	if err != nil {
		return errors.New(session.Message)
	}
	cmd.Println(session.Message)
	return nil
}

// runWatch uploads PDFs appearing in watchDir until interrupted.
func runWatch(cmd *cobra.Command, svc *Services) error {
	if svc.Watcher == nil {
		return errors.New("folder watching not available")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for new PDFs (Ctrl+C to stop)\n", watchDir)
	err := svc.Watcher.Run(ctx, watchDir, func(name string, err error) {
		if err != nil {
			msg := err.Error()
			if detail, ok := domain.Detail(err); ok {
				msg = detail
			}
			cmd.PrintErrf("✗ %s: %s\n", name, msg)
			return
		}
		cmd.Printf("✓ %s uploaded\n", name)
	})
	if err != nil {
		return fmt.Errorf("watching %s: %w", watchDir, err)
	}
	return nil
}
