package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the service URL and upload behaviour.

Use subcommands to change one setting or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsURLCmd = &cobra.Command{
	Use:   "url [url]",
	Short: "Set the service URL",
	Long: `Set the base URL of the DocuMind service, including the /api prefix.

The DOCUMIND_API_URL environment variable and the --api-url flag both
take precedence over this setting.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsURL,
}

var settingsDelayCmd = &cobra.Command{
	Use:   "delay [duration]",
	Short: "Set how long upload confirmations stay visible",
	Long: `Set the delay before a successful upload dialog closes itself.

Accepts milliseconds (1500) or a Go duration (1.5s).`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsDelay,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsURLCmd)
	settingsCmd.AddCommand(settingsDelayCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Service]")
	cmd.Printf("  API URL: %s\n", settings.APIURL)
	cmd.Println()

	cmd.Println("[Upload]")
	cmd.Printf("  Dismiss delay: %dms\n", settings.DismissDelay.Milliseconds())
	cmd.Printf("  Watch rate: %g/s\n", settings.WatchRate)
	cmd.Println()

	cmd.Println("[Transcript]")
	if settings.Transcript.Enabled {
		cmd.Printf("  Enabled: yes\n")
		path := settings.Transcript.Path
		if path == "" {
			path = "(default)"
		}
		cmd.Printf("  Path: %s\n", path)
	} else {
		cmd.Printf("  Enabled: no\n")
	}

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	current, err := settingsService.Get()
	if err != nil {
		defaults := settingsService.GetDefaults()
		current = &defaults
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("DocuMind Setup")
	cmd.Println("==============")
	cmd.Println()

	cmd.Printf("Service URL [%s]: ", current.APIURL)
	if input := readLine(reader); input != "" {
		if err := settingsService.SetAPIURL(input); err != nil {
			return fmt.Errorf("failed to set url: %w", err)
		}
	}

	cmd.Printf("Upload dismiss delay [%dms]: ", current.DismissDelay.Milliseconds())
	if input := readLine(reader); input != "" {
		d, err := parseDelay(input)
		if err != nil {
			return err
		}
		if err := settingsService.SetDismissDelay(d); err != nil {
			return fmt.Errorf("failed to set delay: %w", err)
		}
	}

	cmd.Println()
	cmd.Println("Settings saved.")
	return nil
}

func runSettingsURL(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.SetAPIURL(args[0]); err != nil {
		return fmt.Errorf("failed to set url: %w", err)
	}
	cmd.Printf("API URL set to %s\n", args[0])
	return nil
}

func runSettingsDelay(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	d, err := parseDelay(args[0])
	if err != nil {
		return err
	}
	if err := settingsService.SetDismissDelay(d); err != nil {
		return fmt.Errorf("failed to set delay: %w", err)
	}
	cmd.Printf("Dismiss delay set to %dms\n", d.Milliseconds())
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// parseDelay accepts bare milliseconds or a time.Duration string.
func parseDelay(input string) (time.Duration, error) {
	if ms, err := strconv.Atoi(input); err == nil {
		if ms < 0 {
			return 0, fmt.Errorf("invalid delay %q: must not be negative", input)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("invalid delay %q: use milliseconds or a duration like 1.5s", input)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid delay %q: must not be negative", input)
	}
	return d, nil
}
