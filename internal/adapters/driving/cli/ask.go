package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/documind/internal/core/domain"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your documents",
	Long: `Ask a single question and print the answer with the documents it came from.

The command exits non-zero when the question fails.`,
	Example: `  documind ask "What were the key findings?"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}

	question := strings.Join(args, " ")
	reply, err := svc.Conversation.Submit(cmd.Context(), question)
	if err != nil {
		return err
	}

	if reply.IsErrorReply() {
		return errors.New(strings.TrimPrefix(reply.Content, domain.ErrorReplyPrefix))
	}
	printAnswer(cmd, reply)
	return nil
}

// printAnswer prints an answer followed by its sources.
func printAnswer(cmd *cobra.Command, reply domain.Message) {
	cmd.Println(reply.Content)
	if reply.HasSources() {
		cmd.Printf("\nSources: %s\n", strings.Join(reply.Sources, ", "))
	}
}
