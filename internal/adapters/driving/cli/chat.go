package cli

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/documind/internal/core/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start a line-based conversation",
	Long: `Read questions from standard input, one per line, and print each answer.

Blank lines are ignored. The conversation ends at end of input or when
"exit" or "quit" is entered.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}

	interactive := isTerminal(os.Stdin)
	if interactive {
		cmd.Println("DocuMind Chat. Ask anything about your documents.")
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		if interactive {
			cmd.Print("> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}

		reply, err := svc.Conversation.Submit(cmd.Context(), line)
		if errors.Is(err, domain.ErrEmptyQuestion) {
			continue
		}
		if err != nil {
			return err
		}
		if reply.IsErrorReply() {
			cmd.PrintErrln(reply.Content)
			continue
		}
		printAnswer(cmd, reply)
		cmd.Println()

		if err := cmd.Context().Err(); err != nil {
			return nil
		}
	}
	return scanner.Err()
}
