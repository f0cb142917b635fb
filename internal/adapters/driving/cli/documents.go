package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/documind/internal/core/domain"
)

var documentsCmd = &cobra.Command{
	Use:     "documents",
	Aliases: []string{"docs"},
	Short:   "Manage indexed documents",
	Long:    `List the documents in the service's index or delete one of them.`,
	RunE:    runDocumentsList,
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsList,
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a document from the index",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsDelete,
}

func init() {
	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}

	// Refresh swallows failures and keeps the previous view.
	svc.Registry.Refresh(cmd.Context())
	if !svc.Registry.Loaded() {
		return errors.New("failed to load documents (is the service running?)")
	}

	docs := svc.Registry.Documents()
	if len(docs) == 0 {
		cmd.Println("No documents uploaded yet.")
		return nil
	}

	width := 0
	for _, d := range docs {
		width = max(width, len(d.Name))
	}
	for _, d := range docs {
		cmd.Printf("  %-*s  %s\n", width, d.Name, domain.FormatSize(d.Size))
	}
	cmd.Printf("\nTotal: %d documents\n", len(docs))
	return nil
}

func runDocumentsDelete(cmd *cobra.Command, args []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}

	name := args[0]
	if err := svc.Registry.Delete(cmd.Context(), name); err != nil {
		if detail, ok := domain.Detail(err); ok {
			return fmt.Errorf("failed to delete %s: %s", name, detail)
		}
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}

	cmd.Printf("Deleted %s\n", name)
	return nil
}
