package cli

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/documind/internal/adapters/driving/mcp"
)

var (
	mcpPort int
	mcpHost string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Expose DocuMind to AI assistants through the Model Context Protocol.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Serve the DocuMind tools over MCP.

Tools:
  list_documents   List indexed documents
  upload_document  Upload a local PDF by path
  delete_document  Remove a document by name
  ask              Answer a question from the documents

Resources:
  documind://documents     Indexed documents as JSON
  documind://conversation  This session's questions and answers

The server speaks JSON-RPC over stdio unless --port is given, in which
case it serves streamable HTTP.`,
	Example: `  documind mcp serve
  documind mcp serve --port 8080

  # assistant configuration
  {"mcpServers": {"documind": {"command": "documind", "args": ["mcp", "serve"]}}}`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "localhost", "HTTP listen host")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Registry:     svc.Registry,
		Uploader:     svc.Uploader,
		Conversation: svc.Conversation,
	}, version)
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	if mcpPort <= 0 {
		return server.Run(cmd.Context())
	}

	addr := net.JoinHostPort(mcpHost, strconv.Itoa(mcpPort))
	cmd.PrintErrf("MCP server listening on http://%s\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}
