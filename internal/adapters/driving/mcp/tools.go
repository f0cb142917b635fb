package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/documind/internal/core/domain"
)

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput represents a single indexed document.
type DocumentOutput struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// DeleteDocumentInput is the input schema for the delete_document tool.
type DeleteDocumentInput struct {
	Name string `json:"name" jsonschema:"the file name of the document to delete"`
}

// DeleteDocumentOutput is the output schema for the delete_document tool.
type DeleteDocumentOutput struct {
	Deleted string `json:"deleted"`
}

// UploadDocumentInput is the input schema for the upload_document tool.
type UploadDocumentInput struct {
	Path string `json:"path" jsonschema:"absolute path of a local PDF file"`
}

// UploadDocumentOutput is the output schema for the upload_document tool.
type UploadDocumentOutput struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the uploaded documents"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the PDF documents indexed by DocuMind",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_document",
		Description: "Remove a document from the DocuMind index",
	}, s.handleDeleteDocument)

	if s.ports.Uploader != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "upload_document",
			Description: "Upload and index a local PDF file",
		}, s.handleUploadDocument)
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask a question answered from the indexed documents",
	}, s.handleAsk)
}

// handleListDocuments refreshes the registry and returns its view.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	s.ports.Registry.Refresh(ctx)
	if !s.ports.Registry.Loaded() {
		return nil, ListDocumentsOutput{}, errors.New("failed to load documents (is the service running?)")
	}

	docs := s.ports.Registry.Documents()
	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i, d := range docs {
		output.Documents[i] = DocumentOutput{Name: d.Name, Size: d.Size}
	}

	return nil, output, nil
}

// handleDeleteDocument deletes one document by name.
func (s *Server) handleDeleteDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteDocumentInput,
) (*mcp.CallToolResult, DeleteDocumentOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, DeleteDocumentOutput{}, errors.New("name is required")
	}

	if err := s.ports.Registry.Delete(ctx, name); err != nil {
		return nil, DeleteDocumentOutput{}, describe(err)
	}

	return nil, DeleteDocumentOutput{Deleted: name}, nil
}

// handleUploadDocument uploads the PDF at the given path.
func (s *Server) handleUploadDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadDocumentInput,
) (*mcp.CallToolResult, UploadDocumentOutput, error) {
	file, err := domain.FileFromPath(input.Path)
	if err != nil {
		return nil, UploadDocumentOutput{}, fmt.Errorf("reading %s: %w", input.Path, err)
	}

	if err := s.ports.Uploader.Open(); err != nil {
		return nil, UploadDocumentOutput{}, fmt.Errorf("starting upload: %w", err)
	}
	defer func() { _ = s.ports.Uploader.Close() }()

	transfer, err := s.ports.Uploader.Choose(file)
	if err != nil {
		return nil, UploadDocumentOutput{}, err
	}

	err = transfer(ctx)
	session := s.ports.Uploader.Snapshot()
	if err != nil {
		return nil, UploadDocumentOutput{}, errors.New(session.Message)
	}

	return nil, UploadDocumentOutput{Name: file.Name, Message: session.Message}, nil
}

// handleAsk submits a question and waits for the answer.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	reply, err := s.ports.Conversation.Submit(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}
	if reply.IsErrorReply() {
		return nil, AskOutput{}, errors.New(strings.TrimPrefix(reply.Content, domain.ErrorReplyPrefix))
	}

	return nil, AskOutput{Answer: reply.Content, Sources: reply.Sources}, nil
}

// describe prefers the service's detail over the wrapped error text.
func describe(err error) error {
	if detail, ok := domain.Detail(err); ok {
		return errors.New(detail)
	}
	return err
}
