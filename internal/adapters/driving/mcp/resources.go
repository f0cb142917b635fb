package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// URIScheme is the custom URI scheme for DocuMind resources.
	uriScheme = "documind://"

	documentsURI = uriScheme + "documents"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         documentsURI,
		Name:        "documents",
		Description: "Documents currently indexed by the service",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "conversation",
		Name:        "conversation",
		Description: "Questions and answers exchanged in this session",
		MIMEType:    "application/json",
	}, s.handleConversationResource)
}

// handleDocumentsResource returns the registry view, refreshing it first.
// A failed refresh serves the last known view.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	s.ports.Registry.Refresh(ctx)

	type docInfo struct {
		Name string `json:"name"`
		Size int64  `json:"size"`
	}

	docs := s.ports.Registry.Documents()
	infos := make([]docInfo, len(docs))
	for i, d := range docs {
		infos[i] = docInfo{Name: d.Name, Size: d.Size}
	}

	return jsonResult(req.Params.URI, infos)
}

// handleConversationResource returns the session transcript.
func (s *Server) handleConversationResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResult(req.Params.URI, s.ports.Conversation.Messages())
}

// jsonResult marshals v as the single content of a resource read.
func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
