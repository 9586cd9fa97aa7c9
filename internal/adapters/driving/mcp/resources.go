package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for dealwatch resources.
	uriScheme = "dealwatch://"

	keywordsURI = uriScheme + "keywords"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         keywordsURI,
		Name:        "keywords",
		Description: "Keyword categories used to build M&A news queries",
		MIMEType:    "application/json",
	}, s.handleKeywordsResource)
}

// handleKeywordsResource returns the keyword taxonomy as JSON.
func (s *Server) handleKeywordsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if req.Params.URI != keywordsURI {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	out := keywordsOutput(s.ports.Keywords.List(), false)
	data, err := json.MarshalIndent(out.Categories, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling keywords: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
