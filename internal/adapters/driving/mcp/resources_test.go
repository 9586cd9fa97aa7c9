package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleKeywordsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns categories as JSON", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Keywords: newKeywordService(t)})
		require.NoError(t, err)

		result, err := server.handleKeywordsResource(ctx, makeReadResourceRequest("dealwatch://keywords"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var cats []CategoryOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &cats))
		require.Len(t, cats, 2)
		assert.Equal(t, "M&A全般", cats[0].Name)
		assert.Contains(t, cats[1].Keywords, "事業譲渡")
	})

	t.Run("unknown URI", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Keywords: newKeywordService(t)})
		require.NoError(t, err)

		_, err = server.handleKeywordsResource(ctx, makeReadResourceRequest("dealwatch://other"))

		assert.Error(t, err)
	})
}
