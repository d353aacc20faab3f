package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kbbot/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestServer_handleTitlesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns titles as json", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{titles: []string{"Alpha", "Beta"}})

		result, err := server.handleTitlesResource(ctx, readRequest("kb://titles"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "kb://titles", result.Contents[0].URI)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var titles []string
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &titles))
		assert.Equal(t, []string{"Alpha", "Beta"}, titles)
	})

	t.Run("propagates errors", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{err: errors.New("boom")})

		_, err := server.handleTitlesResource(ctx, readRequest("kb://titles"))
		assert.ErrorContains(t, err, "boom")
	})
}

func TestServer_handleStatusResource(t *testing.T) {
	ctx := context.Background()

	t.Run("without index service", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{})

		_, err := server.handleStatusResource(ctx, readRequest("kb://status"))
		assert.Error(t, err)
	})

	t.Run("reports the stored index", func(t *testing.T) {
		built := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		server, err := NewServer(&Ports{
			Search: &mockSearchService{},
			Index: &mockIndexService{status: &domain.IndexStatus{
				BuildID:      "b-1",
				RootID:       "root",
				BuiltAt:      built,
				UniqueTitles: 3,
				Documents:    4,
			}},
		})
		require.NoError(t, err)

		result, err := server.handleStatusResource(ctx, readRequest("kb://status"))
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &got))
		assert.Equal(t, true, got["indexed"])
		assert.Equal(t, "b-1", got["build_id"])
		assert.Equal(t, "2024-01-02T03:04:05Z", got["built_at"])
		assert.EqualValues(t, 3, got["unique_titles"])
		assert.EqualValues(t, 4, got["documents"])
	})

	t.Run("no index yet", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Search: &mockSearchService{},
			Index:  &mockIndexService{err: domain.ErrNoIndex},
		})
		require.NoError(t, err)

		result, err := server.handleStatusResource(ctx, readRequest("kb://status"))
		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, `"indexed": false`)
	})

	t.Run("other errors propagate", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Search: &mockSearchService{},
			Index:  &mockIndexService{err: domain.ErrPayloadCorrupt},
		})
		require.NoError(t, err)

		_, err = server.handleStatusResource(ctx, readRequest("kb://status"))
		assert.ErrorIs(t, err, domain.ErrPayloadCorrupt)
	})
}
