package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/kbbot/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for kbbot resources.
	uriScheme = "kb://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "titles",
		Name:        "titles",
		Description: "Titles of all indexed knowledge base documents",
		MIMEType:    "application/json",
	}, s.handleTitlesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "status",
		Name:        "status",
		Description: "When the index was built and how many documents it holds",
		MIMEType:    "application/json",
	}, s.handleStatusResource)
}

// handleTitlesResource returns the indexed titles as a JSON array.
func (s *Server) handleTitlesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	titles, err := s.ports.Search.Titles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing titles: %w", err)
	}

	data, err := json.MarshalIndent(titles, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling titles: %w", err)
	}

	return jsonResult(req.Params.URI, data), nil
}

// handleStatusResource describes the stored index.
func (s *Server) handleStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Index == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	type statusInfo struct {
		Indexed      bool   `json:"indexed"`
		BuildID      string `json:"build_id,omitempty"`
		RootID       string `json:"root_id,omitempty"`
		BuiltAt      string `json:"built_at,omitempty"`
		UniqueTitles int    `json:"unique_titles"`
		Documents    int    `json:"documents"`
	}

	var info statusInfo
	status, err := s.ports.Index.Status(ctx)
	switch {
	case errors.Is(err, domain.ErrNoIndex):
	case err != nil:
		return nil, fmt.Errorf("reading index status: %w", err)
	default:
		info = statusInfo{
			Indexed:      true,
			BuildID:      status.BuildID,
			RootID:       status.RootID,
			BuiltAt:      status.BuiltAt.UTC().Format(time.RFC3339),
			UniqueTitles: status.UniqueTitles,
			Documents:    status.Documents,
		}
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling status: %w", err)
	}

	return jsonResult(req.Params.URI, data), nil
}

func jsonResult(uri string, data []byte) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}
}
