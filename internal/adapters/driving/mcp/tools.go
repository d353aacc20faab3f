package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/kbbot/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Query string `json:"query" jsonschema:"a document title or question to look up"`
	HTML  bool   `json:"html,omitempty" jsonschema:"render the answer as an HTML fragment instead of plain text"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer string `json:"answer"`
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"a document title or question to look up"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID  string `json:"document_id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	LastUpdated string `json:"last_updated,omitempty"`
	Snippet     string `json:"snippet,omitempty"`
}

// TitlesInput is the (empty) input schema for the list_titles tool.
type TitlesInput struct{}

// TitlesOutput is the output schema for the list_titles tool.
type TitlesOutput struct {
	Titles []string `json:"titles"`
	Count  int      `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Find knowledge base documents matching a title or question and return a formatted answer",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Find knowledge base documents matching a title or question",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_titles",
		Description: "List the title of every indexed knowledge base document",
	}, s.handleListTitles)
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	format := domain.AnswerText
	if input.HTML {
		format = domain.AnswerHTML
	}

	answer, err := s.ports.Search.Ask(ctx, input.Query, format)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: answer}},
	}, AskOutput{Answer: answer}, nil
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	results, err := s.ports.Search.Search(ctx, input.Query)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		r := SearchResultOutput{
			DocumentID: results[i].ID,
			Title:      results[i].Name,
			URL:        results[i].URL,
			Snippet:    results[i].Snippet,
		}
		if results[i].LastUpdated != nil {
			r.LastUpdated = results[i].LastUpdated.UTC().Format(time.RFC3339)
		}
		output.Results[i] = r
	}

	return nil, output, nil
}

func (s *Server) handleListTitles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ TitlesInput,
) (*mcp.CallToolResult, TitlesOutput, error) {
	titles, err := s.ports.Search.Titles(ctx)
	if err != nil {
		return nil, TitlesOutput{}, err
	}
	return nil, TitlesOutput{Titles: titles, Count: len(titles)}, nil
}
