package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/dealwatch/internal/core/domain"
)

// SearchNewsInput is the input schema for the search_news tool.
type SearchNewsInput struct {
	Company string `json:"company" jsonschema:"the company name to search M&A news for"`
}

// SearchNewsOutput is the output schema for the search_news tool.
type SearchNewsOutput struct {
	Query      string     `json:"query"`
	Status     string     `json:"status"`
	Message    string     `json:"message"`
	Candidates int        `json:"candidates"`
	Count      int        `json:"count"`
	Results    []NewsItem `json:"results"`
	Error      string     `json:"error,omitempty"`
}

// NewsItem represents a single search result.
type NewsItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet,omitempty"`
	Source      string `json:"source,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// registerTools registers the search tool with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_news",
		Description: "Search the last day of news for M&A coverage of a company",
	}, s.handleSearchNews)
}

// handleSearchNews handles the search_news tool invocation.
// A provider failure is reported in the output, not as a tool error.
func (s *Server) handleSearchNews(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchNewsInput,
) (*mcp.CallToolResult, SearchNewsOutput, error) {
	outcome, err := s.ports.Search.Search(ctx, input.Company)
	if err != nil {
		return nil, SearchNewsOutput{}, err
	}

	output := SearchNewsOutput{
		Query:      outcome.Query.String(),
		Status:     outcome.Status().String(),
		Message:    outcome.Status().Description(),
		Candidates: outcome.Candidates,
		Count:      len(outcome.Results),
		Results:    make([]NewsItem, len(outcome.Results)),
		Error:      outcome.ErrorMessage(),
	}

	for i := range outcome.Results {
		r := &outcome.Results[i]
		item := NewsItem{
			Title:    r.Title,
			Link:     r.Link,
			Snippet:  r.Snippet,
			Source:   r.DisplaySource(),
			ImageURL: r.ImageURL,
		}
		if r.PublishedAt != nil {
			item.PublishedAt = r.PublishedAt.Format(time.RFC3339)
		}
		output.Results[i] = item
	}

	return nil, output, nil
}

// ListKeywordsInput is the (empty) input schema for list_keywords.
type ListKeywordsInput struct{}

// AddKeywordInput is the input schema for add_keyword.
type AddKeywordInput struct {
	CategoryID string `json:"category_id" jsonschema:"the category id, e.g. ma or business"`
	Keyword    string `json:"keyword" jsonschema:"the keyword to add"`
}

// RemoveKeywordInput is the input schema for remove_keyword.
type RemoveKeywordInput struct {
	CategoryID string `json:"category_id" jsonschema:"the category id"`
	Keyword    string `json:"keyword" jsonschema:"the keyword to remove"`
}

// AddCategoryInput is the input schema for add_category.
type AddCategoryInput struct {
	Name string `json:"name" jsonschema:"the display name of the new category"`
}

// KeywordsOutput is the taxonomy after a keyword tool call.
type KeywordsOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Changed    bool             `json:"changed"`
}

// CategoryOutput represents one keyword category.
type CategoryOutput struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// registerKeywordTools registers the taxonomy tools with the MCP server.
func (s *Server) registerKeywordTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_keywords",
		Description: "List the keyword categories used to build M&A news queries",
	}, s.handleListKeywords)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_keyword",
		Description: "Add a keyword to a category",
	}, s.handleAddKeyword)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_keyword",
		Description: "Remove a keyword from a category",
	}, s.handleRemoveKeyword)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_category",
		Description: "Create an empty keyword category",
	}, s.handleAddCategory)
}

func (s *Server) handleListKeywords(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListKeywordsInput,
) (*mcp.CallToolResult, KeywordsOutput, error) {
	return nil, keywordsOutput(s.ports.Keywords.List(), false), nil
}

func (s *Server) handleAddKeyword(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddKeywordInput,
) (*mcp.CallToolResult, KeywordsOutput, error) {
	if err := s.requireCategory(input.CategoryID); err != nil {
		return nil, KeywordsOutput{}, err
	}
	before := s.ports.Keywords.List()
	after, err := s.ports.Keywords.AddKeyword(ctx, input.CategoryID, input.Keyword)
	if err != nil {
		return nil, KeywordsOutput{}, err
	}
	return nil, keywordsOutput(after, !domain.CategoriesEqual(before, after)), nil
}

func (s *Server) handleRemoveKeyword(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RemoveKeywordInput,
) (*mcp.CallToolResult, KeywordsOutput, error) {
	if err := s.requireCategory(input.CategoryID); err != nil {
		return nil, KeywordsOutput{}, err
	}
	before := s.ports.Keywords.List()
	after, err := s.ports.Keywords.RemoveKeyword(ctx, input.CategoryID, input.Keyword)
	if err != nil {
		return nil, KeywordsOutput{}, err
	}
	return nil, keywordsOutput(after, !domain.CategoriesEqual(before, after)), nil
}

func (s *Server) handleAddCategory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddCategoryInput,
) (*mcp.CallToolResult, KeywordsOutput, error) {
	before := s.ports.Keywords.List()
	after, err := s.ports.Keywords.AddCategory(ctx, input.Name)
	if err != nil {
		return nil, KeywordsOutput{}, err
	}
	return nil, keywordsOutput(after, !domain.CategoriesEqual(before, after)), nil
}

func (s *Server) requireCategory(id string) error {
	if _, ok := domain.FindCategory(s.ports.Keywords.List(), id); !ok {
		return fmt.Errorf("%w: category %q", domain.ErrNotFound, id)
	}
	return nil
}

func keywordsOutput(cats []domain.KeywordCategory, changed bool) KeywordsOutput {
	out := KeywordsOutput{
		Categories: make([]CategoryOutput, len(cats)),
		Changed:    changed,
	}
	for i, c := range cats {
		kws := c.Keywords
		if kws == nil {
			kws = []string{}
		}
		out.Categories[i] = CategoryOutput{ID: c.ID, Name: c.Name, Keywords: kws}
	}
	return out
}
