package memtools

import (
	"context"
	"fmt"

	"github.com/dreyes/memtrail/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// SearchTool handles the search_commands MCP tool.
type SearchTool struct {
	store *memory.Store
}

// NewSearchTool creates a SearchTool.
func NewSearchTool(store *memory.Store) *SearchTool {
	return &SearchTool{store: store}
}

// Definition returns the MCP tool definition for search_commands.
func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("search_commands",
		mcp.WithDescription(
			"Search stored commands by case-insensitive substring across text and tags. "+
				"Newest matches first, capped at 10 results.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Substring to look for"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max results (default: 10, max: 10)"),
		),
	)
}

// Handle processes the search_commands tool call.
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return errResult("query_required")
	}
	limit := intArg(req, "limit", 10)

	results, err := t.store.Search(query, limit)
	if err != nil {
		return nil, fmt.Errorf("search commands: %w", err)
	}
	return jsonResult(map[string]any{
		"query":   query,
		"results": results,
	})
}
