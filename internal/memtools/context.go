package memtools

import (
	"context"
	"fmt"

	"github.com/dreyes/memtrail/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// ContextTool handles the memory_context MCP tool.
type ContextTool struct {
	store *memory.Store
}

// NewContextTool creates a ContextTool.
func NewContextTool(store *memory.Store) *ContextTool {
	return &ContextTool{store: store}
}

// Definition returns the MCP tool definition for memory_context.
func (t *ContextTool) Definition() mcp.Tool {
	return mcp.NewTool("memory_context",
		mcp.WithDescription(
			"Retrieve recent user commands for grounding. Returns the raw instruction "+
				"texts plus full items with tags and timestamps.",
		),
		mcp.WithString("token",
			mcp.Description("Ignored in single-user mode; accepted for client compatibility"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Number of recent commands to retrieve (default: 10)"),
		),
	)
}

// Handle processes the memory_context tool call.
func (t *ContextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := intArg(req, "limit", 10)

	cmds, err := t.store.Recent(limit)
	if err != nil {
		return nil, fmt.Errorf("recent context: %w", err)
	}
	return jsonResult(memory.NewRecentContext(cmds))
}
