package memtools

import (
	"context"
	"fmt"

	"github.com/dreyes/memtrail/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListTool handles the commands MCP tool.
type ListTool struct {
	store *memory.Store
}

// NewListTool creates a ListTool.
func NewListTool(store *memory.Store) *ListTool {
	return &ListTool{store: store}
}

// Definition returns the MCP tool definition for commands.
func (t *ListTool) Definition() mcp.Tool {
	return mcp.NewTool("commands",
		mcp.WithDescription("List all stored commands, newest first."),
	)
}

// Handle processes the commands tool call.
func (t *ListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cmds, err := t.store.List()
	if err != nil {
		return nil, fmt.Errorf("list commands: %w", err)
	}
	return jsonResult(cmds)
}
