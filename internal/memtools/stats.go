package memtools

import (
	"context"
	"fmt"

	"github.com/dreyes/memtrail/internal/memory"
	"github.com/dreyes/memtrail/internal/prefs"
	"github.com/mark3labs/mcp-go/mcp"
)

// StatsTool handles the stats MCP tool.
type StatsTool struct {
	store *memory.Store
}

// NewStatsTool creates a StatsTool with the given command store.
func NewStatsTool(store *memory.Store) *StatsTool {
	return &StatsTool{store: store}
}

// Definition returns the MCP tool definition for stats.
func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("stats",
		mcp.WithDescription(
			"Basic usage statistics across commands: total count, top tags, most active UTC hours.",
		),
	)
}

// Handle processes the stats tool call.
func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cmds, err := t.store.List()
	if err != nil {
		return nil, fmt.Errorf("compute stats: %w", err)
	}
	return jsonResult(prefs.ComputeStats(cmds))
}
