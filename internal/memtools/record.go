package memtools

import (
	"context"
	"fmt"

	"github.com/dreyes/memtrail/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// RecordTool handles the record_command MCP tool.
type RecordTool struct {
	store *memory.Store
}

// NewRecordTool creates a RecordTool with the given command store.
func NewRecordTool(store *memory.Store) *RecordTool {
	return &RecordTool{store: store}
}

// Definition returns the MCP tool definition for record_command.
func (t *RecordTool) Definition() mcp.Tool {
	return mcp.NewTool("record_command",
		mcp.WithDescription(
			"Persist a raw user instruction with optional tags. Call this whenever the user "+
				"gives a directive worth remembering — the memory feeds later stats and preference analysis.",
		),
		mcp.WithString("command_text",
			mcp.Required(),
			mcp.Description("The instruction text to remember"),
		),
		mcp.WithArray("tags",
			mcp.Description("Optional list of short tag strings (e.g. [\"python\", \"deploy\"])"),
		),
	)
}

// Handle processes the record_command tool call.
func (t *RecordTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	text, isString := args["command_text"].(string)
	if !isString || text == "" {
		return errResult("command_text_required")
	}

	tags, code := coerceTags(args["tags"])
	if code != "" {
		return errResult(code)
	}

	if err := t.store.Add(text, tags); err != nil {
		return nil, fmt.Errorf("record command: %w", err)
	}
	return jsonResult(map[string]string{"status": "ok"})
}
