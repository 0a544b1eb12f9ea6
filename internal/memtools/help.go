package memtools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// HelpTool handles the help MCP tool.
type HelpTool struct{}

// NewHelpTool creates a HelpTool.
func NewHelpTool() *HelpTool {
	return &HelpTool{}
}

// Definition returns the MCP tool definition for help.
func (t *HelpTool) Definition() mcp.Tool {
	return mcp.NewTool("help",
		mcp.WithDescription("List available memory tools and their usage signatures."),
	)
}

// toolDescriptor is one entry in the static help catalog.
type toolDescriptor struct {
	Name        string            `json:"name"`
	Args        map[string]string `json:"args"`
	Description string            `json:"description"`
}

// Handle processes the help tool call. The catalog is a static
// descriptor so it never depends on server internals.
func (t *HelpTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string][]toolDescriptor{
		"tools": {
			{
				Name:        "record_command",
				Args:        map[string]string{"command_text": "string", "tags": "list[string]=[]"},
				Description: "Persist a raw user instruction with optional tags.",
			},
			{
				Name:        "commands",
				Args:        map[string]string{},
				Description: "List all stored commands (newest first).",
			},
			{
				Name:        "memory_context",
				Args:        map[string]string{"token": "string (ignored)", "limit": "int=10"},
				Description: "Return recent command context (single-user).",
			},
			{
				Name:        "search_commands",
				Args:        map[string]string{"query": "string", "limit": "int=10"},
				Description: "Substring search across command text and tags.",
			},
			{
				Name:        "stats",
				Args:        map[string]string{},
				Description: "Basic usage statistics across commands.",
			},
			{
				Name:        "preferences",
				Args:        map[string]string{},
				Description: "Heuristic preference analysis.",
			},
			{
				Name:        "contextual_preferences",
				Args:        map[string]string{"context": "string", "limit": "int=50"},
				Description: "Task-focused preference subset based on provided context string.",
			},
		},
	})
}
