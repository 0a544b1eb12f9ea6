package memtools

import (
	"context"
	"fmt"

	"github.com/dreyes/memtrail/internal/memory"
	"github.com/dreyes/memtrail/internal/prefs"
	"github.com/mark3labs/mcp-go/mcp"
)

// PreferencesTool handles the preferences MCP tool.
type PreferencesTool struct {
	store *memory.Store
}

// NewPreferencesTool creates a PreferencesTool.
func NewPreferencesTool(store *memory.Store) *PreferencesTool {
	return &PreferencesTool{store: store}
}

// Definition returns the MCP tool definition for preferences.
func (t *PreferencesTool) Definition() mcp.Tool {
	return mcp.NewTool("preferences",
		mcp.WithDescription(
			"Heuristic preference analysis inferred from all stored commands: preferred "+
				"language with confidence, common tasks, style summary, frameworks, tools.",
		),
	)
}

// Handle processes the preferences tool call.
func (t *PreferencesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cmds, err := t.store.List()
	if err != nil {
		return nil, fmt.Errorf("infer preferences: %w", err)
	}
	return jsonResult(prefs.InferPreferences(cmds))
}

// ─── ContextualPreferencesTool ──────────────────────────────────────────────

// ContextualPreferencesTool handles the contextual_preferences MCP tool.
type ContextualPreferencesTool struct {
	store *memory.Store
}

// NewContextualPreferencesTool creates a ContextualPreferencesTool.
func NewContextualPreferencesTool(store *memory.Store) *ContextualPreferencesTool {
	return &ContextualPreferencesTool{store: store}
}

// Definition returns the MCP tool definition for contextual_preferences.
func (t *ContextualPreferencesTool) Definition() mcp.Tool {
	return mcp.NewTool("contextual_preferences",
		mcp.WithDescription(
			"Context-aware subset of preferences for a given task description. Matches the "+
				"context against semantic groups (documentation, testing, performance, deployment, "+
				"refactor, debug) and filters the baseline to relevant entries.",
		),
		mcp.WithString("context",
			mcp.Required(),
			mcp.Description("Free-form task or instruction text"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Advisory cap, reserved for future recency filtering (default: 50)"),
		),
	)
}

// Handle processes the contextual_preferences tool call.
func (t *ContextualPreferencesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskContext := req.GetString("context", "")
	// limit is accepted for forward compatibility; the heuristic does
	// not use it yet.
	_ = intArg(req, "limit", 50)

	cmds, err := t.store.List()
	if err != nil {
		return nil, fmt.Errorf("contextual preferences: %w", err)
	}
	baseline := prefs.InferPreferences(cmds)
	return jsonResult(prefs.ContextualPreferences(taskContext, baseline))
}
