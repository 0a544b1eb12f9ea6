// Package memtools provides MCP tool handlers for the command memory layer.
//
// Each tool handler follows the same pattern:
// - A struct with its dependency (memory.Store) injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
//
// All tools speak JSON payloads so the client can parse them mechanically.
// Validation failures are reported in-band as {"error": "<code>"} — the
// call succeeds at the protocol level. Only storage faults surface as
// handler errors.
package memtools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// jsonResult marshals v and wraps it as a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("memtools: marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errResult reports a validation failure in-band.
func errResult(code string) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]string{"error": code})
}

// coerceTags validates the raw tags argument: absent means no tags,
// anything that is not a list is rejected, nil entries are dropped
// silently, and non-string entries are stringified.
func coerceTags(raw any) ([]string, string) {
	if raw == nil {
		return nil, ""
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, "tags_must_be_list"
	}
	tags := make([]string, 0, len(list))
	for _, item := range list {
		if item == nil {
			continue
		}
		if s, ok := item.(string); ok {
			tags = append(tags, s)
			continue
		}
		tags = append(tags, fmt.Sprint(item))
	}
	return tags, ""
}
