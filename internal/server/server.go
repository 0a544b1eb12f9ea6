// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates the command store and injects
// it into the tools that depend on it. No business logic lives here —
// only wiring.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dreyes/memtrail/internal/memory"
	"github.com/dreyes/memtrail/internal/memtools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// recentResourceLimit caps the memory://recent resource payload.
const recentResourceLimit = 10

// New creates and configures the MCP server with all tools and resources
// registered. This is the single place where dependencies are resolved.
//
// The returned cleanup function closes the command store's database
// connection and must be called on shutdown (typically via defer). It is
// always non-nil and safe to call even if store init failed.
func New(cfg memory.Config) (*server.MCPServer, func(), error) {
	store, err := memory.New(cfg)
	if err != nil {
		return nil, noop, fmt.Errorf("creating command store: %w", err)
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			log.Printf("WARNING: command store close: %v", err)
		}
	}

	s := server.NewMCPServer(
		"memtrail",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	registerTools(s, store)
	registerResources(s, store)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used when store init failed.
func noop() {}

// registerTools registers all command memory MCP tools with the server.
func registerTools(s *server.MCPServer, store *memory.Store) {
	// --- Capture ---
	record := memtools.NewRecordTool(store)
	s.AddTool(record.Definition(), record.Handle)

	// --- Query & retrieval ---
	list := memtools.NewListTool(store)
	s.AddTool(list.Definition(), list.Handle)

	memContext := memtools.NewContextTool(store)
	s.AddTool(memContext.Definition(), memContext.Handle)

	search := memtools.NewSearchTool(store)
	s.AddTool(search.Definition(), search.Handle)

	// --- Analytics ---
	stats := memtools.NewStatsTool(store)
	s.AddTool(stats.Definition(), stats.Handle)

	preferences := memtools.NewPreferencesTool(store)
	s.AddTool(preferences.Definition(), preferences.Handle)

	contextual := memtools.NewContextualPreferencesTool(store)
	s.AddTool(contextual.Definition(), contextual.Handle)

	// --- Discovery ---
	help := memtools.NewHelpTool()
	s.AddTool(help.Definition(), help.Handle)
}

// registerResources registers the memory://recent read-only resource,
// which mirrors the memory_context tool for clients that prefer
// resource reads over tool calls.
func registerResources(s *server.MCPServer, store *memory.Store) {
	recent := mcp.NewResource(
		"memory://recent",
		"Recent commands",
		mcp.WithResourceDescription("The most recent stored commands, newest first."),
		mcp.WithMIMEType("application/json"),
	)
	s.AddResource(recent, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		cmds, err := store.Recent(recentResourceLimit)
		if err != nil {
			return nil, fmt.Errorf("read recent commands: %w", err)
		}
		data, err := json.Marshal(memory.NewRecentContext(cmds))
		if err != nil {
			return nil, fmt.Errorf("marshal recent commands: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}

func serverInstructions() string {
	return `memtrail is a single-user command memory. It records the free-text
instructions a user gives their coding assistant and answers questions
about them.

Typical flow:
1. Call record_command after each meaningful user instruction (tags optional).
2. Call memory_context at session start to recover recent activity.
3. Call preferences or contextual_preferences before making style or
   tooling choices on the user's behalf.
4. Use search_commands and stats to answer "what did I ask before" questions.

All tools return JSON. Validation problems come back as {"error": "<code>"}
inside a successful result; treat them as user-visible messages, not faults.`
}
