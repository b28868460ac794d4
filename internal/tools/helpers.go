// Package tools provides the MCP tool handlers for botdesk.
//
// Each tool follows the same pattern:
// - A struct with dependencies injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
//
// Expected failures (no matching bot, missing workspace content) are
// returned as tool errors, never as Go errors; callers render them.
package tools

import (
	"fmt"

	"github.com/botdeskhq/botdesk/internal/bots"
	"github.com/botdeskhq/botdesk/internal/match"
	"github.com/botdeskhq/botdesk/internal/skills"
	"github.com/botdeskhq/botdesk/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
)

// Paths fixes the layout conventions inside a workspace.
type Paths struct {
	TeamRoot string // directory holding bot dirs and member folders
	Sessions string // daily notes and summaries
	Logs     string // skill invocation logs (*.jsonl)
}

// DefaultPaths is the conventional workspace layout.
func DefaultPaths() Paths {
	return Paths{TeamRoot: ".", Sessions: "sessions", Logs: "logs"}
}

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// roster rescans the workspace. The roster is cheap to rebuild and never
// cached, so every tool call sees the current directory state.
func roster(ws *workspace.Workspace, paths Paths) ([]bots.Entry, error) {
	return bots.Discover(ws, paths.TeamRoot)
}

// resolveBot maps a free-text bot argument to a roster entry. The second
// return is the roster itself, so callers needing both scan only once.
func resolveBot(ws *workspace.Workspace, paths Paths, name string) (*bots.Entry, []bots.Entry, error) {
	entries, err := roster(ws, paths)
	if err != nil {
		return nil, nil, err
	}
	return match.Resolve(name, entries), entries, nil
}

// allSkillRefs enumerates every skill of every bot in the roster.
func allSkillRefs(ws *workspace.Workspace, entries []bots.Entry) ([]skills.Ref, error) {
	var refs []skills.Ref
	for _, b := range entries {
		r, err := skills.Discover(ws, b.Dir)
		if err != nil {
			return nil, err
		}
		refs = append(refs, r...)
	}
	return refs, nil
}

// formatBot renders one roster line.
func formatBot(b bots.Entry) string {
	if b.Personal() {
		return fmt.Sprintf("- **%s** (%s, owner: %s)", b.Name, b.Group, b.Owner)
	}
	return fmt.Sprintf("- **%s** (%s)", b.Name, b.Group)
}
