package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/botdeskhq/botdesk/internal/sessions"
	"github.com/botdeskhq/botdesk/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
)

// SessionsTimelineTool handles the sessions_timeline MCP tool.
type SessionsTimelineTool struct {
	ws    *workspace.Workspace
	paths Paths
}

// NewSessionsTimelineTool creates a SessionsTimelineTool with its dependencies.
func NewSessionsTimelineTool(ws *workspace.Workspace, paths Paths) *SessionsTimelineTool {
	return &SessionsTimelineTool{ws: ws, paths: paths}
}

// Definition returns the MCP tool definition for registration.
func (t *SessionsTimelineTool) Definition() mcp.Tool {
	return mcp.NewTool("sessions_timeline",
		mcp.WithDescription(
			"Show the session timeline: daily notes plus weekly/monthly summaries, "+
				"newest first. Optionally filter by kind or by bot. When filtering by "+
				"bot, summaries are kept as cross-cutting context; daily notes are kept "+
				"only when one of their bot headings resolves to that bot.",
		),
		mcp.WithString("kind",
			mcp.Description("Only show entries of this kind."),
			mcp.Enum("daily", "weekly", "monthly"),
		),
		mcp.WithString("bot",
			mcp.Description("Only show sessions involving this bot (slug or free-text name)."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return (default: 20)."),
		),
	)
}

// Handle processes the sessions_timeline tool call.
func (t *SessionsTimelineTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kindFilter := req.GetString("kind", "")
	botFilter := req.GetString("bot", "")
	limit := intArg(req, "limit", 20)

	files, err := t.ws.WalkFiles(t.paths.Sessions)
	if err != nil {
		return nil, fmt.Errorf("scanning sessions: %w", err)
	}
	entries := sessions.Index(files)

	if botFilter != "" {
		entry, all, err := resolveBot(t.ws, t.paths, botFilter)
		if err != nil {
			return nil, fmt.Errorf("scanning roster: %w", err)
		}
		if entry == nil {
			return mcp.NewToolResultError(fmt.Sprintf("no matching bot for %q", botFilter)), nil
		}
		entries = sessions.FilterByBot(entries, entry.Dir, t.ws, all)
	}

	if kindFilter != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if string(e.Kind) == kindFilter {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	if len(entries) == 0 {
		return mcp.NewToolResultText("No sessions found."), nil
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	var sb strings.Builder
	sb.WriteString("# Session Timeline\n\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "- %s  [%s]  %s\n", e.Date, e.Kind, e.Path)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
