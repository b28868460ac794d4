package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/botdeskhq/botdesk/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
)

// BotsListTool handles the bots_list MCP tool.
type BotsListTool struct {
	ws    *workspace.Workspace
	paths Paths
}

// NewBotsListTool creates a BotsListTool with its dependencies.
func NewBotsListTool(ws *workspace.Workspace, paths Paths) *BotsListTool {
	return &BotsListTool{ws: ws, paths: paths}
}

// Definition returns the MCP tool definition for registration.
func (t *BotsListTool) Definition() mcp.Tool {
	return mcp.NewTool("bots_list",
		mcp.WithDescription(
			"List the current bot roster discovered in the workspace: team bots "+
				"grouped by department and personal bots per member. The roster is "+
				"rescanned on every call.",
		),
		mcp.WithString("group",
			mcp.Description("Only show bots in this group (e.g. 'eng', 'ops', 'personal')."),
		),
	)
}

// Handle processes the bots_list tool call.
func (t *BotsListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	groupFilter := strings.ToLower(strings.TrimSpace(req.GetString("group", "")))

	entries, err := roster(t.ws, t.paths)
	if err != nil {
		return nil, fmt.Errorf("scanning roster: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# Bot Roster\n\n")

	shown := 0
	currentGroup := ""
	for _, b := range entries {
		if groupFilter != "" && b.Group != groupFilter {
			continue
		}
		if b.Group != currentGroup {
			currentGroup = b.Group
			fmt.Fprintf(&sb, "## %s\n\n", currentGroup)
		}
		sb.WriteString(formatBot(b))
		sb.WriteString("\n")
		shown++
	}

	if shown == 0 {
		if groupFilter != "" {
			return mcp.NewToolResultText(fmt.Sprintf("No bots in group %q.", groupFilter)), nil
		}
		return mcp.NewToolResultText("No bots found in the workspace."), nil
	}

	fmt.Fprintf(&sb, "\n%d bot(s).\n", shown)
	return mcp.NewToolResultText(sb.String()), nil
}
