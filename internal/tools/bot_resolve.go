package tools

import (
	"context"
	"fmt"

	"github.com/botdeskhq/botdesk/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
)

// BotResolveTool handles the bot_resolve MCP tool.
type BotResolveTool struct {
	ws    *workspace.Workspace
	paths Paths
}

// NewBotResolveTool creates a BotResolveTool with its dependencies.
func NewBotResolveTool(ws *workspace.Workspace, paths Paths) *BotResolveTool {
	return &BotResolveTool{ws: ws, paths: paths}
}

// Definition returns the MCP tool definition for registration.
func (t *BotResolveTool) Definition() mcp.Tool {
	return mcp.NewTool("bot_resolve",
		mcp.WithDescription(
			"Resolve a free-text bot name from historical session notes to the "+
				"current roster. Handles legacy display names, renamed bots and "+
				"reassigned departments. 'No matching bot' is a normal outcome, "+
				"not an error.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Free-text bot name as it appears in historical content."),
		),
	)
}

// Handle processes the bot_resolve tool call.
func (t *BotResolveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}

	entry, _, err := resolveBot(t.ws, t.paths, name)
	if err != nil {
		return nil, fmt.Errorf("scanning roster: %w", err)
	}
	if entry == nil {
		return mcp.NewToolResultText(fmt.Sprintf("No matching bot for %q; no current equivalent exists.", name)), nil
	}

	out := fmt.Sprintf("%q resolves to **%s** (%s)", name, entry.Name, entry.Group)
	if entry.Personal() {
		out += fmt.Sprintf(", owned by %s", entry.Owner)
	}
	out += fmt.Sprintf("\nDirectory: %s", entry.Dir)
	return mcp.NewToolResultText(out), nil
}
