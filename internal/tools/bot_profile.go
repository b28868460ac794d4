package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/botdeskhq/botdesk/internal/bots"
	"github.com/botdeskhq/botdesk/internal/profile"
	"github.com/botdeskhq/botdesk/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
)

// BotProfileTool handles the bot_profile MCP tool.
type BotProfileTool struct {
	ws    *workspace.Workspace
	paths Paths
}

// NewBotProfileTool creates a BotProfileTool with its dependencies.
func NewBotProfileTool(ws *workspace.Workspace, paths Paths) *BotProfileTool {
	return &BotProfileTool{ws: ws, paths: paths}
}

// Definition returns the MCP tool definition for registration.
func (t *BotProfileTool) Definition() mcp.Tool {
	return mcp.NewTool("bot_profile",
		mcp.WithDescription(
			"Read a bot's profile: description, mission, role, department and focus, "+
				"parsed from its instruction document. The bot name may be a slug or a "+
				"free-text historical name; it is resolved against the current roster.",
		),
		mcp.WithString("bot",
			mcp.Required(),
			mcp.Description("Bot name, slug or historical free-text form."),
		),
	)
}

// Handle processes the bot_profile tool call.
func (t *BotProfileTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("bot", "")
	if name == "" {
		return mcp.NewToolResultError("'bot' is required"), nil
	}

	entry, _, err := resolveBot(t.ws, t.paths, name)
	if err != nil {
		return nil, fmt.Errorf("scanning roster: %w", err)
	}
	if entry == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no matching bot for %q", name)), nil
	}

	content, err := t.ws.ReadFile(entry.Dir + "/" + bots.Document)
	if err != nil && !errors.Is(err, workspace.ErrNotFound) {
		return nil, fmt.Errorf("reading %s: %w", bots.Document, err)
	}
	p := profile.Parse(content)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", entry.Name)
	fmt.Fprintf(&sb, "**Group:** %s\n", entry.Group)
	if entry.Personal() {
		fmt.Fprintf(&sb, "**Owner:** %s\n", entry.Owner)
	}
	sb.WriteString("\n")

	writeField(&sb, "Description", p.Description)
	writeField(&sb, "Mission", p.Mission)
	writeField(&sb, "Role", p.Role)
	writeField(&sb, "Department", p.Department)
	writeField(&sb, "Focus", p.Focus)

	return mcp.NewToolResultText(sb.String()), nil
}

func writeField(sb *strings.Builder, label, value string) {
	if value == "" {
		value = "_(not set)_"
	}
	fmt.Fprintf(sb, "- **%s:** %s\n", label, value)
}
