package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/botdeskhq/botdesk/internal/skills"
	"github.com/botdeskhq/botdesk/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
)

// SkillsListTool handles the skills_list MCP tool.
type SkillsListTool struct {
	ws    *workspace.Workspace
	paths Paths
}

// NewSkillsListTool creates a SkillsListTool with its dependencies.
func NewSkillsListTool(ws *workspace.Workspace, paths Paths) *SkillsListTool {
	return &SkillsListTool{ws: ws, paths: paths}
}

// Definition returns the MCP tool definition for registration.
func (t *SkillsListTool) Definition() mcp.Tool {
	return mcp.NewTool("skills_list",
		mcp.WithDescription(
			"List a bot's skills with their frontmatter metadata: status, command, "+
				"revision dates. Skill documents that are missing or malformed show "+
				"defaults instead of failing.",
		),
		mcp.WithString("bot",
			mcp.Required(),
			mcp.Description("Bot name, slug or historical free-text form."),
		),
	)
}

// Handle processes the skills_list tool call.
func (t *SkillsListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	refs, err := skills.Discover(t.ws, entry.Dir)
	if err != nil {
		return nil, fmt.Errorf("discovering skills: %w", err)
	}
	if len(refs) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("%s has no skills.", entry.Name)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Skills of %s\n\n", entry.Name)
	sb.WriteString("| Skill | Status | Command | Last revised |\n")
	sb.WriteString("| --- | --- | --- | --- |\n")
	for _, ref := range refs {
		content, err := t.ws.ReadFile(ref.Path)
		if err != nil && !errors.Is(err, workspace.ErrNotFound) {
			return nil, fmt.Errorf("reading %s: %w", ref.Path, err)
		}
		meta := skills.ParseMeta(content)
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
			ref.Name, meta.Status, orDash(meta.Command), orDash(meta.LastRevised))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
