package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/botdeskhq/botdesk/internal/skills"
	"github.com/botdeskhq/botdesk/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
)

// today is a package-level var to allow test injection of the date stamp.
var today = func() string { return time.Now().Format("2006-01-02") }

// SkillStatusTool handles the skill_set_status MCP tool, the one write
// path in the system.
type SkillStatusTool struct {
	ws    *workspace.Workspace
	paths Paths
}

// NewSkillStatusTool creates a SkillStatusTool with its dependencies.
func NewSkillStatusTool(ws *workspace.Workspace, paths Paths) *SkillStatusTool {
	return &SkillStatusTool{ws: ws, paths: paths}
}

// Definition returns the MCP tool definition for registration.
func (t *SkillStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("skill_set_status",
		mcp.WithDescription(
			"Change a skill's status. The skill document's frontmatter is updated "+
				"in place: only the status and last_revised lines change, last_revised "+
				"is stamped with today's date, and every other byte of the document "+
				"is preserved. The whole file is replaced; last write wins.",
		),
		mcp.WithString("bot",
			mcp.Required(),
			mcp.Description("Bot name, slug or historical free-text form."),
		),
		mcp.WithString("skill",
			mcp.Required(),
			mcp.Description("Skill directory name."),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("New status."),
			mcp.Enum("active", "inactive", "deprecated"),
		),
	)
}

// Handle processes the skill_set_status tool call.
func (t *SkillStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	botName := req.GetString("bot", "")
	skillName := req.GetString("skill", "")
	rawStatus := req.GetString("status", "")
	if botName == "" || skillName == "" || rawStatus == "" {
		return mcp.NewToolResultError("'bot', 'skill' and 'status' are required"), nil
	}

	entry, _, err := resolveBot(t.ws, t.paths, botName)
	if err != nil {
		return nil, fmt.Errorf("scanning roster: %w", err)
	}
	if entry == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no matching bot for %q", botName)), nil
	}

	refs, err := skills.Discover(t.ws, entry.Dir)
	if err != nil {
		return nil, fmt.Errorf("discovering skills: %w", err)
	}
	var ref *skills.Ref
	for i := range refs {
		if refs[i].Name == skillName {
			ref = &refs[i]
			break
		}
	}
	if ref == nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s has no skill %q", entry.Name, skillName)), nil
	}

	content, err := t.ws.ReadFile(ref.Path)
	if err != nil && !errors.Is(err, workspace.ErrNotFound) {
		return nil, fmt.Errorf("reading %s: %w", ref.Path, err)
	}

	status := skills.ParseStatus(rawStatus)
	stamp := today()
	updated := skills.SetStatus(content, status, stamp)

	// Write failures surface to the caller; no retry. The caller marks the
	// edit unsaved and a human retries.
	if err := t.ws.WriteFile(ref.Path, updated); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("saving %s failed: %v", ref.Path, err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"%s/%s is now %s (last_revised %s).", entry.Name, ref.Name, status, stamp,
	)), nil
}
