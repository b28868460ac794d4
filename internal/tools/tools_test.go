package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/botdeskhq/botdesk/internal/skills"
	"github.com/botdeskhq/botdesk/internal/usagestore"
	"github.com/botdeskhq/botdesk/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Test helpers ---

const analystDoc = `# Eng Analyst

Analyzes engineering metrics for the team.

| Role | Department | Focus |
| --- | --- | --- |
| Analyst | Engineering | Delivery metrics |

## Mission

Keep the dashboards honest.
`

const reviewSkill = `---
status: active
last_revised: 2026-01-01
command: /review
---

# Review

Walk the review queue oldest first.
`

// setupWorkspace builds a temp workspace with a small roster, one skill,
// a few sessions and an invocation log.
func setupWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws := workspace.New(t.TempDir())

	write := func(rel, content string) {
		t.Helper()
		if err := ws.WriteFile(rel, content); err != nil {
			t.Fatalf("setup: write %s: %v", rel, err)
		}
	}

	write("bot-eng-analyst/BOT.md", analystDoc)
	write("bot-eng-analyst/skills/review/SKILL.md", reviewSkill)
	write("alice/bot-writing-coach/BOT.md", "# Writing Coach\n\nTightens prose.\n")
	if err := os.MkdirAll(filepath.Join(ws.Root(), "bot-ops-sre"), 0o755); err != nil {
		t.Fatalf("setup: mkdir bot-ops-sre: %v", err)
	}

	write("sessions/2026-01-03/notes.md",
		"## Bot: Eng Analyst\n\nRan /review on the morning queue.\n")
	write("sessions/2026-01-02/notes.md",
		"## Bot: Morning SOD\n\nIncident follow-up only.\n")
	write("sessions/summaries/2026-W02-Jan-06-12.md",
		"# Week 02\n\nQuiet week.\n")

	write("logs/2026-01.jsonl",
		`{"skill":"review","at":"2026-01-02T09:00:00Z"}`+"\n"+
			`{"skill":"review","at":"2026-01-03T09:00:00Z"}`+"\n"+
			"not json\n")

	return ws
}

// isErrorResult checks if the result is a tool error.
func isErrorResult(result *mcp.CallToolResult) bool {
	return result != nil && result.IsError
}

// getResultText extracts the text content from a CallToolResult.
func getResultText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// --- BotsListTool ---

func TestBotsListTool_Handle(t *testing.T) {
	tool := NewBotsListTool(setupWorkspace(t), DefaultPaths())

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("unexpected tool error: %s", getResultText(result))
	}

	text := getResultText(result)
	for _, want := range []string{"bot-eng-analyst", "bot-ops-sre", "bot-writing-coach", "owner: alice", "3 bot(s)"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}

	// Personal bots lead the roster.
	if strings.Index(text, "bot-writing-coach") > strings.Index(text, "bot-eng-analyst") {
		t.Errorf("personal bot not listed first:\n%s", text)
	}
}

func TestBotsListTool_GroupFilter(t *testing.T) {
	tool := NewBotsListTool(setupWorkspace(t), DefaultPaths())

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"group": "eng"}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	text := getResultText(result)
	if !strings.Contains(text, "bot-eng-analyst") {
		t.Errorf("eng bot missing:\n%s", text)
	}
	if strings.Contains(text, "bot-ops-sre") || strings.Contains(text, "bot-writing-coach") {
		t.Errorf("filter leaked other groups:\n%s", text)
	}
}

func TestBotsListTool_EmptyWorkspace(t *testing.T) {
	tool := NewBotsListTool(workspace.New(t.TempDir()), DefaultPaths())

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(getResultText(result), "No bots found") {
		t.Errorf("output = %q", getResultText(result))
	}
}

// --- BotProfileTool ---

func TestBotProfileTool_Handle(t *testing.T) {
	tool := NewBotProfileTool(setupWorkspace(t), DefaultPaths())

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"bot": "Eng Analyst"}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("unexpected tool error: %s", getResultText(result))
	}

	text := getResultText(result)
	for _, want := range []string{
		"# bot-eng-analyst",
		"Analyzes engineering metrics for the team.",
		"Keep the dashboards honest.",
		"**Role:** Analyst",
		"**Department:** Engineering",
		"**Focus:** Delivery metrics",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestBotProfileTool_MissingDocument(t *testing.T) {
	tool := NewBotProfileTool(setupWorkspace(t), DefaultPaths())

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"bot": "bot-ops-sre"}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("missing document should not be a tool error: %s", getResultText(result))
	}
	if !strings.Contains(getResultText(result), "_(not set)_") {
		t.Errorf("empty fields not rendered as unset:\n%s", getResultText(result))
	}
}

func TestBotProfileTool_UnknownBot(t *testing.T) {
	tool := NewBotProfileTool(setupWorkspace(t), DefaultPaths())

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"bot": "totally-unrelated"}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Errorf("expected tool error, got: %s", getResultText(result))
	}
}

// --- BotResolveTool ---

func TestBotResolveTool_Alias(t *testing.T) {
	tool := NewBotResolveTool(setupWorkspace(t), DefaultPaths())

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"name": "Morning SOD"}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("unexpected tool error: %s", getResultText(result))
	}
	if !strings.Contains(getResultText(result), "bot-ops-sre") {
		t.Errorf("alias did not resolve:\n%s", getResultText(result))
	}
}

func TestBotResolveTool_NoMatchIsNotAnError(t *testing.T) {
	tool := NewBotResolveTool(setupWorkspace(t), DefaultPaths())

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"name": "totally-unrelated"}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("no-match must be a normal result: %s", getResultText(result))
	}
	if !strings.Contains(getResultText(result), "No matching bot") {
		t.Errorf("output = %q", getResultText(result))
	}
}

// --- SkillsListTool ---

func TestSkillsListTool_Handle(t *testing.T) {
	tool := NewSkillsListTool(setupWorkspace(t), DefaultPaths())

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"bot": "eng analyst"}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("unexpected tool error: %s", getResultText(result))
	}
	if !strings.Contains(getResultText(result), "| review | active | /review | 2026-01-01 |") {
		t.Errorf("skill row missing:\n%s", getResultText(result))
	}
}

func TestSkillsListTool_NoSkills(t *testing.T) {
	tool := NewSkillsListTool(setupWorkspace(t), DefaultPaths())

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"bot": "bot-ops-sre"}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(getResultText(result), "has no skills") {
		t.Errorf("output = %q", getResultText(result))
	}
}

// --- SessionsTimelineTool ---

func TestSessionsTimelineTool_Handle(t *testing.T) {
	tool := NewSessionsTimelineTool(setupWorkspace(t), DefaultPaths())

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	text := getResultText(result)
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var dates []string
	for _, line := range lines {
		if strings.HasPrefix(line, "- ") {
			dates = append(dates, strings.Fields(line)[1])
		}
	}
	want := []string{"2026-01-06", "2026-01-03", "2026-01-02"}
	if len(dates) != len(want) {
		t.Fatalf("timeline = %v, want %v", dates, want)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("dates[%d] = %s, want %s", i, dates[i], want[i])
		}
	}
}

func TestSessionsTimelineTool_KindFilter(t *testing.T) {
	tool := NewSessionsTimelineTool(setupWorkspace(t), DefaultPaths())

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"kind": "weekly"}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	text := getResultText(result)
	if !strings.Contains(text, "[weekly]") || strings.Contains(text, "[daily]") {
		t.Errorf("kind filter output:\n%s", text)
	}
}

func TestSessionsTimelineTool_BotFilter(t *testing.T) {
	tool := NewSessionsTimelineTool(setupWorkspace(t), DefaultPaths())

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"bot": "eng analyst"}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	text := getResultText(result)
	if !strings.Contains(text, "2026-W02-Jan-06-12.md") {
		t.Errorf("summary dropped by bot filter:\n%s", text)
	}
	if !strings.Contains(text, "sessions/2026-01-03/notes.md") {
		t.Errorf("analyst note missing:\n%s", text)
	}
	if strings.Contains(text, "sessions/2026-01-02/notes.md") {
		t.Errorf("other bot's note leaked:\n%s", text)
	}
}

// --- SkillStatusTool ---

func TestSkillStatusTool_Handle(t *testing.T) {
	origToday := today
	today = func() string { return "2026-02-02" }
	defer func() { today = origToday }()

	ws := setupWorkspace(t)
	tool := NewSkillStatusTool(ws, DefaultPaths())

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"bot":    "Eng Analyst",
		"skill":  "review",
		"status": "deprecated",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("unexpected tool error: %s", getResultText(result))
	}

	content, err := ws.ReadFile("bot-eng-analyst/skills/review/SKILL.md")
	if err != nil {
		t.Fatalf("reading updated skill: %v", err)
	}
	meta := skills.ParseMeta(content)
	if meta.Status != skills.StatusDeprecated {
		t.Errorf("status = %s, want deprecated", meta.Status)
	}
	if meta.LastRevised != "2026-02-02" {
		t.Errorf("last_revised = %q, want 2026-02-02", meta.LastRevised)
	}
	if meta.Command != "/review" {
		t.Errorf("command changed: %q", meta.Command)
	}
	if !strings.Contains(content, "Walk the review queue oldest first.") {
		t.Errorf("body not preserved:\n%s", content)
	}
}

func TestSkillStatusTool_UnknownSkill(t *testing.T) {
	tool := NewSkillStatusTool(setupWorkspace(t), DefaultPaths())

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"bot":    "Eng Analyst",
		"skill":  "ghost",
		"status": "inactive",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Errorf("expected tool error, got: %s", getResultText(result))
	}
}

// --- UsageReportTool ---

func TestUsageReportTool_Handle(t *testing.T) {
	tool := NewUsageReportTool(setupWorkspace(t), DefaultPaths(), nil)

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("unexpected tool error: %s", getResultText(result))
	}

	// Two log records plus one mention in the daily note.
	if !strings.Contains(getResultText(result), "| review | 2 | 1 |") {
		t.Errorf("counts wrong:\n%s", getResultText(result))
	}
}

func TestUsageReportTool_PersistAndDelta(t *testing.T) {
	ws := setupWorkspace(t)
	store, err := usagestore.Open(filepath.Join(t.TempDir(), "usage.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer store.Close()

	tool := NewUsageReportTool(ws, DefaultPaths(), store)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"persist": true}

	first, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("first Handle failed: %v", err)
	}
	if strings.Contains(getResultText(first), "Compared against") {
		t.Errorf("first run has nothing to compare against:\n%s", getResultText(first))
	}

	second, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("second Handle failed: %v", err)
	}
	text := getResultText(second)
	if !strings.Contains(text, "Compared against") {
		t.Errorf("second run missing delta header:\n%s", text)
	}
	if !strings.Contains(text, "| review | 2 | 1 | +0 | +0 |") {
		t.Errorf("delta row wrong:\n%s", text)
	}
}

// Two bots sharing a skill name must not double the mention count; the
// name identifies the skill across the roster.
func TestUsageReportTool_SharedSkillName(t *testing.T) {
	ws := workspace.New(t.TempDir())
	for _, rel := range []string{
		"bot-eng-analyst/skills/review/SKILL.md",
		"bot-ops-sre/skills/review/SKILL.md",
	} {
		if err := ws.WriteFile(rel, reviewSkill); err != nil {
			t.Fatalf("setup: write %s: %v", rel, err)
		}
	}
	if err := ws.WriteFile("sessions/2026-01-03/notes.md", "Ran /review once.\n"); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tool := NewUsageReportTool(ws, DefaultPaths(), nil)
	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(getResultText(result), "| review | 0 | 1 |") {
		t.Errorf("shared skill counted per owner:\n%s", getResultText(result))
	}
}

func TestUsageReportTool_EmptyWorkspace(t *testing.T) {
	tool := NewUsageReportTool(workspace.New(t.TempDir()), DefaultPaths(), nil)

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(getResultText(result), "No usage signals found.") {
		t.Errorf("output = %q", getResultText(result))
	}
}
