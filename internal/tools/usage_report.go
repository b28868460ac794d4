package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/botdeskhq/botdesk/internal/sessions"
	"github.com/botdeskhq/botdesk/internal/skills"
	"github.com/botdeskhq/botdesk/internal/usagestore"
	"github.com/botdeskhq/botdesk/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
)

// UsageReportTool handles the usage_report MCP tool. The store is
// optional: a nil store means no snapshots and no deltas, the report
// itself works regardless.
type UsageReportTool struct {
	ws    *workspace.Workspace
	paths Paths
	store *usagestore.Store
}

// NewUsageReportTool creates a UsageReportTool with its dependencies.
// store may be nil.
func NewUsageReportTool(ws *workspace.Workspace, paths Paths, store *usagestore.Store) *UsageReportTool {
	return &UsageReportTool{ws: ws, paths: paths, store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *UsageReportTool) Definition() mcp.Tool {
	return mcp.NewTool("usage_report",
		mcp.WithDescription(
			"Aggregate skill usage from two independent signals: structured "+
				"invocation logs (JSONL, one record per line) and '/skill-name' "+
				"mentions inside session notes. Counts are additive across sources "+
				"with no deduplication. When usage history is enabled the run can be "+
				"persisted and compared against the previous snapshot.",
		),
		mcp.WithBoolean("persist",
			mcp.Description("Save this run as a usage snapshot (requires usage history; default: false)."),
		),
	)
}

// Handle processes the usage_report tool call.
func (t *UsageReportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	persist := boolArg(req, "persist", false)

	entries, err := roster(t.ws, t.paths)
	if err != nil {
		return nil, fmt.Errorf("scanning roster: %w", err)
	}
	refs, err := allSkillRefs(t.ws, entries)
	if err != nil {
		return nil, fmt.Errorf("discovering skills: %w", err)
	}
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Name)
	}

	logLines, err := t.logLines()
	if err != nil {
		return nil, fmt.Errorf("reading invocation logs: %w", err)
	}
	texts, err := t.sessionTexts()
	if err != nil {
		return nil, fmt.Errorf("reading sessions: %w", err)
	}

	usage := skills.AggregateUsage(logLines, texts, names)

	var prevStamp string
	var prev map[string]skills.Usage
	if t.store != nil {
		prevStamp, prev, err = t.store.LastRun()
		if err != nil {
			logrus.WithError(err).Warn("loading previous usage snapshot")
			prevStamp, prev = "", nil
		}
		if persist {
			stamp := time.Now().UTC().Format(time.RFC3339)
			if err := t.store.SaveRun(stamp, usage); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("saving snapshot failed: %v", err)), nil
			}
		}
	}

	return mcp.NewToolResultText(renderUsage(usage, prevStamp, prev)), nil
}

// logLines collects every line of every .jsonl file in the logs folder.
// Multiple overlapping log files are fine: counting is additive by design.
func (t *UsageReportTool) logLines() ([]string, error) {
	files, err := t.ws.WalkFiles(t.paths.Logs)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, f := range files {
		if !strings.HasSuffix(f.Name, ".jsonl") {
			continue
		}
		content, err := t.ws.ReadFile(f.Path)
		if err != nil {
			continue
		}
		for _, line := range strings.Split(content, "\n") {
			if strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines, nil
}

// sessionTexts reads the content of every indexed session file. Files
// still in flight or gone by read time contribute nothing.
func (t *UsageReportTool) sessionTexts() ([]string, error) {
	files, err := t.ws.WalkFiles(t.paths.Sessions)
	if err != nil {
		return nil, err
	}
	var texts []string
	for _, e := range sessions.Index(files) {
		content, err := t.ws.ReadFile(e.Path)
		if err != nil {
			continue
		}
		texts = append(texts, content)
	}
	return texts, nil
}

func renderUsage(usage map[string]skills.Usage, prevStamp string, prev map[string]skills.Usage) string {
	names := make([]string, 0, len(usage))
	for name := range usage {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("# Skill Usage\n\n")
	if len(names) == 0 {
		sb.WriteString("No usage signals found.\n")
		return sb.String()
	}

	withDelta := prev != nil
	if withDelta {
		fmt.Fprintf(&sb, "Compared against snapshot %s.\n\n", prevStamp)
		sb.WriteString("| Skill | Invocations | Mentions | Δ invocations | Δ mentions |\n")
		sb.WriteString("| --- | --- | --- | --- | --- |\n")
	} else {
		sb.WriteString("| Skill | Invocations | Mentions |\n")
		sb.WriteString("| --- | --- | --- |\n")
	}

	for _, name := range names {
		u := usage[name]
		if withDelta {
			p := prev[name]
			fmt.Fprintf(&sb, "| %s | %d | %d | %+d | %+d |\n",
				name, u.Invocations, u.Mentions, u.Invocations-p.Invocations, u.Mentions-p.Mentions)
		} else {
			fmt.Fprintf(&sb, "| %s | %d | %d |\n", name, u.Invocations, u.Mentions)
		}
	}
	return sb.String()
}
