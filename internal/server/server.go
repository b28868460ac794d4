// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools and resources that depend on them. No
// business logic lives here, only wiring.
package server

import (
	"path/filepath"

	"github.com/botdeskhq/botdesk/internal/resources"
	"github.com/botdeskhq/botdesk/internal/tools"
	"github.com/botdeskhq/botdesk/internal/usagestore"
	"github.com/botdeskhq/botdesk/internal/workspace"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Options configure the server.
type Options struct {
	// WorkspaceRoot is the directory holding bot dirs, member folders,
	// sessions and logs.
	WorkspaceRoot string
	// HistoryDB is the usage snapshot database path. Empty means the
	// default location under the workspace; "off" disables history.
	HistoryDB string
}

// New creates and configures the MCP server with all tools and resources
// registered.
//
// The returned cleanup function closes the usage history database and must
// be called on shutdown (typically via defer). It is always non-nil and
// safe to call even when history is disabled.
func New(opts Options) (*server.MCPServer, func(), error) {
	ws := workspace.New(opts.WorkspaceRoot)
	paths := tools.DefaultPaths()

	s := server.NewMCPServer(
		"botdesk",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Usage history ---
	//
	// History is an independent subsystem: if it fails to open, the
	// roster, session and skill tools keep working. We log a warning and
	// run the usage report without snapshots.

	cleanup := noop
	var store *usagestore.Store
	if opts.HistoryDB != "off" {
		dbPath := opts.HistoryDB
		if dbPath == "" {
			dbPath = filepath.Join(opts.WorkspaceRoot, ".botdesk", "usage.db")
		}
		st, err := usagestore.Open(dbPath)
		if err != nil {
			logrus.WithError(err).Warn("usage history disabled")
		} else {
			store = st
			cleanup = func() {
				if err := st.Close(); err != nil {
					logrus.WithError(err).Warn("usage history close")
				}
			}
		}
	}

	// --- Register tools ---

	botsList := tools.NewBotsListTool(ws, paths)
	s.AddTool(botsList.Definition(), botsList.Handle)

	botProfile := tools.NewBotProfileTool(ws, paths)
	s.AddTool(botProfile.Definition(), botProfile.Handle)

	botResolve := tools.NewBotResolveTool(ws, paths)
	s.AddTool(botResolve.Definition(), botResolve.Handle)

	timeline := tools.NewSessionsTimelineTool(ws, paths)
	s.AddTool(timeline.Definition(), timeline.Handle)

	skillsList := tools.NewSkillsListTool(ws, paths)
	s.AddTool(skillsList.Definition(), skillsList.Handle)

	skillStatus := tools.NewSkillStatusTool(ws, paths)
	s.AddTool(skillStatus.Definition(), skillStatus.Handle)

	usageReport := tools.NewUsageReportTool(ws, paths, store)
	s.AddTool(usageReport.Definition(), usageReport.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(ws, paths.TeamRoot, paths.Sessions)
	s.AddResource(resourceHandler.StatusResource(), resourceHandler.HandleStatus)

	return s, cleanup, nil
}

// noop is the default cleanup when usage history is disabled.
func noop() {}

func serverInstructions() string {
	return `botdesk exposes a team bot workspace: bot directories, skill
documents, session notes and invocation logs.

Start with bots_list to see the roster. Use bot_resolve when you meet a
bot name in historical notes; "no matching bot" is a normal answer.
sessions_timeline shows dated daily notes and weekly/monthly summaries,
optionally filtered to one bot. usage_report aggregates skill usage from
invocation logs and note mentions; pass persist=true to save a snapshot
for trend comparison. skill_set_status is the only write operation and
stamps last_revised automatically.`
}
