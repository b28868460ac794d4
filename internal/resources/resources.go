// Package resources implements MCP resource handlers for the workspace.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (botdesk://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/botdeskhq/botdesk/internal/bots"
	"github.com/botdeskhq/botdesk/internal/sessions"
	"github.com/botdeskhq/botdesk/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler manages workspace resource endpoints.
type Handler struct {
	ws          *workspace.Workspace
	teamRoot    string
	sessionsDir string
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(ws *workspace.Workspace, teamRoot, sessionsDir string) *Handler {
	return &Handler{ws: ws, teamRoot: teamRoot, sessionsDir: sessionsDir}
}

// status is the serialized shape of the workspace status resource.
type status struct {
	Bots          int            `json:"bots"`
	PersonalBots  int            `json:"personal_bots"`
	Groups        map[string]int `json:"groups"`
	Sessions      int            `json:"sessions"`
	LatestSession string         `json:"latest_session,omitempty"`
}

// StatusResource returns the MCP resource definition for workspace status.
func (h *Handler) StatusResource() mcp.Resource {
	return mcp.NewResource(
		"botdesk://workspace/status",
		"Workspace Status",
		mcp.WithResourceDescription("Bot roster counts and session timeline overview"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleStatus returns the current workspace status as JSON.
func (h *Handler) HandleStatus(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	roster, err := bots.Discover(h.ws, h.teamRoot)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	st := status{Bots: len(roster), Groups: map[string]int{}}
	for _, b := range roster {
		st.Groups[b.Group]++
		if b.Personal() {
			st.PersonalBots++
		}
	}

	files, err := h.ws.WalkFiles(h.sessionsDir)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	timeline := sessions.Index(files)
	st.Sessions = len(timeline)
	if len(timeline) > 0 {
		st.LatestSession = timeline[0].Date
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling status: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
