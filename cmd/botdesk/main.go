// Botdesk: knowledge-management server for a team bot workspace.
//
// The workspace is a directory of markdown and JSON artifacts: bot
// definition directories, skill documents, daily session notes,
// weekly/monthly summaries and skill invocation logs.
//
// Usage:
//
//	botdesk serve            # Start MCP server (stdio transport)
//	botdesk bots             # List the bot roster
//	botdesk sessions         # Show the session timeline
//	botdesk skills <bot>     # List a bot's skills
//	botdesk resolve <name>   # Resolve a historical bot name
//	botdesk watch [dir]      # Print files as they change
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/botdeskhq/botdesk/internal/cli"
	"github.com/botdeskhq/botdesk/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(server.Version).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
