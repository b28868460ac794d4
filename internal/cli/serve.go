package cli

import (
	"fmt"
	"path/filepath"

	appserver "github.com/botdeskhq/botdesk/internal/server"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server (stdio transport)",
		RunE:  runServe,
	}
	cmd.Flags().String("history-db", "", "Usage snapshot database path ('off' to disable)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	historyDB, _ := cmd.Flags().GetString("history-db")

	s, cleanup, err := appserver.New(appserver.Options{
		WorkspaceRoot: workspaceRoot(cmd),
		HistoryDB:     historyDB,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	logrus.WithField("workspace", workspaceRoot(cmd)).Info("botdesk serving on stdio")
	return server.ServeStdio(s)
}

func absPath(p string) (string, error) {
	return filepath.Abs(p)
}
