// Package cli defines the botdesk command tree.
package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the botdesk CLI.
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "botdesk",
		Short:   "Knowledge-management server for a team bot workspace",
		Version: version,
		Long: `Botdesk serves a team workspace of bot directories, skill documents,
session notes and invocation logs. It runs as an MCP server (serve) for
editor clients, and offers read-only commands for terminal use.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(cmd)
		},
	}

	rootCmd.PersistentFlags().StringP("workspace", "w", ".", "Workspace root directory")
	rootCmd.PersistentFlags().String("log-level", defaultLogLevel(), "Log level: debug|info|warn|error")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newBotsCommand())
	rootCmd.AddCommand(newResolveCommand())
	rootCmd.AddCommand(newSessionsCommand())
	rootCmd.AddCommand(newSkillsCommand())
	rootCmd.AddCommand(newWatchCommand())

	return rootCmd
}

func defaultLogLevel() string {
	if lv := os.Getenv("BOTDESK_LOG_LEVEL"); lv != "" {
		return lv
	}
	return "info"
}

// configureLogging sends logs to stderr so the MCP stdio transport keeps
// stdout to itself.
func configureLogging(cmd *cobra.Command) {
	logrus.SetOutput(os.Stderr)
	raw, _ := cmd.Flags().GetString("log-level")
	level, err := logrus.ParseLevel(raw)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func workspaceRoot(cmd *cobra.Command) string {
	root, _ := cmd.Flags().GetString("workspace")
	if abs, err := absPath(root); err == nil {
		return abs
	}
	return root
}
