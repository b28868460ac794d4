package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/botdeskhq/botdesk/internal/bots"
	"github.com/botdeskhq/botdesk/internal/match"
	"github.com/botdeskhq/botdesk/internal/sessions"
	"github.com/botdeskhq/botdesk/internal/skills"
	"github.com/botdeskhq/botdesk/internal/workspace"
	"github.com/spf13/cobra"
)

func newBotsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bots",
		Short: "List the bot roster",
		RunE:  runBots,
	}
	cmd.Flags().String("group", "", "Only show bots in this group")
	return cmd
}

func runBots(cmd *cobra.Command, args []string) error {
	ws := workspace.New(workspaceRoot(cmd))
	roster, err := bots.Discover(ws, ".")
	if err != nil {
		return fmt.Errorf("scanning roster: %w", err)
	}

	group, _ := cmd.Flags().GetString("group")

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGROUP\tOWNER")
	shown := 0
	for _, b := range roster {
		if group != "" && b.Group != group {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.Name, b.Group, b.Owner)
		shown++
	}
	w.Flush()
	if shown == 0 {
		fmt.Println("no bots found")
	}
	return nil
}

func newResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <name>",
		Short: "Resolve a free-text bot name against the roster",
		Args:  cobra.ExactArgs(1),
		RunE:  runResolve,
	}
}

func runResolve(cmd *cobra.Command, args []string) error {
	ws := workspace.New(workspaceRoot(cmd))
	roster, err := bots.Discover(ws, ".")
	if err != nil {
		return fmt.Errorf("scanning roster: %w", err)
	}

	entry := match.Resolve(args[0], roster)
	if entry == nil {
		fmt.Printf("no matching bot for %q\n", args[0])
		return nil
	}
	fmt.Printf("%s (%s) %s\n", entry.Name, entry.Group, entry.Dir)
	return nil
}

func newSessionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Show the session timeline, newest first",
		RunE:  runSessions,
	}
	cmd.Flags().String("kind", "", "Only show entries of this kind: daily|weekly|monthly")
	cmd.Flags().String("bot", "", "Only show sessions involving this bot")
	cmd.Flags().Int("limit", 20, "Maximum entries to show (0 = all)")
	return cmd
}

func runSessions(cmd *cobra.Command, args []string) error {
	ws := workspace.New(workspaceRoot(cmd))
	files, err := ws.WalkFiles("sessions")
	if err != nil {
		return fmt.Errorf("scanning sessions: %w", err)
	}
	timeline := sessions.Index(files)

	if bot, _ := cmd.Flags().GetString("bot"); bot != "" {
		roster, err := bots.Discover(ws, ".")
		if err != nil {
			return fmt.Errorf("scanning roster: %w", err)
		}
		entry := match.Resolve(bot, roster)
		if entry == nil {
			return fmt.Errorf("no matching bot for %q", bot)
		}
		timeline = sessions.FilterByBot(timeline, entry.Dir, ws, roster)
	}

	kind, _ := cmd.Flags().GetString("kind")
	limit, _ := cmd.Flags().GetInt("limit")

	shown := 0
	for _, e := range timeline {
		if kind != "" && string(e.Kind) != kind {
			continue
		}
		if limit > 0 && shown >= limit {
			break
		}
		fmt.Printf("%s  %-8s %s\n", e.Date, e.Kind, e.Path)
		shown++
	}
	if shown == 0 {
		fmt.Println("no sessions found")
	}
	return nil
}

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Print workspace files as they change (Ctrl-C to stop)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	ws := workspace.New(workspaceRoot(cmd))
	err := ws.Watch(cmd.Context(), dir, func(path string) {
		fmt.Println(path)
	})
	if errors.Is(err, workspace.ErrNotFound) {
		return fmt.Errorf("no such directory %q in the workspace", dir)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newSkillsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "skills <bot>",
		Short: "List a bot's skills and their status",
		Args:  cobra.ExactArgs(1),
		RunE:  runSkills,
	}
}

func runSkills(cmd *cobra.Command, args []string) error {
	ws := workspace.New(workspaceRoot(cmd))
	roster, err := bots.Discover(ws, ".")
	if err != nil {
		return fmt.Errorf("scanning roster: %w", err)
	}
	entry := match.Resolve(args[0], roster)
	if entry == nil {
		return fmt.Errorf("no matching bot for %q", args[0])
	}

	refs, err := skills.Discover(ws, entry.Dir)
	if err != nil {
		return fmt.Errorf("discovering skills: %w", err)
	}
	if len(refs) == 0 {
		fmt.Printf("%s has no skills\n", entry.Name)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SKILL\tSTATUS\tCOMMAND\tLAST REVISED")
	for _, ref := range refs {
		content, err := ws.ReadFile(ref.Path)
		if err != nil && !errors.Is(err, workspace.ErrNotFound) {
			return fmt.Errorf("reading %s: %w", ref.Path, err)
		}
		meta := skills.ParseMeta(content)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ref.Name, meta.Status, meta.Command, meta.LastRevised)
	}
	return w.Flush()
}
