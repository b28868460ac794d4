// Package bots models the bot roster: bot directories discovered in a team
// workspace, classified into team and personal bots and grouped by
// department.
package bots

import (
	"sort"
	"strings"
)

// Prefix is the directory naming convention every bot follows.
const Prefix = "bot-"

// GroupPersonal is the group assigned to every personal bot, regardless of
// any department token in its name.
const GroupPersonal = "personal"

// Document is the instruction document inside a bot directory, the source
// of its profile.
const Document = "BOT.md"

// Entry is one bot in the roster. Entries are rebuilt on every scan and
// never mutated.
type Entry struct {
	Name  string // directory slug, always Prefix-prefixed
	Dir   string // workspace-relative directory path
	Group string // department code, or GroupPersonal
	Owner string // member name for personal bots, empty for team bots
}

// Personal reports whether the entry is a personal bot.
func (e Entry) Personal() bool { return e.Owner != "" }

// GroupOf derives the department group from a bot slug: strip the prefix,
// take the segment before the first remaining dash. "bot-eng-analyst" is in
// "eng"; "bot-triage" is in "triage".
func GroupOf(name string) string {
	rest := strings.TrimPrefix(name, Prefix)
	if i := strings.Index(rest, "-"); i >= 0 {
		return rest[:i]
	}
	return rest
}

// groupPriority fixes the display order of groups. Unknown groups sort
// after every known one.
var groupPriority = map[string]int{
	GroupPersonal: 0,
	"eng":         1,
	"corp":        2,
	"ops":         3,
	"sales":       4,
	"cusops":      5,
	"acct":        6,
}

func groupRank(group string) int {
	if r, ok := groupPriority[group]; ok {
		return r
	}
	return len(groupPriority)
}

// Sort orders a roster in place: personal bots before team bots, then by
// group priority, then by name.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Personal() != b.Personal() {
			return a.Personal()
		}
		ra, rb := groupRank(a.Group), groupRank(b.Group)
		if ra != rb {
			return ra < rb
		}
		return a.Name < b.Name
	})
}
