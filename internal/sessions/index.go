// Package sessions indexes a workspace sessions folder into a dated,
// typed, chronologically sorted timeline.
//
// Daily notes are files named exactly "notes.md", dated from the first ISO
// date in their path. Weekly and monthly summaries live under a
// "/summaries/" segment and are dated from their filename pattern. Files
// without a resolvable date are dropped, never an error.
package sessions

import (
	"regexp"
	"sort"
	"strings"

	"github.com/botdeskhq/botdesk/internal/bots"
	"github.com/botdeskhq/botdesk/internal/match"
	"github.com/botdeskhq/botdesk/internal/workspace"
)

// Kind classifies a session entry.
type Kind string

const (
	KindDaily   Kind = "daily"
	KindWeekly  Kind = "weekly"
	KindMonthly Kind = "monthly"
)

// Entry is one indexed session file. Entries are identified by Path and
// sorted descending by Date; the zero-padded ISO format makes plain string
// comparison correct.
type Entry struct {
	Path string
	Date string // YYYY-MM-DD, never empty
	Kind Kind
}

const dailyName = "notes.md"

// Index builds the session timeline from a file listing: daily notes plus
// summaries, dated, undatable files dropped, sorted newest first.
func Index(files []workspace.Entry) []Entry {
	var out []Entry
	for _, f := range files {
		if e, ok := classify(f); ok {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

func classify(f workspace.Entry) (Entry, bool) {
	if f.Name == dailyName {
		date, ok := PathDate(f.Path)
		if !ok {
			return Entry{}, false
		}
		return Entry{Path: f.Path, Date: date, Kind: KindDaily}, true
	}

	if strings.Contains("/"+f.Path, "/summaries/") && strings.HasSuffix(f.Name, ".md") {
		date, kind, ok := SummaryDate(f.Name)
		if !ok {
			return Entry{}, false
		}
		return Entry{Path: f.Path, Date: date, Kind: kind}, true
	}

	return Entry{}, false
}

// botHeading matches the "## Bot: <name>" headings a daily note uses to
// record which bots were worked with.
var botHeading = regexp.MustCompile(`(?m)^## Bot:\s*(.+?)\s*$`)

// Reader is the content capability the bot filter needs.
type Reader interface {
	ReadFile(path string) (string, error)
}

// FilterByBot narrows a timeline to one bot. Summaries are cross-cutting
// context and always survive the filter. A daily note survives only if at
// least one of its bot headings resolves to the filtered bot's directory.
// Notes that cannot be read contribute nothing and are dropped.
func FilterByBot(entries []Entry, botDir string, r Reader, roster []bots.Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Kind != KindDaily {
			out = append(out, e)
			continue
		}
		// Missing or unreadable content contributes nothing.
		content, err := r.ReadFile(e.Path)
		if err != nil {
			continue
		}
		if mentionsBot(content, botDir, roster) {
			out = append(out, e)
		}
	}
	return out
}

func mentionsBot(content, botDir string, roster []bots.Entry) bool {
	for _, m := range botHeading.FindAllStringSubmatch(content, -1) {
		if resolved := match.Resolve(m[1], roster); resolved != nil && resolved.Dir == botDir {
			return true
		}
	}
	return false
}
