package bots

import (
	"errors"
	"strings"

	"github.com/botdeskhq/botdesk/internal/workspace"
)

// Lister is the directory-listing capability the discoverer consumes.
// *workspace.Workspace satisfies it.
type Lister interface {
	ListDirectory(path string) ([]workspace.Entry, error)
}

// Discover scans the team root for bots and returns the sorted roster.
//
// Direct "bot-*" subdirectories of the root are team bots. Every other
// subdirectory not starting with an underscore is a member folder, and its
// own "bot-*" subdirectories are personal bots owned by that member.
// A missing team root yields an empty roster.
func Discover(ls Lister, teamRoot string) ([]Entry, error) {
	top, err := ls.ListDirectory(teamRoot)
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var roster []Entry
	for _, e := range top {
		if !e.IsDir {
			continue
		}
		if strings.HasPrefix(e.Name, Prefix) {
			roster = append(roster, Entry{
				Name:  e.Name,
				Dir:   e.Path,
				Group: GroupOf(e.Name),
			})
			continue
		}
		if strings.HasPrefix(e.Name, "_") {
			continue
		}
		personal, err := memberBots(ls, e)
		if err != nil {
			return nil, err
		}
		roster = append(roster, personal...)
	}

	Sort(roster)
	return roster, nil
}

// memberBots lists the personal bots inside one member folder. A member
// folder with nothing in it (or that vanished mid-scan) contributes none.
func memberBots(ls Lister, member workspace.Entry) ([]Entry, error) {
	sub, err := ls.ListDirectory(member.Path)
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var personal []Entry
	for _, e := range sub {
		if !e.IsDir || !strings.HasPrefix(e.Name, Prefix) {
			continue
		}
		personal = append(personal, Entry{
			Name:  e.Name,
			Dir:   e.Path,
			Group: GroupPersonal,
			Owner: member.Name,
		})
	}
	return personal, nil
}
