package skills

import (
	"errors"

	"github.com/botdeskhq/botdesk/internal/workspace"
)

// Document is the canonical skill file inside a skill directory.
const Document = "SKILL.md"

// skillsDir is the subdirectory of a bot that holds its skills.
const skillsDir = "skills"

// Lister is the directory-listing capability skill discovery consumes.
type Lister interface {
	ListDirectory(path string) ([]workspace.Entry, error)
}

// Ref points at one discovered skill.
type Ref struct {
	Name string // skill directory name, also the "/name" mention token
	Path string // workspace-relative path of its SKILL.md
}

// Discover enumerates the skills of a bot directory. A bot without a
// skills directory has no skills; that is not an error.
func Discover(ls Lister, botDir string) ([]Ref, error) {
	entries, err := ls.ListDirectory(botDir + "/" + skillsDir)
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var refs []Ref
	for _, e := range entries {
		if !e.IsDir {
			continue
		}
		refs = append(refs, Ref{
			Name: e.Name,
			Path: e.Path + "/" + Document,
		})
	}
	return refs, nil
}
