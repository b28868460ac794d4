// Package workspace is the file-system bridge for a botdesk workspace.
//
// Everything under it is a thin capability layer over the workspace root:
// read a file, write a file, list a directory, walk a subtree, watch for
// changes. The core packages (bots, profile, skills, match, sessions) never
// touch the filesystem themselves; they operate on content and entries
// handed to them by callers of this package.
//
// Paths are workspace-relative and slash-separated regardless of platform,
// so higher layers can match on path conventions like "/summaries/".
package workspace

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrNotFound reports a missing file or directory. Callers treat it the
// same as empty content: no bots, no sessions, no skills.
var ErrNotFound = errors.New("workspace: not found")

// Entry describes a single directory entry.
type Entry struct {
	Name    string
	Path    string // workspace-relative, slash-separated
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// NoteFile is an Entry enriched with a title and summary pre-extracted
// from markdown content (frontmatter title, else first heading; summary is
// the first paragraph). Used by clients that render file pickers.
type NoteFile struct {
	Entry
	Title   string
	Summary string
}

// Workspace provides file access rooted at a single directory.
type Workspace struct {
	root string
}

// New creates a Workspace rooted at dir. The directory does not need to
// exist yet; missing paths surface as ErrNotFound on access.
func New(dir string) *Workspace {
	return &Workspace{root: dir}
}

// Root returns the absolute workspace root directory.
func (w *Workspace) Root() string { return w.root }

// abs converts a workspace-relative slash path to a platform path.
func (w *Workspace) abs(rel string) string {
	return filepath.Join(w.root, filepath.FromSlash(rel))
}

// ReadFile returns the content of a file. Missing files return ErrNotFound.
func (w *Workspace) ReadFile(rel string) (string, error) {
	data, err := os.ReadFile(w.abs(rel))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}
	return string(data), nil
}

// WriteFile replaces the whole file content. Last write wins; there is no
// merge. Parent directories are created as needed.
func (w *Workspace) WriteFile(rel, content string) error {
	path := w.abs(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// ListDirectory lists the direct children of a directory. Missing
// directories return ErrNotFound.
func (w *Workspace) ListDirectory(rel string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(w.abs(rel))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:    de.Name(),
			Path:    joinRel(rel, de.Name()),
			IsDir:   de.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return entries, nil
}

// WalkFiles returns every regular file under a directory, recursively.
// A missing directory yields an empty list, not an error.
func (w *Workspace) WalkFiles(rel string) ([]Entry, error) {
	root := w.abs(rel)
	var files []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		sub, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		files = append(files, Entry{
			Name:    d.Name(),
			Path:    joinRel(rel, filepath.ToSlash(sub)),
			IsDir:   false,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ListFilesSortedByModified returns the markdown files under dir, newest
// first, limited to limit (0 means no limit), each enriched with a title
// and summary extracted from its content. Files that cannot be read are
// included without enrichment.
func (w *Workspace) ListFilesSortedByModified(rel string, limit int) ([]NoteFile, error) {
	files, err := w.WalkFiles(rel)
	if err != nil {
		return nil, err
	}

	var notes []NoteFile
	for _, f := range files {
		if !strings.HasSuffix(f.Name, ".md") {
			continue
		}
		notes = append(notes, NoteFile{Entry: f})
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].ModTime.After(notes[j].ModTime)
	})
	if limit > 0 && len(notes) > limit {
		notes = notes[:limit]
	}

	for i := range notes {
		content, err := w.ReadFile(notes[i].Path)
		if err != nil {
			continue
		}
		notes[i].Title, notes[i].Summary = ExtractTitleSummary(content)
	}
	return notes, nil
}

func joinRel(dir, name string) string {
	dir = strings.Trim(dir, "/")
	if dir == "" || dir == "." {
		return name
	}
	return dir + "/" + name
}
