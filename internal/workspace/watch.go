package workspace

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// watchDebounce coalesces editor write bursts (most editors fire several
// events per save) into a single notification.
const watchDebounce = 250 * time.Millisecond

// Watch watches a workspace subtree and invokes onChange with the
// workspace-relative path of each changed file. It blocks until ctx is
// cancelled. Watching a directory that does not exist returns ErrNotFound.
func (w *Workspace) Watch(ctx context.Context, rel string, onChange func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	root := w.abs(rel)
	if err := addRecursive(watcher, root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}

	pending := map[string]struct{}{}
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// New directories need their own watch.
			if ev.Op&fsnotify.Create != 0 {
				_ = addRecursive(watcher, ev.Name)
			}
			if sub, err := filepath.Rel(w.root, ev.Name); err == nil {
				pending[filepath.ToSlash(sub)] = struct{}{}
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case <-fire:
			for p := range pending {
				onChange(p)
			}
			pending = map[string]struct{}{}
			fire = nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logrus.WithError(err).Warn("workspace watch error")
		}
	}
}

// addRecursive watches dir and every subdirectory beneath it. Directories
// are watched rather than individual files so renames are seen.
func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
