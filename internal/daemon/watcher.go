// Package daemon watches repository worktrees and triggers a sync run
// when changes settle. This is the convenience layer behind
// `pushwatch watch`; the one-shot hook path does not use it.
package daemon

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDefault is the default settle interval for file events.
// Agent sessions write in bursts; one sync per burst is enough.
const debounceDefault = 2 * time.Second

// WorktreeWatcher watches repository directories recursively (minus
// .git) and invokes the trigger after events stop arriving.
type WorktreeWatcher struct {
	roots    []string
	trigger  func()
	debounce time.Duration
}

// NewWorktreeWatcher creates a watcher over the given worktree roots.
func NewWorktreeWatcher(roots []string, trigger func()) *WorktreeWatcher {
	return &WorktreeWatcher{
		roots:    roots,
		trigger:  trigger,
		debounce: debounceDefault,
	}
}

// Run watches the worktrees. Blocks until ctx is cancelled.
// A single timer resets on each event; when it fires, one trigger runs.
// Zero per-event goroutines: the sync pipeline is strictly sequential,
// so collapsing bursts into one run is correct, not just cheaper.
func (w *WorktreeWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	for _, root := range w.roots {
		if err := addRecursive(watcher, root); err != nil {
			// Missing worktrees are a normal skip, same as the sync path.
			continue
		}
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ignored(event.Name) {
				continue
			}
			// New directories join the watch set so nested writes are seen.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addRecursive(watcher, event.Name)
				}
			}
			if pending {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			}
			timer.Reset(w.debounce)
			pending = true

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			_ = err // transient watch errors are not fatal

		case <-timer.C:
			if pending {
				pending = false
				w.trigger()
			}
		}
	}
}

// addRecursive adds dir and all subdirectories except .git to the watcher.
func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		_ = watcher.Add(path)
		return nil
	})
}

// ignored filters events from git internals and editor temp files,
// which would otherwise re-trigger the sync that caused them.
func ignored(path string) bool {
	if strings.Contains(path, string(filepath.Separator)+".git"+string(filepath.Separator)) ||
		strings.HasSuffix(path, string(filepath.Separator)+".git") {
		return true
	}
	base := filepath.Base(path)
	return strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, "~") || base == ".DS_Store"
}
