// Package watch re-runs work when watched theme files change.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"time"
)

// Op describes a file change.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Event is a change to a path.
type Event struct {
	Path string
	Op   Op
}

// Watcher delivers change events for added paths.
type Watcher interface {
	Events() <-chan Event
	Errors() <-chan error
	Add(name string) error
	Remove(name string) error
	Close() error
}

// Run watches the directories holding paths and calls onChange for a path
// once its events have settled for debounce. Editors often replace files on
// save, so whole directories are watched and events filtered by name. Run
// returns when ctx is done or the watcher fails.
func Run(ctx context.Context, w Watcher, paths []string, debounce time.Duration, onChange func(path string)) error {
	wanted := make(map[string]string, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		wanted[abs] = p
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return err
		}
	}

	pending := make(map[string]bool)
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return err
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if ev.Op == OpChmod {
				continue
			}
			abs, err := filepath.Abs(ev.Path)
			if err != nil {
				continue
			}
			p, ok := wanted[abs]
			if !ok {
				continue
			}
			pending[p] = true
			timer.Reset(debounce)
		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)
			for _, p := range changed {
				onChange(p)
			}
		}
	}
}
