package watch

import (
	"github.com/fsnotify/fsnotify"
)

// opTable maps fsnotify operations onto ours.
var opTable = []struct {
	from fsnotify.Op
	to   Op
}{
	{fsnotify.Create, OpCreate},
	{fsnotify.Write, OpWrite},
	{fsnotify.Remove, OpRemove},
	{fsnotify.Rename, OpRename},
	{fsnotify.Chmod, OpChmod},
}

// FSWatcher is the Watcher backed by OS notifications.
type FSWatcher struct {
	inner  *fsnotify.Watcher
	events chan Event
	errs   chan error
}

// NewFSWatcher starts an OS-backed watcher. Close it to stop the forwarding
// goroutine; the Events channel is closed afterwards.
func NewFSWatcher() (*FSWatcher, error) {
	inner, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &FSWatcher{
		inner:  inner,
		events: make(chan Event, 64),
		errs:   make(chan error, 1),
	}
	go fw.forward()
	return fw, nil
}

func (fw *FSWatcher) forward() {
	defer close(fw.events)
	events, errs := fw.inner.Events, fw.inner.Errors
	for events != nil {
		select {
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			fw.events <- Event{Path: ev.Name, Op: convertOp(ev.Op)}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			// Only the first unread error is kept.
			select {
			case fw.errs <- err:
			default:
			}
		}
	}
}

func convertOp(in fsnotify.Op) Op {
	var op Op
	for _, m := range opTable {
		if in.Has(m.from) {
			op |= m.to
		}
	}
	return op
}

func (fw *FSWatcher) Events() <-chan Event     { return fw.events }
func (fw *FSWatcher) Errors() <-chan error     { return fw.errs }
func (fw *FSWatcher) Add(path string) error    { return fw.inner.Add(path) }
func (fw *FSWatcher) Remove(path string) error { return fw.inner.Remove(path) }
func (fw *FSWatcher) Close() error             { return fw.inner.Close() }
