package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

type fakeWatcher struct {
	events chan Event
	errors chan error
	added  []string
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{events: make(chan Event, 16), errors: make(chan error, 1)}
}

func (f *fakeWatcher) Events() <-chan Event { return f.events }
func (f *fakeWatcher) Errors() <-chan error { return f.errors }
func (f *fakeWatcher) Add(name string) error {
	f.added = append(f.added, name)
	return nil
}
func (f *fakeWatcher) Remove(string) error { return nil }
func (f *fakeWatcher) Close() error        { return nil }

type recorder struct {
	mu    sync.Mutex
	calls []string
	seen  chan struct{}
}

func (r *recorder) record(p string) {
	r.mu.Lock()
	r.calls = append(r.calls, p)
	r.mu.Unlock()
	r.seen <- struct{}{}
}

func TestRunDebounces(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "theme.css")
	other := filepath.Join(dir, "other.css")

	fw := newFakeWatcher()
	rec := &recorder{seen: make(chan struct{}, 4)}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, fw, []string{target}, 20*time.Millisecond, rec.record) }()

	fw.events <- Event{Path: target, Op: OpWrite}
	fw.events <- Event{Path: other, Op: OpWrite}
	fw.events <- Event{Path: target, Op: OpChmod}
	fw.events <- Event{Path: target, Op: OpCreate}

	select {
	case <-rec.seen:
	case <-time.After(2 * time.Second):
		t.Fatalf("no change reported")
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.calls) != 1 || rec.calls[0] != target {
		t.Fatalf("expected one change for %s, got %v", target, rec.calls)
	}
	if len(fw.added) != 1 || fw.added[0] != dir {
		t.Fatalf("expected the directory to be watched, got %v", fw.added)
	}
}

func TestRunReturnsWatcherError(t *testing.T) {
	fw := newFakeWatcher()
	fw.errors <- os.ErrPermission
	err := Run(context.Background(), fw, []string{"x.css"}, time.Millisecond, func(string) {})
	if err != os.ErrPermission {
		t.Fatalf("expected watcher error, got %v", err)
	}
}

func TestConvertOp(t *testing.T) {
	if got := convertOp(fsnotify.Write | fsnotify.Chmod); got != OpWrite|OpChmod {
		t.Fatalf("convertOp = %b", got)
	}
}

func TestFSWatcher(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "theme.css")
	if err := os.WriteFile(target, []byte("a { b: c }"), 0644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFSWatcher()
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer fw.Close()

	changed := make(chan string, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Run(ctx, fw, []string{target}, 10*time.Millisecond, func(p string) { changed <- p })

	// Give the watch a moment to register before writing.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(target, []byte("a { b: d }"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		if p != target {
			t.Fatalf("unexpected path %s", p)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no change reported")
	}
}
