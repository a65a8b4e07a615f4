package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/stylesheet"
)

func TestProcessKeepsOrderAndBound(t *testing.T) {
	paths := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	var inFlight, peak int32

	out, err := Process(context.Background(), paths, 3, func(_ context.Context, p string) (string, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return strings.ToUpper(p), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(out, "") != "ABCDEFGH" {
		t.Fatalf("order lost: %v", out)
	}
	if peak > 3 {
		t.Fatalf("more than 3 jobs in flight: %d", peak)
	}
}

func TestProcessError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Process(context.Background(), []string{"ok", "bad", "ok"}, 1, func(_ context.Context, p string) (int, error) {
		if p == "bad" {
			return 0, boom
		}
		return 1, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestReadAllAndParse(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, text := range []string{"a { b: c }", "x { y: 1 } z { w: 2 }"} {
		p := filepath.Join(dir, string(rune('0'+i))+".theme")
		if err := os.WriteFile(p, []byte(text), 0644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}

	docs, err := ReadAll(context.Background(), paths, 0)
	if err != nil {
		t.Fatal(err)
	}
	counts, err := Process(context.Background(), paths, 2, func(_ context.Context, p string) (int, error) {
		for _, d := range docs {
			if d.Path == p {
				return len(stylesheet.Parse(d.Text).Value.Rules), nil
			}
		}
		return 0, errors.New("missing document")
	})
	if err != nil {
		t.Fatal(err)
	}
	if counts[0] != 1 || counts[1] != 2 {
		t.Fatalf("rule counts wrong: %v", counts)
	}

	if _, err := ReadAll(context.Background(), []string{filepath.Join(dir, "nope")}, 1); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}
