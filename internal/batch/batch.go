// Package batch processes many documents concurrently with a bounded number
// of workers.
package batch

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Limit returns the worker count for jobs; zero or less means GOMAXPROCS.
func Limit(jobs int) int {
	if jobs > 0 {
		return jobs
	}
	return runtime.GOMAXPROCS(0)
}

// Process runs fn for every path with at most jobs calls in flight. Results
// keep the order of paths. The first error cancels the calls not yet
// started and is returned.
func Process[T any](ctx context.Context, paths []string, jobs int, fn func(context.Context, string) (T, error)) ([]T, error) {
	out := make([]T, len(paths))
	sem := make(chan struct{}, Limit(jobs))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()

			res, err := fn(gctx, path)
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Document is a file read for processing.
type Document struct {
	Path string
	Text string
}

// ReadAll reads paths concurrently.
func ReadAll(ctx context.Context, paths []string, jobs int) ([]Document, error) {
	return Process(ctx, paths, jobs, func(_ context.Context, path string) (Document, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return Document{}, fmt.Errorf("reading %s: %w", path, err)
		}
		return Document{Path: path, Text: string(data)}, nil
	})
}
