// Package zonewalk decodes every file in a zoneinfo tree.
package zonewalk

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/zoneinfo-tools/tzwalk/tzif"
)

// Result is one successfully decoded file.
type Result struct {
	// Path is the file path relative to the walk root, e.g.
	// "Europe/Zurich".
	Path string
	File tzif.File
}

// Walk traverses the tree rooted at root and decodes every regular file
// concurrently with the given number of workers. Each decode is pure and
// independent, so the files can be processed in any order and in
// parallel.
//
// A file that cannot be read or decoded is logged with its path and
// skipped; one bad file never aborts the walk. The returned error covers
// traversal of the tree itself. Results are sorted by path.
//
// Cancelling ctx stops new files from being issued; decodes already in
// flight finish (a single decode is bounded by its file size).
func Walk(ctx context.Context, root string, workers int, log *zap.Logger) ([]Result, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	if workers < 1 {
		workers = 1
	}
	var (
		jobs    = make(chan string)
		mu      sync.Mutex
		results []Result
		wg      sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rel := range jobs {
				r, err := decodeFile(root, rel)
				if err != nil {
					log.Warn("skipping file", zap.String("path", rel), zap.Error(err))
					continue
				}
				mu.Lock()
				results = append(results, r)
				mu.Unlock()
			}
		}()
	}

feed:
	for _, rel := range paths {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- rel:
		}
	}
	close(jobs)
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, ctx.Err()
}

func decodeFile(root, rel string) (Result, error) {
	b, err := os.ReadFile(filepath.Join(root, rel))
	if err != nil {
		return Result{}, err
	}
	f, err := tzif.Decode(b)
	if err != nil {
		return Result{}, err
	}
	return Result{Path: rel, File: f}, nil
}
