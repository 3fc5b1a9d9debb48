package walk

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"golang.org/x/sync/semaphore"

	"github.com/corvid-labs/globhunt/pkg/globerr"
	"github.com/corvid-labs/globhunt/pkg/globopts"
	"github.com/corvid-labs/globhunt/pkg/pattern"
	"github.com/corvid-labs/globhunt/pkg/predicate"
	"github.com/corvid-labs/globhunt/pkg/statcache"
)

// Item is one result from a streaming traversal: either a matching path or
// a non-fatal per-entry error.
type Item struct {
	Path string
	Err  error
}

// Stream performs the §4.8 streaming traversal: an iterative depth-first
// directory walk whose driver offloads per-file pattern/predicate work to
// goroutines bounded by a counting semaphore sized at opts.MaxInflight.
// Emission order across files is not guaranteed; directory-visit order is
// deterministic stack discipline.
//
// Cancelling ctx stops the driver from pushing new work at its next
// suspension point; workers already running are allowed to finish, and the
// channel closes once the driver and all outstanding workers have
// returned.
func Stream(ctx context.Context, root string, patterns *pattern.Patterns, pred *predicate.Predicate, stats *statcache.Service, opts globopts.Options) <-chan Item {
	if root == "" {
		root = "."
	}
	maxInflight := opts.MaxInflight
	if maxInflight <= 0 {
		maxInflight = globopts.DefaultMaxInflight
	}
	timeout := opts.AcquireTimeout
	if timeout <= 0 {
		timeout = globopts.DefaultAcquireTimeout
	}

	out := make(chan Item)

	overlay, overlayErr := loadIgnoreOverlay(root, opts.IgnoreFile)
	if overlayErr != nil {
		go func() {
			out <- Item{Err: overlayErr}
			close(out)
		}()
		return out
	}

	sem := semaphore.NewWeighted(int64(maxInflight))

	go func() {
		defer close(out)

		var wg sync.WaitGroup
		visited := make(map[string]bool)
		var visitedMu sync.Mutex

		emit := func(item Item) bool {
			select {
			case out <- item:
				return true
			case <-ctx.Done():
				return false
			}
		}

		stack := []frame{{path: root, depth: 0}}

		for len(stack) > 0 {
			select {
			case <-ctx.Done():
				wg.Wait()
				return
			default:
			}

			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			entries, err := os.ReadDir(cur.path)
			if err != nil {
				if !emit(Item{Err: globerr.Wrap(globerr.Walkdir, err)}) {
					wg.Wait()
					return
				}
				continue
			}

			for _, entry := range entries {
				entryPath := filepath.Join(cur.path, entry.Name())
				if !withinRoot(root, entryPath) {
					continue
				}
				if overlay.excludes(entryPath) {
					continue
				}

				info, err := entry.Info()
				if err != nil {
					if !emit(Item{Err: globerr.Wrap(globerr.Walkdir, err)}) {
						wg.Wait()
						return
					}
					continue
				}

				c := classify(root, entryPath, info, opts.FollowSymlinks)
				if c.skip {
					continue
				}

				if c.cycleReal != "" {
					visitedMu.Lock()
					seen := visited[c.cycleReal]
					visited[c.cycleReal] = true
					visitedMu.Unlock()
					if seen {
						continue // cycles are non-fatal in streaming mode
					}
				}

				if c.isDir {
					if opts.MaxDepth < 0 || cur.depth < opts.MaxDepth {
						stack = append(stack, frame{path: entryPath, depth: cur.depth + 1})
					}
					continue
				}

				acquireCtx, cancel := context.WithTimeout(ctx, timeout)
				acquireErr := sem.Acquire(acquireCtx, 1)
				cancel()
				if acquireErr != nil {
					continue // timed out or semaphore closed: skip the entry
				}

				wg.Add(1)
				go func(p string) {
					defer wg.Done()
					defer sem.Release(1)
					processCandidate(p, patterns, pred, stats, emit)
				}(entryPath)
			}
		}

		wg.Wait()
	}()

	return out
}

// processCandidate performs the per-file CPU-bound work: UTF-8 validation,
// pattern matching, and predicate evaluation.
func processCandidate(path string, patterns *pattern.Patterns, pred *predicate.Predicate, stats *statcache.Service, emit func(Item) bool) {
	if !utf8.ValidString(path) {
		return
	}
	if !patterns.IsMatch(path) {
		return
	}

	if !pred.Empty() {
		meta, err := stats.Stat(path)
		if err != nil {
			emit(Item{Err: err})
			return
		}
		if !pred.Matches(meta) {
			return
		}
	}

	emit(Item{Path: path})
}
