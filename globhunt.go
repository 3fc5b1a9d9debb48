// Package globhunt provides high-performance pattern-based file discovery:
// shell-style globs, brace alternations, extended-glob quantifiers, and
// raw regex escapes, matched against a filesystem tree synchronously or as
// a bounded-concurrency stream.
//
// # Basic Usage
//
// Find files matching a set of patterns under a root directory:
//
//	paths, err := globhunt.GlobSync([]string{"*.go", "*.md"}, []string{"."}, globopts.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, p := range paths {
//	    fmt.Println(p)
//	}
//
// # Streaming
//
// For large trees, stream results as they're discovered instead of
// materializing the whole list:
//
//	for item := range globhunt.GlobStream(ctx, patterns, ".", globopts.Default()) {
//	    if item.Err != nil {
//	        log.Println("warning:", item.Err)
//	        continue
//	    }
//	    fmt.Println(item.Path)
//	}
package globhunt

import (
	"context"
	"sync"

	"github.com/corvid-labs/globhunt/pkg/globopts"
	"github.com/corvid-labs/globhunt/pkg/pattern"
	"github.com/corvid-labs/globhunt/pkg/patterncache"
	"github.com/corvid-labs/globhunt/pkg/predicate"
	"github.com/corvid-labs/globhunt/pkg/statcache"
	"github.com/corvid-labs/globhunt/pkg/walk"
)

// ensureLongPathPrefixes applies globopts.EnsureLongPathPrefix to every
// result path in place, right before they are handed back to the caller.
// A no-op on non-Windows platforms.
func ensureLongPathPrefixes(paths []string) []string {
	for i, p := range paths {
		paths[i] = globopts.EnsureLongPathPrefix(p)
	}
	return paths
}

// Re-export commonly used types for convenience. Callers can import just
// "github.com/corvid-labs/globhunt" without subpackages for the common
// path.
type (
	// Patterns is a compiled glob-set + regex bundle ready for matching.
	Patterns = pattern.Patterns

	// Predicate holds optional size/type/time constraints.
	Predicate = predicate.Predicate

	// Metadata is a filesystem metadata snapshot.
	Metadata = statcache.Metadata

	// FileType classifies a Metadata entry's kind.
	FileType = statcache.FileType

	// Options configures compilation and traversal.
	Options = globopts.Options

	// OptionsBuilder constructs an Options fluently.
	OptionsBuilder = globopts.Builder

	// StreamItem is one result from GlobStream: a matching path or a
	// non-fatal per-entry error.
	StreamItem = walk.Item

	// CacheMetrics reports hit/miss/eviction counts for a compiled-artifact
	// cache.
	CacheMetrics = patterncache.Metrics
)

// Re-export the file-type constants.
const (
	FileTypeFile    = statcache.File
	FileTypeDir     = statcache.Dir
	FileTypeSymlink = statcache.Symlink
)

// global compilation cache, process-wide and mutex-internal, mirroring §9's
// stated global-state model: reimplementations may choose per-call caches
// instead, but a shared default is simplest for library consumers that call
// GlobSync/GlobStream repeatedly. The metadata (stat) service is NOT shared
// this way: its symlink-following and read-only policy are per-call options
// (globopts.Options.FollowSymlinks et al.), and baking the first caller's
// choice into a process-wide singleton would silently corrupt results for
// every later call made with different options. It is instead built fresh
// per call, scoped to that call's options.
var (
	cachesOnce sync.Once
	caches     *patterncache.Caches
)

func sharedCaches() *patterncache.Caches {
	cachesOnce.Do(func() {
		caches = patterncache.New(patterncache.DefaultCapacity, patterncache.DefaultTTL)
	})
	return caches
}

func newStatService(opts globopts.Options) *statcache.Service {
	return statcache.New(statcache.Options{
		Capacity:       opts.StatCacheCapacity,
		TTL:            opts.StatCacheTTL,
		FollowSymlinks: opts.FollowSymlinks,
		RejectReadOnly: opts.RejectReadOnlyFiles,
	})
}

// CompilePatterns compiles a raw pattern list into a reusable Patterns
// bundle, per the §4.4 compilation contract.
func CompilePatterns(patterns []string, opts globopts.Options) (*Patterns, error) {
	return pattern.CompileMany(patterns, sharedCaches())
}

// GlobSync traverses each root in order and concatenates the matching file
// paths. Compilation happens once; each root is walked with the same
// compiled Patterns.
func GlobSync(patterns []string, roots []string, opts globopts.Options) ([]string, error) {
	compiled, err := CompilePatterns(patterns, opts)
	if err != nil {
		return nil, err
	}
	return GlobSyncCompiled(compiled, nil, roots, opts)
}

// GlobSyncCompiled is GlobSync for a Patterns value the caller already
// compiled, optionally applying a Predicate.
func GlobSyncCompiled(compiled *Patterns, pred *Predicate, roots []string, opts globopts.Options) ([]string, error) {
	statSvc := newStatService(opts)

	var all []string
	for _, root := range roots {
		rootOpts := opts
		rootOpts.RootDir = root
		results, err := walk.Sync(root, compiled, pred, statSvc, rootOpts)
		if err != nil {
			return nil, err
		}
		all = append(all, results...)
	}
	return ensureLongPathPrefixes(all), nil
}

// GlobStream walks a single root and streams matching paths (and non-fatal
// per-entry errors) as they're discovered. Multi-root streaming is the
// caller's concern: invoke once per root, as spec'd.
func GlobStream(ctx context.Context, patterns []string, root string, opts globopts.Options) <-chan StreamItem {
	compiled, err := CompilePatterns(patterns, opts)
	if err != nil {
		ch := make(chan StreamItem, 1)
		ch <- StreamItem{Err: err}
		close(ch)
		return ch
	}
	return GlobStreamCompiled(ctx, compiled, nil, root, opts)
}

// GlobStreamCompiled is GlobStream for an already-compiled Patterns value,
// optionally applying a Predicate.
func GlobStreamCompiled(ctx context.Context, compiled *Patterns, pred *Predicate, root string, opts globopts.Options) <-chan StreamItem {
	statSvc := newStatService(opts)
	rootOpts := opts
	rootOpts.RootDir = root
	raw := walk.Stream(ctx, root, compiled, pred, statSvc, rootOpts)

	out := make(chan StreamItem)
	go func() {
		defer close(out)
		for item := range raw {
			if item.Err == nil {
				item.Path = globopts.EnsureLongPathPrefix(item.Path)
			}
			out <- item
		}
	}()
	return out
}

// ClearCaches drops all entries from both the glob-set and regex
// compilation caches.
func ClearCaches() {
	sharedCaches().Clear()
}

// GlobCacheMetrics reports glob-set compilation cache activity.
func GlobCacheMetrics() CacheMetrics {
	return sharedCaches().GlobCacheMetrics()
}

// RegexCacheMetrics reports regex compilation cache activity.
func RegexCacheMetrics() CacheMetrics {
	return sharedCaches().RegexCacheMetrics()
}
