// Package walk implements the synchronous and streaming filesystem
// traversal engines that drive pattern and predicate evaluation over a
// directory tree.
package walk

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/corvid-labs/globhunt/pkg/globerr"
	"github.com/corvid-labs/globhunt/pkg/globopts"
	"github.com/corvid-labs/globhunt/pkg/pattern"
	"github.com/corvid-labs/globhunt/pkg/predicate"
	"github.com/corvid-labs/globhunt/pkg/statcache"
)

// frame is a (directory, depth) entry on the traversal stack, depth 0
// being root itself.
type frame struct {
	path  string
	depth int
}

// withinRoot reports whether candidate lies within (or equals) root, after
// both are made absolute.
func withinRoot(root, candidate string) bool {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	absCandidate, err := filepath.Abs(candidate)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absRoot, absCandidate)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// classified is the outcome of inspecting one directory entry: whether it
// is a directory to descend into, and whether it should be skipped
// outright (broken symlink, not-following-symlinks policy, and so on).
type classified struct {
	isDir     bool
	skip      bool
	cycleReal string // non-empty when a directory symlink was resolved and should be tracked for cycles
}

func classify(root, entryPath string, info os.FileInfo, followSymlinks bool) classified {
	isSymlink := info.Mode()&os.ModeSymlink != 0
	if !isSymlink {
		return classified{isDir: info.IsDir()}
	}
	if !followSymlinks {
		return classified{skip: true}
	}
	real, err := filepath.EvalSymlinks(entryPath)
	if err != nil {
		return classified{skip: true}
	}
	resolved, err := os.Stat(real)
	if err != nil {
		return classified{skip: true}
	}
	if resolved.IsDir() {
		if !withinRoot(root, real) {
			return classified{skip: true}
		}
		return classified{isDir: true, cycleReal: real}
	}
	return classified{isDir: false}
}

// Sync performs the §4.7 synchronous traversal: a single materialized list
// of matching file paths under root.
func Sync(root string, patterns *pattern.Patterns, pred *predicate.Predicate, stats *statcache.Service, opts globopts.Options) ([]string, error) {
	if root == "" {
		root = "."
	}

	overlay, err := loadIgnoreOverlay(root, opts.IgnoreFile)
	if err != nil {
		return nil, err
	}

	var results []string
	visited := make(map[string]bool)
	stack := []frame{{path: root, depth: 0}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(cur.path)
		if err != nil {
			return nil, globerr.Wrap(globerr.Walkdir, err)
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
				return nil, globerr.Wrap(globerr.Walkdir, err)
			}

			c := classify(root, entryPath, info, opts.FollowSymlinks)
			if c.skip {
				continue
			}

			if c.cycleReal != "" {
				if visited[c.cycleReal] {
					return nil, globerr.New(globerr.SymlinkCycle, "symlink cycle detected at "+entryPath)
				}
				visited[c.cycleReal] = true
			}

			if c.isDir {
				if opts.MaxDepth < 0 || cur.depth < opts.MaxDepth {
					stack = append(stack, frame{path: entryPath, depth: cur.depth + 1})
				}
				continue
			}

			if !utf8.ValidString(entryPath) {
				continue
			}
			if !patterns.IsMatch(entryPath) {
				continue
			}

			if !pred.Empty() {
				meta, err := stats.Stat(entryPath)
				if err != nil {
					return nil, err
				}
				if !pred.Matches(meta) {
					continue
				}
			}

			results = append(results, entryPath)
		}
	}

	return results, nil
}
