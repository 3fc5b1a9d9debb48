// Package globset implements the batched plain-glob matcher half of a
// compiled pattern bundle. Each pattern is validated up front with
// doublestar so malformed syntax fails at compile time rather than at
// match time, then matched with doublestar.Match per lookup against the
// whole path and each trailing run of its "/"-separated components.
package globset

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/corvid-labs/globhunt/pkg/globerr"
)

// Set is an immutable, cheaply-clonable collection of plain glob patterns
// matched as a batch: IsMatch reports true as soon as any one pattern in
// the set matches.
type Set struct {
	patterns []string
}

// Build validates and collects patterns into a Set.
func Build(patterns []string) (*Set, error) {
	set := &Set{patterns: make([]string, 0, len(patterns))}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, globerr.New(globerr.InvalidPattern, "invalid glob pattern: "+p)
		}
		set.patterns = append(set.patterns, p)
	}
	return set, nil
}

// Empty reports whether the set holds no patterns.
func (s *Set) Empty() bool {
	return s == nil || len(s.patterns) == 0
}

// IsMatch reports whether path matches any pattern in the set. A pattern
// matches if it matches the whole path or any trailing run of its
// "/"-separated components, so "*.go" matches "/src/pkg/main.go".
func (s *Set) IsMatch(path string) bool {
	if s == nil {
		return false
	}
	for _, p := range s.patterns {
		for rest := path; ; {
			if ok, _ := doublestar.Match(p, rest); ok {
				return true
			}
			i := strings.IndexByte(rest, '/')
			if i < 0 {
				break
			}
			rest = rest[i+1:]
		}
	}
	return false
}

// Clone returns a cheap copy sharing the underlying pattern slice, safe to
// hand to a concurrent traversal worker.
func (s *Set) Clone() *Set {
	if s == nil {
		return nil
	}
	return &Set{patterns: s.patterns}
}

// Patterns returns the raw pattern strings backing the set.
func (s *Set) Patterns() []string {
	if s == nil {
		return nil
	}
	return s.patterns
}
