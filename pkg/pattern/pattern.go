// Package pattern compiles a raw list of pattern strings — plain globs,
// extended globs, raw "re:"-prefixed regexes, and brace alternations —
// into a Patterns bundle that can answer IsMatch against a path cheaply.
package pattern

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/corvid-labs/globhunt/pkg/brace"
	"github.com/corvid-labs/globhunt/pkg/globerr"
	"github.com/corvid-labs/globhunt/pkg/globset"
	"github.com/corvid-labs/globhunt/pkg/micromatch"
	"github.com/corvid-labs/globhunt/pkg/patterncache"
)

// Patterns is the compiled form of a pattern list: a fast-path glob-set
// plus a slice of regexes, tested in that order.
type Patterns struct {
	globs   *globset.Set
	regexes []*regexp2.Regexp
}

// IsMatch reports whether path matches the compiled pattern set. The
// glob-set is checked first since it is the cheaper, common case.
func (p *Patterns) IsMatch(path string) bool {
	if p == nil {
		return false
	}
	if p.globs.IsMatch(path) {
		return true
	}
	for _, re := range p.regexes {
		if ok, _ := re.MatchString(path); ok {
			return true
		}
	}
	return false
}

// Empty reports whether the compiled set matches nothing by construction
// (no glob patterns and no regexes).
func (p *Patterns) Empty() bool {
	return p == nil || (p.globs.Empty() && len(p.regexes) == 0)
}

// CompileMany compiles raw pattern strings into a Patterns bundle, using
// caches for the glob-set and for any compiled regexes.
func CompileMany(patterns []string, caches *patterncache.Caches) (*Patterns, error) {
	var globLiterals []string
	var regexSources []string

	for _, raw := range patterns {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if strings.Contains(trimmed, "**/..") || strings.Contains(trimmed, "/../") {
			return nil, globerr.New(globerr.PathTraversal, "pattern attempts path traversal: "+trimmed)
		}

		var expansions []string
		if strings.Contains(trimmed, "{") && strings.Contains(trimmed, "}") {
			ex, err := brace.Expand(trimmed)
			if err != nil {
				return nil, err
			}
			expansions = ex
		} else {
			expansions = []string{trimmed}
		}

		for _, exp := range expansions {
			switch {
			case strings.HasPrefix(exp, "re:"):
				regexSources = append(regexSources, strings.TrimPrefix(exp, "re:"))
			case micromatch.HasExtended(exp):
				src, err := micromatch.ToRegex(exp)
				if err != nil {
					return nil, err
				}
				regexSources = append(regexSources, src)
			default:
				globLiterals = append(globLiterals, exp)
			}
		}
	}

	globs, err := caches.GlobSet(globLiterals)
	if err != nil {
		return nil, err
	}

	regexes := make([]*regexp2.Regexp, 0, len(regexSources))
	for _, src := range regexSources {
		re, err := caches.Regex(src)
		if err != nil {
			return nil, err
		}
		regexes = append(regexes, re)
	}

	return &Patterns{globs: globs, regexes: regexes}, nil
}
