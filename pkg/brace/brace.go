// Package brace expands shell-style brace alternations ({a,b} and {m..n})
// into a flat list of strings, ahead of glob/regex compilation.
package brace

import (
	"strconv"
	"strings"

	"github.com/corvid-labs/globhunt/pkg/globerr"
)

// MaxDepth bounds recursive brace nesting.
const MaxDepth = 10

// MaxExpansions bounds the cardinality of the expanded output.
const MaxExpansions = 1000

// Expand expands all top-level brace groups in input into an ordered list of
// strings. An input with no top-level group expands to itself as a
// singleton. Unbalanced braces fall through to the singleton case.
func Expand(input string) ([]string, error) {
	return expand(input, 0)
}

func expand(input string, depth int) ([]string, error) {
	if depth > MaxDepth {
		return nil, globerr.New(globerr.BraceExpansionDepth, "brace expansion exceeded maximum depth")
	}

	start, end, ok := findBrace(input)
	if !ok {
		return []string{input}, nil
	}

	before := input[:start]
	inner := input[start+1 : end]
	after := input[end+1:]

	items := splitTopLevel(inner)
	alternatives := make([]string, 0, len(items))
	for _, it := range items {
		if lo, hi, ok := parseRange(it); ok {
			for v := lo; v <= hi; v++ {
				alternatives = append(alternatives, strconv.FormatInt(v, 10))
			}
			continue
		}
		alternatives = append(alternatives, it)
	}

	var out []string
	for _, alt := range alternatives {
		mids, err := expand(alt, depth+1)
		if err != nil {
			return nil, err
		}
		suffixes, err := expand(after, depth+1)
		if err != nil {
			return nil, err
		}
		for _, mid := range mids {
			for _, suf := range suffixes {
				out = append(out, before+mid+suf)
				if len(out) > MaxExpansions {
					return nil, globerr.New(globerr.BraceExpansionCount, "brace expansion exceeded maximum expansions")
				}
			}
		}
	}

	return out, nil
}

// findBrace locates the first top-level balanced { ... } region. Returns
// ok=false if none is found (including unbalanced input, which is treated
// as having no group).
func findBrace(s string) (start, end int, ok bool) {
	depth := 0
	start = -1
	for i, ch := range s {
		switch ch {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				// Unbalanced closing brace: no group.
				return 0, 0, false
			}
			depth--
			if depth == 0 {
				return start, i, true
			}
		}
	}
	return 0, 0, false
}

// splitTopLevel splits inner content on commas that are not inside a nested
// brace group. Empty alternatives are preserved.
func splitTopLevel(inner string) []string {
	var items []string
	var buf strings.Builder
	depth := 0

	for _, ch := range inner {
		switch {
		case ch == '{':
			depth++
			buf.WriteRune(ch)
		case ch == '}':
			if depth > 0 {
				depth--
			}
			buf.WriteRune(ch)
		case ch == ',' && depth == 0:
			items = append(items, buf.String())
			buf.Reset()
		default:
			buf.WriteRune(ch)
		}
	}
	items = append(items, buf.String())
	return items
}

// parseRange parses "A..B" where both sides are decimal integers.
func parseRange(s string) (lo, hi int64, ok bool) {
	parts := strings.SplitN(s, "..", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	a, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	b, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return a, b, true
}
