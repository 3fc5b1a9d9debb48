package walk

import (
	"path/filepath"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/corvid-labs/globhunt/pkg/globerr"
)

// ignoreOverlay wraps a compiled gitignore matcher, applied in addition to
// pattern/predicate filtering as a supplemental exclusion layer. Not part
// of the core compilation contract: a path that matches the overlay is
// treated as a silent skip, same disposition as a non-UTF-8 path.
type ignoreOverlay struct {
	root    string
	matcher *gitignore.GitIgnore
}

// loadIgnoreOverlay compiles the gitignore-syntax rules at path, if set.
// A zero-value path yields a nil overlay (no exclusion).
func loadIgnoreOverlay(root, path string) (*ignoreOverlay, error) {
	if path == "" {
		return nil, nil
	}
	matcher, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, globerr.Wrap(globerr.Io, err)
	}
	return &ignoreOverlay{root: root, matcher: matcher}, nil
}

// excludes reports whether entryPath should be skipped under the overlay's
// rules, matched against its path relative to root.
func (o *ignoreOverlay) excludes(entryPath string) bool {
	if o == nil {
		return false
	}
	rel, err := filepath.Rel(o.root, entryPath)
	if err != nil {
		return false
	}
	return o.matcher.MatchesPath(rel)
}
