package walk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/corvid-labs/globhunt/pkg/globopts"
	"github.com/corvid-labs/globhunt/pkg/statcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncAppliesIgnoreFileOverlay(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "keep.txt"), 1)
	writeFile(t, filepath.Join(dir, "build", "out.txt"), 1)

	ignorePath := filepath.Join(dir, ".gitignore")
	require.NoError(t, os.WriteFile(ignorePath, []byte("build/\n"), 0o644))

	p := compile(t, "**/*.txt")
	opts := globopts.Default()
	opts.IgnoreFile = ignorePath

	results, err := Sync(dir, p, nil, statcache.New(statcache.Options{}), opts)
	require.NoError(t, err)

	var names []string
	for _, r := range results {
		names = append(names, filepath.Base(r))
	}
	assert.ElementsMatch(t, []string{"keep.txt"}, names)
}

func TestSyncWithNoIgnoreFileConfiguredMatchesEverything(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), 1)

	p := compile(t, "*.txt")
	results, err := Sync(dir, p, nil, statcache.New(statcache.Options{}), globopts.Default())
	require.NoError(t, err)
	assert.Len(t, results, 1)
}
