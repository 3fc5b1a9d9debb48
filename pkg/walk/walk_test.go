package walk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/corvid-labs/globhunt/pkg/globerr"
	"github.com/corvid-labs/globhunt/pkg/globopts"
	"github.com/corvid-labs/globhunt/pkg/pattern"
	"github.com/corvid-labs/globhunt/pkg/patterncache"
	"github.com/corvid-labs/globhunt/pkg/predicate"
	"github.com/corvid-labs/globhunt/pkg/statcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func compile(t *testing.T, patterns ...string) *pattern.Patterns {
	t.Helper()
	p, err := pattern.CompileMany(patterns, patterncache.New(0, 0))
	require.NoError(t, err)
	return p
}

func TestSyncBasicGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.rs"), 1)
	writeFile(t, filepath.Join(dir, "b.toml"), 1)
	writeFile(t, filepath.Join(dir, "c.md"), 1)

	p := compile(t, "*.rs", "*.toml")
	results, err := Sync(dir, p, nil, statcache.New(statcache.Options{}), globopts.Default())
	require.NoError(t, err)

	var names []string
	for _, r := range results {
		names = append(names, filepath.Base(r))
	}
	assert.ElementsMatch(t, []string{"a.rs", "b.toml"}, names)
}

func TestSyncOnlyEmitsFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sub", "a.txt"), 1)

	p := compile(t, "**")
	results, err := Sync(dir, p, nil, statcache.New(statcache.Options{}), globopts.Default())
	require.NoError(t, err)

	for _, r := range results {
		info, err := os.Stat(r)
		require.NoError(t, err)
		assert.False(t, info.IsDir())
	}
}

func TestSyncMaxDepthZeroNoDescent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "root.txt"), 1)
	writeFile(t, filepath.Join(dir, "a", "nested.txt"), 1)

	p := compile(t, "*.txt")
	opts := globopts.Default()
	opts.MaxDepth = 0
	results, err := Sync(dir, p, nil, statcache.New(statcache.Options{}), opts)
	require.NoError(t, err)

	var names []string
	for _, r := range results {
		names = append(names, filepath.Base(r))
	}
	assert.Equal(t, []string{"root.txt"}, names)
}

func TestSyncDepthLimitExcludesDeeperFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "b", "c.txt"), 1)

	p := compile(t, "**/*.txt")
	opts := globopts.Default()
	opts.MaxDepth = 1
	results, err := Sync(dir, p, nil, statcache.New(statcache.Options{}), opts)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSyncPredicateFiltersBySize(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "small.txt"), 2)
	writeFile(t, filepath.Join(dir, "big.txt"), 200)

	p := compile(t, "*.txt")
	minSize := int64(100)
	pred := &predicate.Predicate{MinSize: &minSize}

	results, err := Sync(dir, p, pred, statcache.New(statcache.Options{}), globopts.Default())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "big.txt", filepath.Base(results[0]))
}

func TestSyncRootContainmentViaSymlinkEscape(t *testing.T) {
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "secret.txt"), 1)

	dir := t.TempDir()
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "escape")))

	p := compile(t, "**/*.txt")
	opts := globopts.Default()
	opts.FollowSymlinks = true
	results, err := Sync(dir, p, nil, statcache.New(statcache.Options{}), opts)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSyncSymlinkCycleAbortsCall(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.Symlink(dir, filepath.Join(sub, "loop")))

	p := compile(t, "**")
	opts := globopts.Default()
	opts.FollowSymlinks = true
	_, err := Sync(dir, p, nil, statcache.New(statcache.Options{}), opts)
	require.Error(t, err)
	assert.Equal(t, globerr.SymlinkCycle, globerr.KindOf(err))
}

func TestSyncNonUTF8PathSilentlySkipped(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, string([]byte{0xff, 0xfe})+".txt")
	require.NoError(t, os.WriteFile(bad, []byte("x"), 0o644))

	p := compile(t, "*.txt")
	results, err := Sync(dir, p, nil, statcache.New(statcache.Options{}), globopts.Default())
	require.NoError(t, err)
	assert.Empty(t, results)
}
