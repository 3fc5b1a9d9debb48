package globopts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := Default()
	assert.Equal(t, DefaultMaxDepth, opts.MaxDepth)
	assert.Equal(t, DefaultMaxInflight, opts.MaxInflight)
	assert.Equal(t, DefaultAcquireTimeout, opts.AcquireTimeout)
}

func TestBuilderChaining(t *testing.T) {
	opts := NewBuilder().
		WithRootDir("/tmp/project").
		WithMaxDepth(3).
		WithFollowSymlinks(true).
		WithMaxInflight(8).
		WithAcquireTimeout(5 * time.Second).
		Build()

	assert.Equal(t, "/tmp/project", opts.RootDir)
	assert.Equal(t, 3, opts.MaxDepth)
	assert.True(t, opts.FollowSymlinks)
	assert.Equal(t, 8, opts.MaxInflight)
	assert.Equal(t, 5*time.Second, opts.AcquireTimeout)
}

func TestLoadFileAppliesDefaultsForUnsetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "options.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
root_dir: ./src
follow_symlinks: true
`), 0o644))

	opts, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "./src", opts.RootDir)
	assert.True(t, opts.FollowSymlinks)
	assert.Equal(t, DefaultMaxInflight, opts.MaxInflight)
}

func TestLoadFileMissingReturnsIoError(t *testing.T) {
	_, err := LoadFile("/nonexistent/options.yaml")
	require.Error(t, err)
}

func TestEnsureLongPathPrefixNoopOnThisPlatform(t *testing.T) {
	assert.Equal(t, "/tmp/a/b", EnsureLongPathPrefix("/tmp/a/b"))
}
