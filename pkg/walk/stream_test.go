package walk

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/corvid-labs/globhunt/pkg/globopts"
	"github.com/corvid-labs/globhunt/pkg/statcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, ch <-chan Item, timeout time.Duration) []Item {
	t.Helper()
	var items []Item
	deadline := time.After(timeout)
	for {
		select {
		case item, ok := <-ch:
			if !ok {
				return items
			}
			items = append(items, item)
		case <-deadline:
			t.Fatal("timed out draining stream")
			return nil
		}
	}
}

func TestStreamBasicGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.rs"), 1)
	writeFile(t, filepath.Join(dir, "b.toml"), 1)
	writeFile(t, filepath.Join(dir, "c.md"), 1)

	p := compile(t, "*.rs", "*.toml")
	ch := Stream(context.Background(), dir, p, nil, statcache.New(statcache.Options{}), globopts.Default())
	items := drain(t, ch, 5*time.Second)

	var names []string
	for _, it := range items {
		require.NoError(t, it.Err)
		names = append(names, filepath.Base(it.Path))
	}
	assert.ElementsMatch(t, []string{"a.rs", "b.toml"}, names)
}

func TestStreamMatchesSyncResultSet(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "x", "y.txt"), 1)
	writeFile(t, filepath.Join(dir, "z.txt"), 1)

	p := compile(t, "**/*.txt")

	syncResults, err := Sync(dir, p, nil, statcache.New(statcache.Options{}), globopts.Default())
	require.NoError(t, err)

	ch := Stream(context.Background(), dir, p, nil, statcache.New(statcache.Options{}), globopts.Default())
	items := drain(t, ch, 5*time.Second)
	var streamResults []string
	for _, it := range items {
		require.NoError(t, it.Err)
		streamResults = append(streamResults, it.Path)
	}

	assert.ElementsMatch(t, syncResults, streamResults)
}

func TestStreamCancellationStopsEarly(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 50; i++ {
		writeFile(t, filepath.Join(dir, string(rune('a'+i%26)), "file.txt"), 1)
	}

	p := compile(t, "**/*.txt")
	ctx, cancel := context.WithCancel(context.Background())
	ch := Stream(ctx, dir, p, nil, statcache.New(statcache.Options{}), globopts.Default())

	cancel()
	_ = drain(t, ch, 5*time.Second)
}
