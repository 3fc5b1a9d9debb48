package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFindSyncMode(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.rs"), []byte("x"), 0o644))

	findRoots = []string{dir}
	findMaxDepth = -1
	findStream = false
	findNoColor = true
	defer func() {
		findRoots = []string{"."}
		findMaxDepth = -1
	}()

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	err := runFind(cmd, []string{"*.go"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "a.go")
	assert.NotContains(t, buf.String(), "b.rs")
}

func TestBuildPredicateFromFlags(t *testing.T) {
	findMinSize = 10
	findMaxSize = 0
	findFileType = "file"
	defer func() {
		findMinSize = 0
		findFileType = ""
	}()

	pred := buildPredicate()
	require.NotNil(t, pred.MinSize)
	assert.Equal(t, int64(10), *pred.MinSize)
	require.NotNil(t, pred.Type)
}
