package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	globhunt "github.com/corvid-labs/globhunt"
	"github.com/corvid-labs/globhunt/pkg/globopts"
	"github.com/corvid-labs/globhunt/pkg/predicate"
	"github.com/corvid-labs/globhunt/pkg/statcache"
)

var (
	findRoots          []string
	findMaxDepth       int
	findFollowSymlinks bool
	findMaxInflight    int
	findStream         bool
	findMinSize        int64
	findMaxSize        int64
	findFileType       string
	findIgnoreFile     string
	findNoColor        bool
)

var findCmd = &cobra.Command{
	Use:   "find <pattern>...",
	Short: "Find files matching one or more patterns",
	Long: `Find files matching shell globs, brace alternations, extended-glob
quantifiers ("?()", "*()", "+()", "@()", "!()"), or raw "re:" regex escapes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFind,
}

func init() {
	findCmd.Flags().StringSliceVar(&findRoots, "root", []string{"."}, "Root directories to search (repeatable)")
	findCmd.Flags().IntVar(&findMaxDepth, "max-depth", -1, "Maximum descent depth (-1 for unlimited)")
	findCmd.Flags().BoolVar(&findFollowSymlinks, "follow-symlinks", false, "Follow symlinks during traversal")
	findCmd.Flags().IntVar(&findMaxInflight, "max-inflight", globopts.DefaultMaxInflight, "Max concurrent per-file workers in streaming mode")
	findCmd.Flags().BoolVar(&findStream, "stream", false, "Stream results as they're discovered instead of collecting a final list")
	findCmd.Flags().Int64Var(&findMinSize, "min-size", 0, "Minimum file size in bytes (0 disables)")
	findCmd.Flags().Int64Var(&findMaxSize, "max-size", 0, "Maximum file size in bytes (0 disables)")
	findCmd.Flags().StringVar(&findFileType, "type", "", "Restrict to file type: file, dir, symlink")
	findCmd.Flags().StringVar(&findIgnoreFile, "ignore-file", "", "Apply a gitignore-syntax exclusion overlay")
	findCmd.Flags().BoolVar(&findNoColor, "no-color", false, "Disable colored output")
}

func buildOptions() globopts.Options {
	opts := globopts.Default()
	opts.MaxDepth = findMaxDepth
	opts.FollowSymlinks = findFollowSymlinks
	opts.MaxInflight = findMaxInflight
	opts.IgnoreFile = findIgnoreFile
	return opts
}

func buildPredicate() *predicate.Predicate {
	var pred predicate.Predicate
	if findMinSize > 0 {
		pred.MinSize = &findMinSize
	}
	if findMaxSize > 0 {
		pred.MaxSize = &findMaxSize
	}
	switch findFileType {
	case "file":
		t := statcache.File
		pred.Type = &t
	case "dir":
		t := statcache.Dir
		pred.Type = &t
	case "symlink":
		t := statcache.Symlink
		pred.Type = &t
	}
	return &pred
}

func colorEnabled() bool {
	if findNoColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func runFind(cmd *cobra.Command, args []string) error {
	opts := buildOptions()
	pred := buildPredicate()
	out := cmd.OutOrStdout()

	match := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)
	if !colorEnabled() {
		match.DisableColor()
		warn.DisableColor()
	}

	if !findStream {
		compiled, err := globhunt.CompilePatterns(args, opts)
		if err != nil {
			return err
		}
		results, err := globhunt.GlobSyncCompiled(compiled, pred, findRoots, opts)
		if err != nil {
			return err
		}
		for _, p := range results {
			fmt.Fprintln(out, match.Sprint(p))
		}
		if verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d matches\n", len(results))
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()

	compiled, err := globhunt.CompilePatterns(args, opts)
	if err != nil {
		return err
	}

	count := 0
	for _, root := range findRoots {
		for item := range globhunt.GlobStreamCompiled(ctx, compiled, pred, root, opts) {
			if item.Err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), warn.Sprint(item.Err))
				continue
			}
			fmt.Fprintln(out, match.Sprint(item.Path))
			count++
		}
	}
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d matches\n", count)
	}
	return nil
}
