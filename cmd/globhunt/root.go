package main

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "globhunt",
	Short: "globhunt - pattern-based file discovery",
	Long: `globhunt finds files matching shell globs, brace alternations, extended-glob
quantifiers, and raw regex escapes across one or more root directories,
synchronously or as a streamed result set.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (accepted; no command reads it)")

	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
