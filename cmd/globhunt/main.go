// Command globhunt finds files matching glob, extended-glob, brace, and
// regex patterns across one or more root directories.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
