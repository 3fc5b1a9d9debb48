//go:build windows

package globopts

import "strings"

// longPathPrefix is required on Windows for paths exceeding MAX_PATH.
const longPathPrefix = `\\?\`

// EnsureLongPathPrefix prepends the long-path prefix unless already
// present.
func EnsureLongPathPrefix(p string) string {
	if strings.HasPrefix(p, longPathPrefix) {
		return p
	}
	return longPathPrefix + p
}
