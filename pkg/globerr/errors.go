// Package globerr defines the shared error taxonomy used across the pattern
// compiler, traversal engine, and metadata layer.
package globerr

import "fmt"

// Kind classifies a failure into one of a closed set of variants.
type Kind int

const (
	// Io wraps a raw filesystem I/O failure.
	Io Kind = iota
	// Regex wraps a regex compilation failure.
	Regex
	// InvalidPattern indicates malformed pattern syntax.
	InvalidPattern
	// Walkdir wraps a traversal-layer failure.
	Walkdir
	// Other is a catch-all for failures with no dedicated kind.
	Other
	// BraceExpansionDepth indicates brace nesting exceeded the depth limit.
	BraceExpansionDepth
	// BraceExpansionCount indicates brace expansion exceeded the cardinality limit.
	BraceExpansionCount
	// RegexTooComplex indicates a regex source was rejected by the complexity guard.
	RegexTooComplex
	// PathTraversal indicates a pattern attempted to escape its root.
	PathTraversal
	// SymlinkCycle indicates a symlink loop was detected during traversal.
	SymlinkCycle
	// Timeout indicates a bounded operation did not complete in time.
	Timeout
	// PermissionDenied indicates access to a path's metadata was refused.
	PermissionDenied
)

func (k Kind) String() string {
	switch k {
	case Io:
		return "io"
	case Regex:
		return "regex"
	case InvalidPattern:
		return "invalid_pattern"
	case Walkdir:
		return "walkdir"
	case BraceExpansionDepth:
		return "brace_expansion_depth"
	case BraceExpansionCount:
		return "brace_expansion_count"
	case RegexTooComplex:
		return "regex_too_complex"
	case PathTraversal:
		return "path_traversal"
	case SymlinkCycle:
		return "symlink_cycle"
	case Timeout:
		return "timeout"
	case PermissionDenied:
		return "permission_denied"
	default:
		return "other"
	}
}

// Error is the concrete error type returned by every layer of globhunt.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *Error of the same Kind, so callers can
// write errors.Is(err, globerr.New(globerr.Timeout, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New constructs an *Error with the given kind and message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap constructs an *Error that wraps an existing error under the given kind.
func Wrap(kind Kind, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: defaultMessage(kind), Err: err}
}

// Wrapf constructs a wrapped *Error with a custom message prefix.
func Wrapf(kind Kind, err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

func defaultMessage(kind Kind) string {
	switch kind {
	case Io:
		return "IO error"
	case Regex:
		return "regex error"
	case Walkdir:
		return "walkdir error"
	default:
		return kind.String()
	}
}

// KindOf reports the Kind of err if it (or something it wraps) is an *Error,
// and Other otherwise.
func KindOf(err error) Kind {
	var e *Error
	if ok := asError(err, &e); ok {
		return e.Kind
	}
	return Other
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
