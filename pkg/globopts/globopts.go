// Package globopts defines the options accepted by pattern compilation and
// traversal, a fluent builder for constructing them, and a YAML config
// loader for callers who prefer a file over code.
package globopts

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/corvid-labs/globhunt/pkg/globerr"
)

// DefaultMaxInflight bounds concurrent per-file workers in streaming mode
// when the caller does not set one explicitly.
const DefaultMaxInflight = 64

// DefaultAcquireTimeout bounds how long a streaming worker waits for a
// semaphore permit before the entry is skipped.
const DefaultAcquireTimeout = 30 * time.Second

// DefaultMaxDepth is the MaxDepth that Default sets. A MaxDepth left at
// zero is not replaced by it: zero means "root entries only".
const DefaultMaxDepth = -1 // -1 means unlimited

// Options bundles every tunable accepted by compilation and traversal.
type Options struct {
	// RootDir names the traversal root. The root-package GlobSyncCompiled
	// and GlobStreamCompiled set it to each root they walk, replacing any
	// caller value; the walk package bounds traversal by its root argument
	// and does not read this field. An empty root means the current
	// working directory.
	RootDir string

	// MaxDepth limits descent below RootDir. 0 means "root entries only",
	// negative means unlimited.
	MaxDepth int

	// FollowSymlinks enables symlink traversal and cycle detection.
	FollowSymlinks bool

	// CaseSensitive is accepted for forward compatibility but not yet
	// threaded into glob-set or regex matching; both currently match with
	// case sensitivity fixed at the underlying library's default. Treat
	// this field as reserved until case folding is implemented.
	CaseSensitive bool

	// MaxInflight bounds concurrent per-file workers in streaming mode.
	MaxInflight int

	// AcquireTimeout bounds semaphore-permit acquisition in streaming mode.
	AcquireTimeout time.Duration

	// RejectReadOnlyFiles gates the legacy "read-only bit means
	// PermissionDenied" behavior. Defaults to false.
	RejectReadOnlyFiles bool

	// StatCacheCapacity and StatCacheTTL configure the metadata cache used
	// during predicate evaluation. Zero values fall back to the
	// statcache package defaults.
	StatCacheCapacity int
	StatCacheTTL      time.Duration

	// PatternCacheCapacity and PatternCacheTTL are not read by any code in
	// this module: the root package's process-wide glob-set/regex caches
	// are always built with patterncache.DefaultCapacity and
	// patterncache.DefaultTTL.
	PatternCacheCapacity int
	PatternCacheTTL      time.Duration

	// IgnoreFile, when set, names a gitignore-syntax file whose rules are
	// applied as an additional exclusion overlay during traversal.
	IgnoreFile string
}

// Default returns the zero-configured Options with every field at its
// package default.
func Default() Options {
	return Options{
		MaxDepth:       DefaultMaxDepth,
		MaxInflight:    DefaultMaxInflight,
		AcquireTimeout: DefaultAcquireTimeout,
	}
}

// Builder constructs an Options value fluently, mirroring the style of a
// Rust builder type ported into idiomatic Go method chaining.
type Builder struct {
	opts Options
}

// NewBuilder starts a Builder from Default().
func NewBuilder() *Builder {
	b := &Builder{opts: Default()}
	return b
}

func (b *Builder) WithRootDir(dir string) *Builder {
	b.opts.RootDir = dir
	return b
}

func (b *Builder) WithMaxDepth(depth int) *Builder {
	b.opts.MaxDepth = depth
	return b
}

func (b *Builder) WithFollowSymlinks(follow bool) *Builder {
	b.opts.FollowSymlinks = follow
	return b
}

func (b *Builder) WithCaseSensitive(sensitive bool) *Builder {
	b.opts.CaseSensitive = sensitive
	return b
}

func (b *Builder) WithMaxInflight(n int) *Builder {
	b.opts.MaxInflight = n
	return b
}

func (b *Builder) WithAcquireTimeout(d time.Duration) *Builder {
	b.opts.AcquireTimeout = d
	return b
}

func (b *Builder) WithRejectReadOnlyFiles(reject bool) *Builder {
	b.opts.RejectReadOnlyFiles = reject
	return b
}

func (b *Builder) WithIgnoreFile(path string) *Builder {
	b.opts.IgnoreFile = path
	return b
}

// Build returns the constructed Options.
func (b *Builder) Build() Options {
	return b.opts
}

// fileConfig mirrors Options for YAML (un)marshaling with lower_snake_case
// keys, matching the rest of the pack's config file conventions.
type fileConfig struct {
	RootDir             string `yaml:"root_dir"`
	MaxDepth            *int   `yaml:"max_depth"`
	FollowSymlinks      bool   `yaml:"follow_symlinks"`
	CaseSensitive       bool   `yaml:"case_sensitive"`
	MaxInflight         int    `yaml:"max_inflight"`
	AcquireTimeoutMS    int    `yaml:"acquire_timeout_ms"`
	RejectReadOnlyFiles bool   `yaml:"reject_read_only_files"`
	StatCacheCapacity   int    `yaml:"stat_cache_capacity"`
	StatCacheTTLSeconds int    `yaml:"stat_cache_ttl_seconds"`
	IgnoreFile          string `yaml:"ignore_file"`
}

// LoadFile reads a YAML options file from path, applying package defaults
// for any field left unset.
func LoadFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, globerr.Wrap(globerr.Io, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Options{}, globerr.Wrapf(globerr.Other, err, "parsing options file %s", path)
	}

	opts := Default()
	opts.RootDir = fc.RootDir
	if fc.MaxDepth != nil {
		opts.MaxDepth = *fc.MaxDepth
	}
	opts.FollowSymlinks = fc.FollowSymlinks
	opts.CaseSensitive = fc.CaseSensitive
	if fc.MaxInflight > 0 {
		opts.MaxInflight = fc.MaxInflight
	}
	if fc.AcquireTimeoutMS > 0 {
		opts.AcquireTimeout = time.Duration(fc.AcquireTimeoutMS) * time.Millisecond
	}
	opts.RejectReadOnlyFiles = fc.RejectReadOnlyFiles
	opts.StatCacheCapacity = fc.StatCacheCapacity
	if fc.StatCacheTTLSeconds > 0 {
		opts.StatCacheTTL = time.Duration(fc.StatCacheTTLSeconds) * time.Second
	}
	opts.IgnoreFile = fc.IgnoreFile

	return opts, nil
}
