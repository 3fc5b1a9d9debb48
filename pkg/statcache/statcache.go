// Package statcache implements the metadata (stat) service: a TTL-bounded
// LRU cache of filesystem metadata shared across a walk so repeated
// predicate evaluation against the same path avoids redundant syscalls.
package statcache

import (
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/corvid-labs/globhunt/pkg/globerr"
)

// DefaultCapacity is the cache size used by traversal callers.
const DefaultCapacity = 1000

// DefaultTTL bounds how long a cached metadata entry is trusted.
const DefaultTTL = 30 * time.Second

// FileType classifies a metadata snapshot's entry kind.
type FileType int

const (
	File FileType = iota
	Dir
	Symlink
)

// Metadata is an immutable snapshot of filesystem metadata for a path.
// Callers receive copies; mutating a returned Metadata never affects the
// cache.
type Metadata struct {
	Size     int64
	Type     FileType
	ModTime  time.Time
	ReadOnly bool
}

// Service is a stat cache safe for concurrent use across traversal workers.
// The symlink-resolution and read-only checks in Stat sit outside the
// cache entirely; the cache itself is a plain path-to-Metadata TTL LRU.
type Service struct {
	cache *lru.LRU[string, Metadata]

	followSymlinks bool
	rejectReadOnly bool
}

// Options configures a Service's symlink-following and read-only-rejection
// policy. RejectReadOnly defaults to false: spec.md's original behavior of
// treating any read-only file as PermissionDenied is preserved only when a
// caller explicitly opts in, since it conflates "cannot write" with "cannot
// read" for the common case of read-only file discovery.
type Options struct {
	Capacity       int
	TTL            time.Duration
	FollowSymlinks bool
	RejectReadOnly bool
}

// New builds a Service per opts, filling in defaults for zero values.
func New(opts Options) *Service {
	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		cache:          lru.NewLRU[string, Metadata](capacity, nil, ttl),
		followSymlinks: opts.FollowSymlinks,
		rejectReadOnly: opts.RejectReadOnly,
	}
}

// Stat returns metadata for path, consulting the cache first.
func (s *Service) Stat(path string) (Metadata, error) {
	if meta, ok := s.cache.Get(path); ok {
		return meta, nil
	}

	if !s.followSymlinks {
		lst, err := os.Lstat(path)
		if err != nil {
			return Metadata{}, globerr.Wrap(globerr.Io, err)
		}
		if lst.Mode()&os.ModeSymlink != 0 {
			return Metadata{}, globerr.New(globerr.Io, "symlinks not allowed: "+path)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return Metadata{}, globerr.Wrap(globerr.Io, err)
	}

	meta := metadataFromInfo(info)
	if s.rejectReadOnly && meta.ReadOnly {
		return Metadata{}, globerr.New(globerr.PermissionDenied, "path is read-only: "+path)
	}

	s.cache.Add(path, meta)
	return meta, nil
}

// StatSymlink reads a symlink's own metadata without following it or
// consulting the cache.
func (s *Service) StatSymlink(path string) (Metadata, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Metadata{}, globerr.Wrap(globerr.Io, err)
	}
	return metadataFromInfo(info), nil
}

// ClearCache drops all cached entries.
func (s *Service) ClearCache() {
	s.cache.Purge()
}

func metadataFromInfo(info os.FileInfo) Metadata {
	typ := File
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		typ = Symlink
	case info.IsDir():
		typ = Dir
	}
	return Metadata{
		Size:     info.Size(),
		Type:     typ,
		ModTime:  info.ModTime(),
		ReadOnly: info.Mode().Perm()&0o200 == 0,
	}
}
