// Package patterncache provides TTL-bounded LRU caches for compiled glob
// sets and compiled regexes, so repeated calls with identical pattern sets
// skip recompilation.
package patterncache

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/dlclark/regexp2"
	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/corvid-labs/globhunt/pkg/globerr"
	"github.com/corvid-labs/globhunt/pkg/globset"
)

// DefaultCapacity bounds the number of distinct compiled artifacts retained
// per cache.
const DefaultCapacity = 1000

// DefaultTTL is how long a compiled artifact stays valid before the cache
// treats it as stale and recompiles on next lookup.
const DefaultTTL = 300 * time.Second

// MaxRegexSource bounds the length of a single regex source string accepted
// for compilation; sources longer than this are rejected as too complex.
const MaxRegexSource = 1000

// MaxRegexGroups bounds the number of capturing/non-capturing groups in a
// regex source accepted for compilation.
const MaxRegexGroups = 1000

// Metrics is a point-in-time snapshot of cache activity.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
}

// HitRatio returns Hits / (Hits + Misses), or 0 when the cache has seen no
// lookups at all.
func (m Metrics) HitRatio() float64 {
	total := m.Hits + m.Misses
	if total == 0 {
		return 0
	}
	return float64(m.Hits) / float64(total)
}

// Caches bundles the glob-set and regex compilation caches used by pattern
// compilation.
type Caches struct {
	capacity  int
	ttl       time.Duration
	globsets  *lru.LRU[string, *globset.Set]
	regexes   *lru.LRU[string, *regexp2.Regexp]
	globHits  atomic.Int64
	globMiss  atomic.Int64
	globEvict atomic.Int64
	reHits    atomic.Int64
	reMiss    atomic.Int64
	reEvict   atomic.Int64
}

// New builds a Caches with the given capacity and TTL applied to both the
// glob-set and regex caches.
func New(capacity int, ttl time.Duration) *Caches {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Caches{capacity: capacity, ttl: ttl}
	c.globsets = lru.NewLRU[string, *globset.Set](capacity, func(string, *globset.Set) {
		c.globEvict.Add(1)
	}, ttl)
	c.regexes = lru.NewLRU[string, *regexp2.Regexp](capacity, func(string, *regexp2.Regexp) {
		c.reEvict.Add(1)
	}, ttl)
	return c
}

// key joins pattern components with a separator unlikely to appear in a
// glob or regex source, so distinct pattern sets never collide.
func key(patterns []string) string {
	return strings.Join(patterns, "\x1f")
}

// GlobSet returns a compiled glob-set for patterns, building and caching it
// on first use.
func (c *Caches) GlobSet(patterns []string) (*globset.Set, error) {
	k := key(patterns)
	if set, ok := c.globsets.Get(k); ok {
		c.globHits.Add(1)
		return set, nil
	}
	c.globMiss.Add(1)
	set, err := globset.Build(patterns)
	if err != nil {
		return nil, err
	}
	c.globsets.Add(k, set)
	return set, nil
}

// Regex returns a compiled regexp2.Regexp for source, building and caching
// it on first use. Sources that are too long or too structurally complex
// are rejected up front to bound worst-case compilation and match cost.
func (c *Caches) Regex(source string) (*regexp2.Regexp, error) {
	if re, ok := c.regexes.Get(source); ok {
		c.reHits.Add(1)
		return re, nil
	}
	c.reMiss.Add(1)

	if len(source) > MaxRegexSource {
		return nil, globerr.New(globerr.RegexTooComplex, "regex source exceeds maximum length")
	}
	if strings.Count(source, "(") > MaxRegexGroups {
		return nil, globerr.New(globerr.RegexTooComplex, "regex source exceeds maximum group count")
	}

	re, err := regexp2.Compile(source, regexp2.RE2)
	if err != nil {
		return nil, globerr.Wrap(globerr.Regex, err)
	}
	c.regexes.Add(source, re)
	return re, nil
}

// GlobCacheMetrics returns a snapshot of glob-set cache activity.
func (c *Caches) GlobCacheMetrics() Metrics {
	return Metrics{
		Hits:      c.globHits.Load(),
		Misses:    c.globMiss.Load(),
		Evictions: c.globEvict.Load(),
		Size:      c.globsets.Len(),
	}
}

// RegexCacheMetrics returns a snapshot of regex cache activity.
func (c *Caches) RegexCacheMetrics() Metrics {
	return Metrics{
		Hits:      c.reHits.Load(),
		Misses:    c.reMiss.Load(),
		Evictions: c.reEvict.Load(),
		Size:      c.regexes.Len(),
	}
}

// Clear empties both caches. Per the compilation-cache contract, clearing
// counts as a single eviction event per cache and resets size; hit/miss
// history is preserved across the clear. Purge reports every purged entry
// to the eviction callback; those per-entry reports are not counted.
func (c *Caches) Clear() {
	globEvictions := c.globEvict.Load()
	reEvictions := c.reEvict.Load()
	c.globsets.Purge()
	c.regexes.Purge()
	c.globEvict.Store(globEvictions + 1)
	c.reEvict.Store(reEvictions + 1)
}
