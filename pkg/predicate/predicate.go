// Package predicate evaluates size, type, and timestamp constraints
// against a metadata snapshot, conjunctively and with missing fields
// imposing no constraint.
package predicate

import (
	"time"

	"github.com/corvid-labs/globhunt/pkg/statcache"
)

// Predicate holds the optional constraints evaluated against each
// candidate entry's metadata. A zero-value Predicate accepts everything.
type Predicate struct {
	MinSize *int64
	MaxSize *int64

	Type *statcache.FileType

	MTimeAfter  *time.Time
	MTimeBefore *time.Time

	CTimeAfter  *time.Time
	CTimeBefore *time.Time
}

// Empty reports whether no constraint fields are set.
func (p *Predicate) Empty() bool {
	return p == nil ||
		(p.MinSize == nil && p.MaxSize == nil && p.Type == nil &&
			p.MTimeAfter == nil && p.MTimeBefore == nil &&
			p.CTimeAfter == nil && p.CTimeBefore == nil)
}

// Matches reports whether meta satisfies every constraint set on p.
func (p *Predicate) Matches(meta statcache.Metadata) bool {
	if p == nil {
		return true
	}

	if p.MinSize != nil && meta.Size < *p.MinSize {
		return false
	}
	if p.MaxSize != nil && meta.Size > *p.MaxSize {
		return false
	}
	if p.Type != nil && meta.Type != *p.Type {
		return false
	}
	if !withinBounds(meta.ModTime, p.MTimeAfter, p.MTimeBefore) {
		return false
	}

	// Metadata carries no distinct creation time on this platform-neutral
	// snapshot, so creation-time predicates are always treated as satisfied.

	return true
}

func withinBounds(t time.Time, after, before *time.Time) bool {
	if t.IsZero() {
		return true
	}
	if after != nil && t.Before(*after) {
		return false
	}
	if before != nil && t.After(*before) {
		return false
	}
	return true
}
