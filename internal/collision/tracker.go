package collision

import (
	"fmt"

	"github.com/marcozanotti/utilsforecast/errs"
)

// Tracker records group keys with their hashes and detects both hash
// collisions (different keys, same hash) and duplicate keys.
type Tracker struct {
	byHash       map[uint64]string   // hash → first key seen with it
	names        map[string]struct{} // populated once a collision occurs
	keys         []string            // keys in tracking order
	hasCollision bool
}

// NewTracker creates a tracker sized for n keys.
func NewTracker(n int) *Tracker {
	return &Tracker{
		byHash: make(map[uint64]string, n),
		keys:   make([]string, 0, n),
	}
}

// Track records key with its hash.
//
// A hash collision is not an error: the collision flag is set and callers are
// expected to fall back to name-based lookup. Tracking the same key twice
// returns ErrDuplicateKey.
func (t *Tracker) Track(key string, hash uint64) error {
	if t.hasCollision {
		if _, ok := t.names[key]; ok {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateKey, key)
		}
	} else if existing, ok := t.byHash[hash]; ok {
		if existing == key {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateKey, key)
		}
		t.switchToNames()
	}

	if _, ok := t.byHash[hash]; !ok {
		t.byHash[hash] = key
	}
	if t.hasCollision {
		t.names[key] = struct{}{}
	}
	t.keys = append(t.keys, key)

	return nil
}

func (t *Tracker) switchToNames() {
	t.hasCollision = true
	t.names = make(map[string]struct{}, cap(t.keys))
	for _, k := range t.keys {
		t.names[k] = struct{}{}
	}
}

// HasCollision reports whether two tracked keys share a hash.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}
