package grouped

import (
	"github.com/marcozanotti/utilsforecast/internal/collision"
	"github.com/marcozanotti/utilsforecast/internal/hash"
)

// KeyIndex maps group keys to group positions.
//
// Keys are identified by their 64-bit xxHash. When two keys of the index share
// a hash, lookups fall back to a map keyed by the key itself.
type KeyIndex struct {
	byID   map[uint64]int
	byName map[string]int // nil unless a hash collision occurred
	keys   []string
}

// NewKeyIndex builds an index over keys, where keys[i] identifies group i.
// Returns ErrDuplicateKey if a key appears twice.
func NewKeyIndex(keys []string) (*KeyIndex, error) {
	tracker := collision.NewTracker(len(keys))
	ids := make([]uint64, len(keys))
	for i, k := range keys {
		ids[i] = hash.ID(k)
		if err := tracker.Track(k, ids[i]); err != nil {
			return nil, err
		}
	}

	idx := &KeyIndex{keys: keys}
	if tracker.HasCollision() {
		idx.byName = make(map[string]int, len(keys))
		for i, k := range keys {
			idx.byName[k] = i
		}

		return idx, nil
	}

	idx.byID = make(map[uint64]int, len(keys))
	for i, id := range ids {
		idx.byID[id] = i
	}

	return idx, nil
}

// Lookup returns the group position of key.
func (x *KeyIndex) Lookup(key string) (int, bool) {
	if x.byName != nil {
		pos, ok := x.byName[key]
		return pos, ok
	}

	pos, ok := x.byID[hash.ID(key)]
	if !ok || x.keys[pos] != key {
		return 0, false
	}

	return pos, true
}

// Keys returns the keys in group order. The slice must not be modified.
func (x *KeyIndex) Keys() []string {
	return x.keys
}

// Len returns the number of indexed keys.
func (x *KeyIndex) Len() int {
	return len(x.keys)
}
