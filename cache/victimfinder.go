package cache

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// fillVictimFinder replaces Akita's stock pseudo-LRU tree with exact
// timestamp LRU. Block.CacheAddress is unused by the directory itself, so it
// is repurposed here to hold the cycle at which a block's current fill
// completes; the least recently used way is simply the one with the
// smallest such timestamp.
type fillVictimFinder struct{}

func newFillVictimFinder() *fillVictimFinder {
	return &fillVictimFinder{}
}

// FindVictim returns the first invalid block if one exists, otherwise the
// valid block with the smallest fill-completion timestamp.
func (f *fillVictimFinder) FindVictim(set *akitacache.Set) *akitacache.Block {
	for _, b := range set.Blocks {
		if !b.IsValid {
			return b
		}
	}

	victim := set.Blocks[0]
	for _, b := range set.Blocks[1:] {
		if b.CacheAddress < victim.CacheAddress {
			victim = b
		}
	}
	return victim
}
