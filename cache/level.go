package cache

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// level is one set-associative tier of the hierarchy: an Akita directory for
// tag/valid/dirty state, driven by fillVictimFinder for exact-LRU eviction.
type level struct {
	blockSize int
	latency   uint64
	directory *akitacache.DirectoryImpl
}

func newLevel(size, associativity, blockSize int, latency uint64) *level {
	numSets := size / (associativity * blockSize)
	return &level{
		blockSize: blockSize,
		latency:   latency,
		directory: akitacache.NewDirectory(numSets, associativity, blockSize, newFillVictimFinder()),
	}
}

func (l *level) blockAddress(addr uint64) uint64 {
	return addr &^ uint64(l.blockSize-1)
}

// lookup probes the level for blockAddr. On a hit it returns true and any
// back-pressure penalty owed because the block's prior fill had not yet
// completed as of cycle; it also re-stamps the block's fill-completion
// timestamp to cycle+latency, which both marks it most-recently-used and
// charges out any future accesses arriving before this access finishes.
func (l *level) lookup(blockAddr, cycle uint64, isWrite bool) (block *akitacache.Block, hit bool, penalty uint64) {
	b := l.directory.Lookup(0, blockAddr)
	if b == nil || !b.IsValid {
		return nil, false, 0
	}

	if b.CacheAddress > cycle {
		penalty = b.CacheAddress - cycle
	}
	b.CacheAddress = cycle + l.latency
	if isWrite {
		b.IsDirty = true
	}
	l.directory.Visit(b)

	return b, true, penalty
}

// install fills blockAddr into the level, evicting an exact-LRU victim.
// It reports whether a valid line was evicted and that line's address, so
// callers can account for (but, per the write-back simplification, not
// cost) a dirty writeback.
func (l *level) install(blockAddr, cycle uint64, dirty bool) (evicted bool, evictedAddr uint64, evictedDirty bool) {
	victim := l.directory.FindVictim(blockAddr)

	if victim.IsValid {
		evicted = true
		evictedAddr = victim.Tag
		evictedDirty = victim.IsDirty
	}

	victim.Tag = blockAddr
	victim.IsValid = true
	victim.IsDirty = dirty
	victim.CacheAddress = cycle + l.latency
	l.directory.Visit(victim)

	return evicted, evictedAddr, evictedDirty
}
