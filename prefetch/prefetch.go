// Package prefetch implements the hardware prefetcher policies the cache
// engine can drive: a null prefetcher, a PC-indexed stride predictor (RPT),
// and a variable-length delta prefetcher (VLDP).
package prefetch

// Event is what a Prefetcher returns after observing one cache access: the
// L2 addresses (if any) it wants speculatively installed, and whether this
// particular access confirms a previously issued prefetch as useful.
type Event struct {
	Prefetches []uint64
	Useful     bool
}

// Prefetcher observes every cache access in program order and may react by
// requesting speculative L2 installs.
type Prefetcher interface {
	Observe(pc, address, cycle uint64, missedL2 bool) Event
}
