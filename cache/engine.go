package cache

import (
	"github.com/archsim-lab/uarchsim/params"
	"github.com/archsim-lab/uarchsim/prefetch"
	"github.com/archsim-lab/uarchsim/trace"
)

// Stats accumulates the cycle and hit/miss counters a CacheEngine run
// produces.
type Stats struct {
	Cycles           uint64
	L1Hit            uint64
	L1Miss           uint64
	L2Hit            uint64
	L2Miss           uint64
	PrefetchesTotal  uint64
	PrefetchesUseful uint64
}

// MissRate is the fraction of memory accesses that missed in L1.
func (s Stats) MissRate() float64 {
	total := s.L1Hit + s.L1Miss
	if total == 0 {
		return 0
	}
	return float64(s.L1Miss) / float64(total)
}

// PrefetchRate is the fraction of issued prefetches later confirmed useful.
func (s Stats) PrefetchRate() float64 {
	if s.PrefetchesTotal == 0 {
		return 0
	}
	return float64(s.PrefetchesUseful) / float64(s.PrefetchesTotal)
}

// Engine drives a trace of memory records through an L1/L2/DRAM hierarchy,
// dispatching every access to a swappable hardware prefetcher.
type Engine struct {
	l1         *level
	l2         *level
	prefetcher prefetch.Prefetcher
	recordHook func(trace.MemoryRecord)
	cycle      uint64
	stats      Stats
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithPrefetcher overrides the engine's hardware prefetcher. Without this
// option the engine runs with prefetch.Null{}.
func WithPrefetcher(p prefetch.Prefetcher) Option {
	return func(e *Engine) { e.prefetcher = p }
}

// WithRecordHook registers a callback invoked with each record immediately
// after it's read, before any cycle accounting. cmd/cachesim uses this for
// its -v echo.
func WithRecordHook(hook func(trace.MemoryRecord)) Option {
	return func(e *Engine) { e.recordHook = hook }
}

// NewEngine constructs an Engine with the fixed L1/L2/DRAM geometry and
// defaults to no prefetching unless overridden by WithPrefetcher.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		l1:         newLevel(params.L1Size, params.L1Associativity, params.BlockSize, params.L1Latency),
		l2:         newLevel(params.L2Size, params.L2Associativity, params.BlockSize, params.L2Latency),
		prefetcher: prefetch.Null{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stats returns the accumulated statistics.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Run drives r to completion, charging one cycle per record plus the cache
// lookup cost of each non-zero read/write slot.
func (e *Engine) Run(r *trace.MemoryReader) (Stats, error) {
	for {
		rec, ok, err := r.Next()
		if err != nil {
			return e.stats, err
		}
		if !ok {
			break
		}

		if e.recordHook != nil {
			e.recordHook(rec)
		}

		e.cycle++
		e.stats.Cycles++

		for _, acc := range rec.Accesses() {
			e.access(rec.Address, acc.Address, acc.IsWrite)
		}
	}
	return e.stats, nil
}

// access performs one L1 -> L2 -> DRAM lookup chain for address, charging
// latency and back-pressure penalties, installing fills non-inclusively at
// every level the access traverses, and notifying the active prefetcher.
func (e *Engine) access(pc, address uint64, isWrite bool) {
	l1Addr := e.l1.blockAddress(address)

	if _, hit, penalty := e.l1.lookup(l1Addr, e.cycle, isWrite); hit {
		e.charge(e.l1.latency + penalty)
		e.stats.L1Hit++
		e.notifyPrefetcher(pc, address, false)
		return
	}
	e.stats.L1Miss++

	l2Addr := e.l2.blockAddress(address)
	if _, hit, penalty := e.l2.lookup(l2Addr, e.cycle, isWrite); hit {
		e.charge(e.l1.latency + e.l2.latency + penalty)
		e.stats.L2Hit++
		e.l1.install(l1Addr, e.cycle, isWrite)
		e.notifyPrefetcher(pc, address, false)
		return
	}
	e.stats.L2Miss++

	e.charge(e.l1.latency + e.l2.latency + params.DRAMLatency)
	e.l2.install(l2Addr, e.cycle, isWrite)
	e.l1.install(l1Addr, e.cycle, isWrite)
	e.notifyPrefetcher(pc, address, true)
}

func (e *Engine) charge(cycles uint64) {
	e.cycle += cycles
	e.stats.Cycles += cycles
}

func (e *Engine) notifyPrefetcher(pc, address uint64, missedL2 bool) {
	ev := e.prefetcher.Observe(pc, address, e.cycle, missedL2)

	for _, p := range ev.Prefetches {
		e.stats.PrefetchesTotal++
		blockAddr := e.l2.blockAddress(p)
		if _, hit, _ := e.l2.lookup(blockAddr, e.cycle, false); !hit {
			e.l2.install(blockAddr, e.cycle, false)
		}
	}

	if ev.Useful {
		e.stats.PrefetchesUseful++
	}
}
