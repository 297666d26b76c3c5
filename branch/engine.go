package branch

import (
	"github.com/archsim-lab/uarchsim/params"
	"github.com/archsim-lab/uarchsim/trace"
)

// Cycle costs for the three branch-reference outcomes.
const (
	HitCycles           = 1
	MissCycles          = 5
	MissPredictedCycles = 4
)

// Stats accumulates the outcome of a full trace run.
type Stats struct {
	Cycles      uint64
	Hits        uint64
	Misses      uint64
	Mispredicts uint64
}

// Engine drives a direct-mapped BTB and one active Predictor over a branch
// trace, accumulating cycle and outcome counters.
type Engine struct {
	btb       [params.BTBSize]Entry
	predictor Predictor
	stats     Stats
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithPredictor sets the active direction-prediction policy. The default,
// if unset, is TwoLevelGlobal.
func WithPredictor(p Predictor) Option {
	return func(e *Engine) { e.predictor = p }
}

// NewEngine returns an Engine with a fresh, all-invalid BTB.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{predictor: NewTwoLevelGlobal()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func btbIndex(address uint64) uint64 {
	return address & (params.BTBSize - 1)
}

// Run drives r to completion and returns the accumulated stats.
func (e *Engine) Run(r *trace.BranchReader) (Stats, error) {
	current, ok, err := r.Next()
	if err != nil {
		return Stats{}, err
	}
	if !ok {
		return e.stats, nil
	}

	for {
		next, hasNext, err := r.Next()
		if err != nil {
			return Stats{}, err
		}

		e.step(current, next, hasNext)

		if !hasNext {
			break
		}
		current = next
	}

	return e.stats, nil
}

// step accounts for one branch reference, given the record that follows it
// (hasNext is false at end of trace, in which case next is the zero value).
func (e *Engine) step(current, next trace.BranchRecord, hasNext bool) {
	if !current.IsBranch() {
		e.stats.Cycles++
		return
	}

	entry := &e.btb[btbIndex(current.Address)]

	if !entry.Valid || entry.Address != current.Address {
		*entry = Entry{Address: current.Address, Valid: true}
		e.stats.Cycles += MissCycles
		e.stats.Misses++
		return
	}

	if !current.IsConditional {
		e.stats.Cycles += HitCycles
		e.stats.Hits++
		if hasNext {
			entry.Target = next.Address
		}
		return
	}

	if !hasNext {
		return
	}

	taken := next.Address != current.Address+current.Size
	predictedTaken := e.predictor.Predict(entry, current.Address)
	targetOK := !predictedTaken || entry.Target == next.Address

	if predictedTaken == taken && targetOK {
		e.stats.Cycles += HitCycles
		e.stats.Hits++
	} else {
		e.stats.Cycles += MissPredictedCycles
		e.stats.Mispredicts++
	}

	e.predictor.Update(entry, current.Address, taken)

	if taken {
		entry.Target = next.Address
	}
}

// Stats returns the counters accumulated so far.
func (e *Engine) Stats() Stats {
	return e.stats
}
