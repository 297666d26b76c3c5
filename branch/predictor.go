// Package branch simulates a direct-mapped branch target buffer driven by
// one of several interchangeable direction-prediction policies.
package branch

import "github.com/archsim-lab/uarchsim/params"

// Entry is one slot of the direct-mapped branch target buffer.
type Entry struct {
	Address uint64
	Target  uint64
	History uint8
	Counter uint8
	Valid   bool
}

// Predictor is the common interface every branch-direction policy
// implements. It is consulted only for conditional branches whose BTB
// entry already existed before this reference (not just-installed).
type Predictor interface {
	// Predict reports whether entry's branch is predicted taken.
	Predict(entry *Entry, pc uint64) bool
	// Update trains the predictor's state given the actual outcome.
	Update(entry *Entry, pc uint64, taken bool)
}

// shiftHistory pushes outcome into the low bit of a history register,
// masked to the configured history width.
func shiftHistory(h uint8, taken bool) uint8 {
	h <<= 1
	if taken {
		h |= 1
	}
	return h & historyMask
}

const historyMask = 1<<params.HistoryBits - 1
