package branch

import "github.com/archsim-lab/uarchsim/params"

// TwoLevelLocal keys a shared pattern history table by each branch's own
// local history register, carried in the owning BTB entry.
type TwoLevelLocal struct {
	pht [1 << params.HistoryBits]uint8
}

// NewTwoLevelLocal returns a TwoLevelLocal with all counters at 0.
func NewTwoLevelLocal() *TwoLevelLocal {
	return &TwoLevelLocal{}
}

func (p *TwoLevelLocal) Predict(e *Entry, _ uint64) bool {
	return p.pht[e.History] >= params.CounterTakenThreshold
}

func (p *TwoLevelLocal) Update(e *Entry, _ uint64, taken bool) {
	idx := e.History
	if taken {
		if p.pht[idx] < params.CounterMax {
			p.pht[idx]++
		}
	} else if p.pht[idx] > 0 {
		p.pht[idx]--
	}
	e.History = shiftHistory(e.History, taken)
}
