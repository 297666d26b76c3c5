package branch

import "github.com/archsim-lab/uarchsim/params"

// TwoLevelGlobal is the gshare-style variant: a single branch history
// register, shared across every branch, XORed with the low history-width
// bits of the PC to index one shared pattern history table.
type TwoLevelGlobal struct {
	bhr uint8
	pht [1 << params.HistoryBits]uint8
}

// NewTwoLevelGlobal returns a TwoLevelGlobal with an empty history and all
// counters at 0.
func NewTwoLevelGlobal() *TwoLevelGlobal {
	return &TwoLevelGlobal{}
}

func (p *TwoLevelGlobal) index(pc uint64) uint8 {
	return p.bhr ^ (uint8(pc) & historyMask)
}

func (p *TwoLevelGlobal) Predict(_ *Entry, pc uint64) bool {
	return p.pht[p.index(pc)] >= params.CounterTakenThreshold
}

func (p *TwoLevelGlobal) Update(_ *Entry, pc uint64, taken bool) {
	idx := p.index(pc)
	if taken {
		if p.pht[idx] < params.CounterMax {
			p.pht[idx]++
		}
	} else if p.pht[idx] > 0 {
		p.pht[idx]--
	}
	p.bhr = shiftHistory(p.bhr, taken)
}
