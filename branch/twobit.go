package branch

import "github.com/archsim-lab/uarchsim/params"

// TwoBit predicts from the BTB entry's own 2-bit saturating counter:
// counter < 2 predicts not-taken, counter >= 2 predicts taken.
type TwoBit struct{}

func (TwoBit) Predict(e *Entry, _ uint64) bool {
	return e.Counter >= params.CounterTakenThreshold
}

func (TwoBit) Update(e *Entry, _ uint64, taken bool) {
	if taken {
		if e.Counter < params.CounterMax {
			e.Counter++
		}
		return
	}
	if e.Counter > 0 {
		e.Counter--
	}
}
