package branch

import "github.com/archsim-lab/uarchsim/params"

// perceptronThreshold (theta) gates training when the prediction was
// correct but not confident.
const perceptronThreshold = params.HistoryBits

// Perceptron keeps one row of HistoryBits integer weights per index,
// indexed the same way as TwoLevelGlobal (BHR XOR low PC bits), and
// predicts from the sign of the dot product against the mapped history.
type Perceptron struct {
	bhr     uint8
	weights [params.PerceptronRows][params.HistoryBits]int
}

// NewPerceptron returns a Perceptron with every weight at 1 and the shared
// history register set to all-ones, matching the reference trainer's
// initial state.
func NewPerceptron() *Perceptron {
	p := &Perceptron{bhr: uint8(1<<params.HistoryBits - 1)}
	for i := range p.weights {
		for j := range p.weights[i] {
			p.weights[i][j] = 1
		}
	}
	return p
}

func (p *Perceptron) index(pc uint64) uint8 {
	return p.bhr ^ (uint8(pc) & historyMask)
}

func historyBit(bhr uint8, i int) int {
	if bhr&(1<<uint(i)) != 0 {
		return 1
	}
	return -1
}

func (p *Perceptron) dot(idx uint8) int {
	sum := 0
	for i := 0; i < params.HistoryBits; i++ {
		sum += p.weights[idx][i] * historyBit(p.bhr, i)
	}
	return sum
}

func (p *Perceptron) Predict(_ *Entry, pc uint64) bool {
	return p.dot(p.index(pc)) > 0
}

func (p *Perceptron) Update(_ *Entry, pc uint64, taken bool) {
	idx := p.index(pc)
	pred := p.dot(idx)
	wrong := (pred > 0) != taken

	if wrong || abs(pred) < perceptronThreshold {
		t := -1
		if taken {
			t = 1
		}
		for i := 0; i < params.HistoryBits; i++ {
			p.weights[idx][i] += t * historyBit(p.bhr, i)
		}
	}

	p.bhr = shiftHistory(p.bhr, taken)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
