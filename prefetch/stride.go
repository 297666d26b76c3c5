package prefetch

import "github.com/archsim-lab/uarchsim/params"

type strideState int

// Init also doubles as the "this slot is free" sentinel: an entry that
// reverts to Init after a Steady misprediction is just as eligible for
// reuse by a different PC as a never-used slot.
const (
	stateInit strideState = iota
	stateTransient
	stateSteady
	stateNoPred
)

type strideEntry struct {
	tag          uint64
	lastAddress  uint64
	stride       int64
	state        strideState
	prefetchUsed bool
}

// Stride is the PC-indexed reference prediction table (RPT): a small
// fully-associative table that learns a constant address stride per PC and
// prefetches address+stride into L2 while confident.
type Stride struct {
	entries [params.StrideEntries]strideEntry
}

// NewStride returns an empty Stride table.
func NewStride() *Stride {
	return &Stride{}
}

func (s *Stride) Observe(pc, address, _ uint64, _ bool) Event {
	index := -1
	available := -1
	for i := range s.entries {
		if s.entries[i].state == stateInit && available == -1 {
			available = i
		}
		if s.entries[i].tag == pc {
			index = i
			break
		}
	}

	if index == -1 {
		if available != -1 {
			s.entries[available] = strideEntry{
				tag:          pc,
				lastAddress:  address,
				state:        stateTransient,
				prefetchUsed: true, // no prefetch outstanding yet
			}
		}
		return Event{}
	}

	e := &s.entries[index]
	delta := int64(address) - int64(e.lastAddress)
	useful := false

	if delta == e.stride {
		if e.state == stateNoPred {
			e.state = stateTransient
		} else {
			e.state = stateSteady
		}
		if !e.prefetchUsed {
			useful = true
			e.prefetchUsed = true
		}
	} else {
		switch e.state {
		case stateInit:
			e.stride = delta
			e.state = stateTransient
		case stateTransient, stateNoPred:
			e.stride = delta
			e.state = stateNoPred
		case stateSteady:
			e.state = stateInit
		}
	}

	ev := Event{Useful: useful}
	if e.state != stateNoPred {
		e.prefetchUsed = false
		ev.Prefetches = []uint64{uint64(int64(address) + e.stride)}
	}
	e.lastAddress = address

	return ev
}
