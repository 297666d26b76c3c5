package prefetch

import (
	"math/rand"

	"github.com/archsim-lab/uarchsim/params"
)

type dhtEntry struct {
	valid                 bool
	pageNumber            uint64
	lastOffset            uint64
	timesUsed             int
	lastTable             int
	lastIndex             int
	lastDeltas            [params.DeltaHistoryLength]int64
	lastPrefetchedOffsets [params.DeltaHistoryLength]uint64
}

type optEntry struct {
	initialized     bool
	deltaPrediction int64
	accuracy        int
	lastAddress     uint64
}

type dptEntry struct {
	deltas     []int64
	prediction int64
	accuracy   int
	nmru       bool
}

// VLDP is the variable-length delta prefetcher: a delta history table (DHT)
// keyed by page, an offset prediction table (OPT) keyed by in-page block,
// and three delta prediction tables (DPT) of increasing history length.
type VLDP struct {
	dht [params.DeltaHistoryEntries]dhtEntry
	opt [params.OffsetTableEntries]optEntry
	dpt [params.DeltaPredictionTables][params.DeltaPredictionTableLength]dptEntry
	rng *rand.Rand
}

// NewVLDP returns an empty VLDP seeded from rng, which callers construct
// with an explicit seed for reproducible runs.
func NewVLDP(rng *rand.Rand) *VLDP {
	v := &VLDP{rng: rng}
	for i := range v.dht {
		v.dht[i].lastTable = -1
	}
	return v
}

func (v *VLDP) dhtLookup(page uint64) int {
	for i := range v.dht {
		if v.dht[i].valid && v.dht[i].pageNumber == page {
			return i
		}
	}
	return -1
}

func (v *VLDP) dhtInstall(page uint64) int {
	for i := range v.dht {
		if !v.dht[i].valid {
			v.dht[i] = dhtEntry{valid: true, pageNumber: page, lastTable: -1}
			return i
		}
	}
	victim := v.rng.Intn(len(v.dht))
	v.dht[victim] = dhtEntry{valid: true, pageNumber: page, lastTable: -1}
	return victim
}

// dptFind linear-scans table t for an entry whose stored deltas match window,
// returning its index or -1. DPT entries are placed by random NMRU eviction,
// not by any hash of their deltas, so lookups can't do better than a scan.
func (v *VLDP) dptFind(t int, window []int64) int {
	table := &v.dpt[t]
	for i := range table {
		if deltasEqual(table[i].deltas, window) {
			return i
		}
	}
	return -1
}

func deltasEqual(a []int64, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (v *VLDP) installDPT(t int, window []int64) {
	table := &v.dpt[t]

	var candidates []int
	for i := range table {
		if table[i].nmru {
			candidates = append(candidates, i)
		}
	}

	var victim int
	if len(candidates) > 0 {
		victim = candidates[v.rng.Intn(len(candidates))]
	} else {
		victim = v.rng.Intn(len(table))
	}

	for i := range table {
		table[i].nmru = true
	}

	table[victim] = dptEntry{
		deltas:     append([]int64(nil), window...),
		prediction: window[len(window)-1],
		accuracy:   0,
		nmru:       false,
	}
}

// Observe runs VLDP's update pipeline only when this access missed in L2,
// or when it is a Prefetch Address Encounter (the address was previously
// prefetched and is only now being demand-accessed).
func (v *VLDP) Observe(_, address, _ uint64, missedL2 bool) Event {
	page := address / params.PageSize
	offset := address % params.PageSize

	dhtIndex := v.dhtLookup(page)

	pae := false
	if !missedL2 {
		if dhtIndex == -1 {
			return Event{}
		}
		for _, o := range v.dht[dhtIndex].lastPrefetchedOffsets {
			if o == address {
				pae = true
				break
			}
		}
		if !pae {
			return Event{}
		}
	}

	if dhtIndex == -1 {
		dhtIndex = v.dhtInstall(page)
	}
	entry := &v.dht[dhtIndex]

	delta := int64(offset) - int64(entry.lastOffset)

	if entry.lastTable != -1 {
		prev := &v.dpt[entry.lastTable][entry.lastIndex]
		if delta == prev.prediction {
			if prev.accuracy < 3 {
				prev.accuracy++
			}
		} else if prev.accuracy > 0 {
			prev.accuracy--
		} else {
			prev.prediction = delta
		}
	}

	copy(entry.lastDeltas[1:], entry.lastDeltas[:len(entry.lastDeltas)-1])
	entry.lastDeltas[0] = delta
	entry.lastOffset = offset

	var prefetches []uint64

	optIndex := offset / params.BlockSize
	opt := &v.opt[optIndex]
	if !opt.initialized {
		opt.initialized = true
	} else {
		if opt.accuracy == 1 {
			prefetches = append(prefetches, uint64(int64(address)+opt.deltaPrediction))
		}
		observed := int64(address) - int64(opt.lastAddress)
		switch {
		case observed == opt.deltaPrediction:
			opt.accuracy = 1
		case opt.accuracy == 0:
			opt.deltaPrediction = observed
		default:
			opt.accuracy = 0
		}
	}
	opt.lastAddress = address

	maxTables := entry.timesUsed
	if maxTables > params.DeltaPredictionTables {
		maxTables = params.DeltaPredictionTables
	}

	matchedTable, matchedIndex := -1, -1
	for t := maxTables - 1; t >= 0; t-- {
		window := entry.lastDeltas[:t+1]
		if idx := v.dptFind(t, window); idx != -1 {
			matchedTable, matchedIndex = t, idx
			break
		}
	}

	if matchedTable != -1 {
		pred := v.dpt[matchedTable][matchedIndex].prediction
		prefetchAddr := uint64(int64(address) + pred)
		prefetches = append(prefetches, prefetchAddr)
		entry.lastTable, entry.lastIndex = matchedTable, matchedIndex
		copy(entry.lastPrefetchedOffsets[1:], entry.lastPrefetchedOffsets[:len(entry.lastPrefetchedOffsets)-1])
		entry.lastPrefetchedOffsets[0] = prefetchAddr
	} else if maxTables > 0 {
		t := maxTables - 1
		window := entry.lastDeltas[:t+1]
		v.installDPT(t, window)
		entry.lastTable, entry.lastIndex = -1, -1
	}

	entry.timesUsed++

	return Event{Prefetches: prefetches, Useful: pae}
}
