// Package params centralizes the normative numeric constants shared by the
// branch prediction and cache hierarchy simulators, so no size or latency
// is duplicated (and risks drifting) across packages.
package params

const (
	// BTBSize is the number of entries in the direct-mapped branch target buffer.
	BTBSize = 64

	// HistoryBits is the width, in bits, of every branch/local history register
	// and the perceptron's global history.
	HistoryBits = 4

	// PerceptronRows is the number of independent perceptrons (indexed by the
	// global history XOR the low PC bits).
	PerceptronRows = 16

	// CounterMax is the saturating ceiling of a 2-bit prediction counter.
	CounterMax = 3
	// CounterTakenThreshold is the smallest counter value predicting taken.
	CounterTakenThreshold = 2
)

const (
	// BlockSize is the cache line size, in bytes, shared by L1 and L2.
	BlockSize = 64

	L1Size          = 64 * 1024
	L1Associativity = 4
	L1Latency       = 2

	L2Size          = 2 * 1024 * 1024
	L2Associativity = 8
	L2Latency       = 4

	DRAMLatency = 150
)

const (
	// PageSize is the granularity VLDP's delta-history table keys on.
	PageSize = 8192

	// StrideEntries is the size of the stride (RPT) prefetcher's table.
	StrideEntries = 64

	// DeltaHistoryEntries is the size of VLDP's delta history table (DHT).
	DeltaHistoryEntries = 64

	// OffsetTableEntries is VLDP's per-page offset prediction table (OPT)
	// size: one entry per cache block within a page.
	OffsetTableEntries = PageSize / BlockSize

	// DeltaPredictionTables is the number of delta-prediction tables (DPT)
	// VLDP keeps, indexed by how many trailing deltas they match on.
	DeltaPredictionTables = 3

	// DeltaPredictionTableLength is the number of entries in each DPT.
	DeltaPredictionTableLength = 64

	// DeltaHistoryLength is the size of the ring buffers each DHT entry
	// keeps of recent deltas / recently prefetched offsets.
	DeltaHistoryLength = 5
)
