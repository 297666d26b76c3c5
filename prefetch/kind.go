package prefetch

import (
	"fmt"
	"math/rand"
)

// Kind names one of the three interchangeable prefetcher policies.
type Kind string

const (
	NoneKind   Kind = "none"
	StrideKind Kind = "stride"
	VLDPKind   Kind = "vldp"
)

// New constructs the Prefetcher named by kind. seed is only consulted by
// VLDP, whose DHT/DPT victim selection needs a reproducible PRNG.
func New(kind Kind, seed int64) (Prefetcher, error) {
	switch kind {
	case NoneKind:
		return Null{}, nil
	case StrideKind:
		return NewStride(), nil
	case VLDPKind:
		return NewVLDP(rand.New(rand.NewSource(seed))), nil
	default:
		return nil, fmt.Errorf("unknown prefetcher kind %q", kind)
	}
}
