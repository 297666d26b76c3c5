package branch

import "fmt"

// Kind names one of the five interchangeable prediction policies.
type Kind string

const (
	NotTakenKind      Kind = "not_taken"
	TwoBitKind        Kind = "two_bit"
	TwoLevelLocalKind Kind = "two_level_local"
	TwoLevelGlobalKind Kind = "two_level_global"
	PerceptronKind    Kind = "perceptron"
)

// New constructs the Predictor named by kind.
func New(kind Kind) (Predictor, error) {
	switch kind {
	case NotTakenKind:
		return NotTaken{}, nil
	case TwoBitKind:
		return TwoBit{}, nil
	case TwoLevelLocalKind:
		return NewTwoLevelLocal(), nil
	case TwoLevelGlobalKind:
		return NewTwoLevelGlobal(), nil
	case PerceptronKind:
		return NewPerceptron(), nil
	default:
		return nil, fmt.Errorf("unknown branch predictor kind %q", kind)
	}
}
