package referenceframe

import (
	"math"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyChain is returned when a chain is built without any segments.
	ErrEmptyChain = errors.New("chain needs at least one segment")

	// ErrUnreachable is returned when a target lies beyond the chain's full extension.
	ErrUnreachable = errors.New("target is out of reach")

	// ErrNonPositiveLength is returned when a segment length is zero, negative or not finite.
	ErrNonPositiveLength = errors.New("segment lengths must be positive and finite")
)

// NewIncorrectDoFError returns an error indicating that the length of an angle or position slice
// does not match the number of segments of the chain.
func NewIncorrectDoFError(actual, expected int) error {
	return errors.Errorf("number of inputs does not match number of segments, have %d want %d", actual, expected)
}

// NewUnreachableError wraps ErrUnreachable with the distance of the target and the reach of the chain.
func NewUnreachableError(distance, reach float64) error {
	return errors.Wrapf(ErrUnreachable, "target at distance %.6g, chain reaches %.6g", distance, reach)
}

// ValidateLength returns an error wrapping ErrNonPositiveLength unless the length of segment idx is
// positive and finite.
func ValidateLength(idx int, length float64) error {
	if !(length > 0) || math.IsInf(length, 1) {
		return NewNonPositiveLengthError(idx, length)
	}
	return nil
}

// NewNonPositiveLengthError wraps ErrNonPositiveLength with the offending segment.
func NewNonPositiveLengthError(idx int, length float64) error {
	return errors.Wrapf(ErrNonPositiveLength, "segment %d has length %v", idx, length)
}
