package referenceframe

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Input wraps one joint angle of a chain, in radians. Angle 0 is absolute (from +X at the base),
// every later angle is relative to the direction of the previous segment.
type Input struct {
	Value float64
}

// FloatsToInputs wraps a slice of floats in Inputs.
func FloatsToInputs(floats []float64) []Input {
	inputs := make([]Input, len(floats))
	for i, f := range floats {
		inputs[i] = Input{f}
	}
	return inputs
}

// InputsToFloats unwraps Inputs to raw floats.
func InputsToFloats(inputs []Input) []float64 {
	floats := make([]float64, len(inputs))
	for i, f := range inputs {
		floats[i] = f.Value
	}
	return floats
}

// InputsL2Distance returns the two-norm (the sqrt of the sum of the squares) between two Input sets.
func InputsL2Distance(from, to []Input) float64 {
	if len(from) != len(to) {
		return math.Inf(1)
	}
	diff := make([]float64, 0, len(from))
	for i, f := range from {
		diff = append(diff, f.Value-to[i].Value)
	}
	// 2 is the L value returning a standard L2 Normalization
	return floats.Norm(diff, 2)
}

// InputDeltas returns to - from element-wise, e.g. the angle change of every joint over a solve.
func InputDeltas(from, to []Input) ([]Input, error) {
	if len(from) != len(to) {
		return nil, NewIncorrectDoFError(len(to), len(from))
	}
	deltas := InputsToFloats(to)
	floats.Sub(deltas, InputsToFloats(from))
	return FloatsToInputs(deltas), nil
}
