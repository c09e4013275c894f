package referenceframe

import (
	"math"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/fabrik/spatialmath"
)

// Chain is a planar serial arm: an ordered list of fixed segment lengths hanging off a base
// anchored at the origin. Joint i terminates segment i; joint DoF()-1 is the end effector.
type Chain struct {
	name    string
	lengths []float64
	reach   float64
}

// NewChain validates the lengths and returns a chain owning a copy of them.
func NewChain(name string, lengths []float64) (*Chain, error) {
	if len(lengths) == 0 {
		return nil, ErrEmptyChain
	}
	for i, l := range lengths {
		if err := ValidateLength(i, l); err != nil {
			return nil, err
		}
	}
	owned := append([]float64(nil), lengths...)
	return &Chain{name: name, lengths: owned, reach: floats.Sum(owned)}, nil
}

// Name returns the name of the chain.
func (c *Chain) Name() string {
	return c.name
}

// DoF returns the number of segments, which is also the number of joints and angles.
func (c *Chain) DoF() int {
	return len(c.lengths)
}

// Lengths returns a copy of the segment lengths.
func (c *Chain) Lengths() []float64 {
	return append([]float64(nil), c.lengths...)
}

// Reach returns the distance covered by the fully extended chain.
func (c *Chain) Reach() float64 {
	return c.reach
}

// Reachable reports whether the target lies within the chain's full extension.
func (c *Chain) Reachable(target r2.Point) bool {
	return withinReach(c.reach, target)
}

// CheckReachable returns an error wrapping ErrUnreachable if the target is out of reach.
func (c *Chain) CheckReachable(target r2.Point) error {
	if !c.Reachable(target) {
		return NewUnreachableError(target.Norm(), c.reach)
	}
	return nil
}

// Reachable reports whether a chain with the given segment lengths can reach the target, comparing
// squared distances so that a fully extended chain counts as reachable.
func Reachable(lengths []float64, target r2.Point) bool {
	return withinReach(floats.Sum(lengths), target)
}

// withinReach compares squared distances, falling back to plain distances when squaring overflows.
func withinReach(reach float64, target r2.Point) bool {
	reach2, dist2 := reach*reach, spatialmath.Norm2(target)
	if math.IsInf(reach2, 1) || math.IsInf(dist2, 1) {
		return reach >= target.Norm()
	}
	return reach2 >= dist2
}

// JointPositions walks the chain from the base, accumulating the relative angles, and returns the
// position of every joint.
func (c *Chain) JointPositions(angles []Input) ([]r2.Point, error) {
	if len(angles) != len(c.lengths) {
		return nil, NewIncorrectDoFError(len(angles), len(c.lengths))
	}
	positions := make([]r2.Point, len(c.lengths))
	var current r2.Point
	heading := 0.
	for i, l := range c.lengths {
		heading += angles[i].Value
		spatialmath.AddInPlace(&current, spatialmath.NewPointFromAngle(heading, l))
		positions[i] = current
	}
	return positions, nil
}

// Transform returns the end effector position for the given angles.
func (c *Chain) Transform(angles []Input) (r2.Point, error) {
	positions, err := c.JointPositions(angles)
	if err != nil {
		return r2.Point{}, err
	}
	return positions[len(positions)-1], nil
}

// Angles converts joint positions of this chain back to relative joint angles.
func (c *Chain) Angles(positions []r2.Point) ([]Input, error) {
	if len(positions) != len(c.lengths) {
		return nil, NewIncorrectDoFError(len(positions), len(c.lengths))
	}
	return DeriveAngles(positions), nil
}

// SegmentErrors returns, for every segment, how far its current length in positions deviates from
// its nominal length.
func (c *Chain) SegmentErrors(positions []r2.Point) ([]float64, error) {
	if len(positions) != len(c.lengths) {
		return nil, NewIncorrectDoFError(len(positions), len(c.lengths))
	}
	errs := make([]float64, len(c.lengths))
	var prev r2.Point
	for i, p := range positions {
		errs[i] = math.Abs(spatialmath.Distance(p, prev) - c.lengths[i])
		prev = p
	}
	return errs, nil
}

// DeriveAngles converts absolute joint positions into relative turning angles. Angle 0 is the
// heading of the first segment from the origin, every later angle is the heading change from the
// previous segment. This inverts JointPositions.
func DeriveAngles(positions []r2.Point) []Input {
	angles := make([]Input, len(positions))
	var prev r2.Point
	heading := 0.
	for i, p := range positions {
		next := spatialmath.Heading(p.Sub(prev))
		angles[i] = Input{next - heading}
		heading = next
		prev = p
	}
	return angles
}
