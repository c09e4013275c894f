package ik

import (
	"context"
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/fabrik/referenceframe"
	"go.viam.com/fabrik/spatialmath"
)

var (
	errNegativeIterations = errors.New("iteration budget cannot be negative")
	errBadPrecision       = errors.New("precision must be a non-negative number")
)

// PassDirection is the anchor of a relaxation pass.
type PassDirection int

const (
	// PassForward anchors the chain at the base and walks joints outward.
	PassForward PassDirection = iota
	// PassBackward anchors the chain at the target and walks joints back toward the base.
	PassBackward
)

// Next returns the direction of the pass that follows d.
func (d PassDirection) Next() PassDirection {
	if d == PassForward {
		return PassBackward
	}
	return PassForward
}

func (d PassDirection) String() string {
	switch d {
	case PassForward:
		return "forward"
	case PassBackward:
		return "backward"
	default:
		return "unknown"
	}
}

// Report summarizes a relaxation run.
type Report struct {
	// MaxChange is the largest segment length error seen during the last pass.
	MaxChange float64
	// Iterations is the number of passes run.
	Iterations int
	// Converged is true when MaxChange fell below the requested precision.
	Converged bool
	// LastPass is the direction of the last pass run.
	LastPass PassDirection
	// DegenerateSegments counts the segments whose direction had to be substituted because their
	// endpoints coincided.
	DegenerateSegments int
}

// PassObserver is called after every pass with the 1-indexed pass number.
type PassObserver func(pass int, direction PassDirection, maxChange float64)

// FABRIK relaxes a joint position slice in place so that consecutive joints sit exactly one segment
// length apart while the end effector stays on the target. Passes alternate between a forward
// pass anchored at the base and a backward pass anchored at the target, starting forward.
type FABRIK struct {
	positions []r2.Point
	lengths   []float64
	target    r2.Point

	direction  PassDirection
	degenerate int
}

// NewFABRIK validates its inputs and pins the end effector of positions to the target. positions is
// owned and mutated by the returned solver until it is done.
func NewFABRIK(positions []r2.Point, lengths []float64, target r2.Point) (*FABRIK, error) {
	if len(lengths) == 0 {
		return nil, referenceframe.ErrEmptyChain
	}
	if len(positions) != len(lengths) {
		return nil, referenceframe.NewIncorrectDoFError(len(positions), len(lengths))
	}
	for i, l := range lengths {
		if err := referenceframe.ValidateLength(i, l); err != nil {
			return nil, err
		}
	}
	positions[len(positions)-1] = target
	return &FABRIK{
		positions: positions,
		lengths:   lengths,
		target:    target,
		direction: PassForward,
	}, nil
}

// Relax runs up to maxIterations alternating passes over positions, stopping early once a pass sees
// no segment error at or above precision. It returns the convergence metric of the last pass.
func Relax(positions []r2.Point, lengths []float64, target r2.Point, maxIterations int, precision float64) (float64, error) {
	if err := validateBudget(maxIterations, precision); err != nil {
		return 0, err
	}
	f, err := NewFABRIK(positions, lengths, target)
	if err != nil {
		return 0, err
	}
	report, err := f.Run(context.Background(), maxIterations, precision, nil)
	if err != nil {
		return 0, err
	}
	return report.MaxChange, nil
}

func validateBudget(maxIterations int, precision float64) error {
	if maxIterations < 0 {
		return errNegativeIterations
	}
	if !(precision >= 0) {
		return errBadPrecision
	}
	return nil
}

// Direction returns the direction of the next pass.
func (f *FABRIK) Direction() PassDirection {
	return f.direction
}

// Positions returns the joint positions being relaxed.
func (f *FABRIK) Positions() []r2.Point {
	return f.positions
}

// Run iterates passes until the budget is spent, a pass converges below precision, or ctx is done.
// A zero budget runs no pass and reports the current worst segment error.
func (f *FABRIK) Run(ctx context.Context, maxIterations int, precision float64, observe PassObserver) (Report, error) {
	if err := validateBudget(maxIterations, precision); err != nil {
		return Report{}, err
	}

	report := Report{LastPass: f.direction.Next()}
	if maxIterations == 0 {
		report.MaxChange = MaxSegmentError(f.positions, f.lengths)
		report.Converged = report.MaxChange < precision
		return report, nil
	}
	for i := 0; i < maxIterations; i++ {
		if err := ctx.Err(); err != nil {
			report.DegenerateSegments = f.degenerate
			return report, err
		}
		report.LastPass = f.direction
		report.MaxChange = f.Step()
		report.Iterations++
		if observe != nil {
			observe(report.Iterations, report.LastPass, report.MaxChange)
		}
		if report.MaxChange < precision {
			report.Converged = true
			break
		}
	}
	report.DegenerateSegments = f.degenerate
	return report, nil
}

// Step runs a single pass in the current direction, flips the direction, and returns the largest
// segment length error observed during the pass.
func (f *FABRIK) Step() float64 {
	var maxChange float64
	if f.direction == PassForward {
		maxChange = f.forward()
	} else {
		maxChange = f.backward()
	}
	f.direction = f.direction.Next()
	return maxChange
}

// forward walks joints 0..n-2 out from the base, then measures the segment closing on the target.
func (f *FABRIK) forward() float64 {
	n := len(f.positions)
	maxChange := 0.
	var cursor, lastDir r2.Point
	for j := 0; j < n-1; j++ {
		maxChange = math.Max(maxChange, f.place(j, &cursor, f.lengths[j], &lastDir, f.target))
	}
	closing := spatialmath.Distance(f.target, cursor)
	return math.Max(maxChange, math.Abs(closing-f.lengths[n-1]))
}

// backward walks joints n-2..0 back from the target, then measures the segment closing on the base.
func (f *FABRIK) backward() float64 {
	n := len(f.positions)
	maxChange := 0.
	cursor := f.target
	var lastDir r2.Point
	toBase := r2.Point{}.Sub(f.target)
	for j := n - 2; j >= 0; j-- {
		maxChange = math.Max(maxChange, f.place(j, &cursor, f.lengths[j+1], &lastDir, toBase))
	}
	return math.Max(maxChange, math.Abs(cursor.Norm()-f.lengths[0]))
}

// place moves joint j to exactly length away from the cursor, along the line toward its current
// position, advances the cursor onto it, and returns the length error that was corrected.
//
// When the joint coincides with the cursor the direction is taken from the last segment placed in
// this pass, then from the pass's anchor-to-anchor direction, then +X.
func (f *FABRIK) place(j int, cursor *r2.Point, length float64, lastDir *r2.Point, anchorDir r2.Point) float64 {
	dir := f.positions[j]
	spatialmath.SubInPlace(&dir, *cursor)
	mag := dir.Norm()
	spatialmath.DivInPlace(&dir, mag)
	if mag <= spatialmath.DefaultEpsilon {
		f.degenerate++
		dir = f.fallbackDirection(*lastDir, anchorDir)
	}
	*lastDir = dir
	spatialmath.AddInPlace(cursor, dir.Mul(length))
	f.positions[j] = *cursor
	return math.Abs(mag - length)
}

func (f *FABRIK) fallbackDirection(lastDir, anchorDir r2.Point) r2.Point {
	if lastDir != (r2.Point{}) {
		return lastDir
	}
	if dir, ok := spatialmath.SafeNormalize(anchorDir); ok {
		return dir
	}
	return r2.Point{X: 1}
}
