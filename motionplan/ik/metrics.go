package ik

import (
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/fabrik/spatialmath"
)

// SegmentError returns how far the segment from `from` to `to` is from its nominal length.
func SegmentError(from, to r2.Point, length float64) float64 {
	return math.Abs(spatialmath.Distance(from, to) - length)
}

// MaxSegmentError returns the largest SegmentError over the whole chain, the first segment starting
// at the origin. Mismatched slices report an infinite error.
func MaxSegmentError(positions []r2.Point, lengths []float64) float64 {
	if len(positions) != len(lengths) {
		return math.Inf(1)
	}
	worst := 0.
	var prev r2.Point
	for i, p := range positions {
		worst = math.Max(worst, SegmentError(prev, p, lengths[i]))
		prev = p
	}
	return worst
}

// MaxDisplacement returns the largest distance any joint moved between two position sets.
// Mismatched slices report an infinite displacement.
func MaxDisplacement(from, to []r2.Point) float64 {
	if len(from) != len(to) {
		return math.Inf(1)
	}
	worst := 0.
	for i, p := range from {
		worst = math.Max(worst, spatialmath.Distance(p, to[i]))
	}
	return worst
}

// EndEffectorError returns the distance between the last joint and the target.
func EndEffectorError(positions []r2.Point, target r2.Point) float64 {
	if len(positions) == 0 {
		return math.Inf(1)
	}
	return spatialmath.Distance(positions[len(positions)-1], target)
}
