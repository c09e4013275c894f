package ik

import (
	"math/rand"

	"github.com/golang/geo/r2"

	"go.viam.com/fabrik/referenceframe"
	"go.viam.com/fabrik/spatialmath"
)

// DefaultNoiseAmplitude bounds the uniform jitter added to seeded joint positions, which keeps a
// seed from being exactly collinear.
const DefaultNoiseAmplitude = 1e-4

// NewNoiseSource returns a deterministic random source for seeding.
func NewNoiseSource(seed int64) *rand.Rand {
	//nolint: gosec
	return rand.New(rand.NewSource(seed))
}

// InitializePose builds the starting joint positions for a solve.
//
// With angles, the chain is laid out by forward kinematics and every joint is jittered. Without
// angles, joint i of n is placed (i+1)/n of the way along the straight line from the origin to the
// target and jittered, and the end effector is placed exactly on the target.
//
// Jitter is uniform in [-amplitude, amplitude] on both axes and is skipped when noise is nil or
// amplitude is zero. Callers are expected to have checked reachability first.
func InitializePose(
	chain *referenceframe.Chain,
	target r2.Point,
	angles []referenceframe.Input,
	noise *rand.Rand,
	amplitude float64,
) ([]r2.Point, error) {
	jitter := func(p r2.Point) r2.Point {
		if noise == nil || amplitude == 0 {
			return p
		}
		spatialmath.AddInPlace(&p, r2.Point{
			X: (2*noise.Float64() - 1) * amplitude,
			Y: (2*noise.Float64() - 1) * amplitude,
		})
		return p
	}

	if angles != nil {
		positions, err := chain.JointPositions(angles)
		if err != nil {
			return nil, err
		}
		for i, p := range positions {
			positions[i] = jitter(p)
		}
		return positions, nil
	}

	n := chain.DoF()
	positions := make([]r2.Point, n)
	for i := 0; i < n-1; i++ {
		p := target
		spatialmath.MulInPlace(&p, float64(i+1)/float64(n))
		positions[i] = jitter(p)
	}
	positions[n-1] = target
	return positions, nil
}
