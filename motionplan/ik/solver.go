// Package ik implements iterative inverse kinematics for planar chains: pose seeding, FABRIK-style
// relaxation, and the orchestration that turns a target into joint positions and angles.
package ik

import (
	"context"
	"time"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/fabrik/logging"
	"go.viam.com/fabrik/referenceframe"
)

const (
	// DefaultMaxIterations is the pass budget used when none is given.
	DefaultMaxIterations = 100
	// DefaultPrecision of zero disables early termination, so the full budget is run.
	DefaultPrecision = 0.
)

// Options configures a Solve.
type Options struct {
	// MaxIterations is the number of relaxation passes to run at most.
	MaxIterations int
	// Precision stops the solve once a pass sees no segment error at or above it.
	Precision float64
	// Seed drives the jitter of the starting pose.
	Seed int64
	// NoiseAmplitude bounds the jitter of the starting pose. Zero disables it.
	NoiseAmplitude float64
	// StartAngles, when set, seeds the solve from this configuration instead of from the straight
	// line to the target.
	StartAngles []referenceframe.Input
}

// NewDefaultOptions returns options with the default budget, no early termination, the default
// jitter, and a seed derived from the current time.
func NewDefaultOptions() *Options {
	return &Options{
		MaxIterations:  DefaultMaxIterations,
		Precision:      DefaultPrecision,
		Seed:           time.Now().UnixNano(),
		NoiseAmplitude: DefaultNoiseAmplitude,
	}
}

// Solution is the outcome of a Solve.
type Solution struct {
	StartPositions []r2.Point
	StartAngles    []referenceframe.Input
	Positions      []r2.Point
	Angles         []referenceframe.Input
	// AngleDeltas is Angles - StartAngles, joint by joint.
	AngleDeltas []referenceframe.Input
	Report
}

// Solve drives the end effector of chain to target. Validation and reachability errors are returned
// before any pose is built. Running out of budget is not an error: the best-effort solution is
// returned with Converged false.
func Solve(
	ctx context.Context,
	logger logging.Logger,
	chain *referenceframe.Chain,
	target r2.Point,
	opts *Options,
) (*Solution, error) {
	if chain == nil {
		return nil, referenceframe.ErrEmptyChain
	}
	if opts == nil {
		opts = NewDefaultOptions()
	}
	if err := validateBudget(opts.MaxIterations, opts.Precision); err != nil {
		return nil, err
	}
	if opts.StartAngles != nil && len(opts.StartAngles) != chain.DoF() {
		return nil, referenceframe.NewIncorrectDoFError(len(opts.StartAngles), chain.DoF())
	}
	if err := chain.CheckReachable(target); err != nil {
		return nil, err
	}

	positions, err := InitializePose(chain, target, opts.StartAngles, NewNoiseSource(opts.Seed), opts.NoiseAmplitude)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize pose")
	}
	sol := &Solution{StartPositions: append([]r2.Point(nil), positions...)}
	if opts.StartAngles != nil {
		sol.StartAngles = append([]referenceframe.Input(nil), opts.StartAngles...)
	} else {
		sol.StartAngles = referenceframe.DeriveAngles(positions)
	}

	logger.Debugw("starting relaxation",
		"chain", chain.Name(),
		"segments", chain.DoF(),
		"target", target,
		"maxIterations", opts.MaxIterations,
		"precision", opts.Precision,
		"seed", opts.Seed,
	)

	solver, err := NewFABRIK(positions, chain.Lengths(), target)
	if err != nil {
		return nil, err
	}
	report, err := solver.Run(ctx, opts.MaxIterations, opts.Precision, func(pass int, dir PassDirection, maxChange float64) {
		logger.Debugw("relaxation pass", "pass", pass, "direction", dir.String(), "maxChange", maxChange)
	})
	if err != nil {
		return nil, err
	}
	if report.DegenerateSegments > 0 {
		logger.Warnf("%d segment(s) collapsed onto a neighboring joint and were re-aimed", report.DegenerateSegments)
	}
	if report.Converged {
		logger.Debugf("converged after %d passes, max change %g", report.Iterations, report.MaxChange)
	} else {
		logger.Debugf("iteration budget of %d exhausted, max change %g", opts.MaxIterations, report.MaxChange)
	}

	sol.Report = report
	sol.Positions = positions
	sol.Angles = referenceframe.DeriveAngles(positions)
	sol.AngleDeltas, err = referenceframe.InputDeltas(sol.StartAngles, sol.Angles)
	if err != nil {
		return nil, err
	}
	return sol, nil
}
