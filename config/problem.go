// Package config defines the on-disk description of an inverse kinematics problem and how it is
// read and validated.
package config

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"go.viam.com/fabrik/motionplan/ik"
	"go.viam.com/fabrik/referenceframe"
)

// Point is a planar point as written in a problem file.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Problem describes a chain, a target to drive its end effector to, and how hard to try. Unset
// tuning fields fall back to the solver defaults.
type Problem struct {
	ConfigFilePath string `json:"-"`

	Name    string    `json:"name,omitempty"`
	Lengths []float64 `json:"lengths"`
	// Angles optionally seeds the solve from a known configuration, in radians.
	Angles []float64 `json:"angles,omitempty"`
	Target *Point    `json:"target"`

	Iterations *int     `json:"iterations,omitempty"`
	Precision  *float64 `json:"precision,omitempty"`
	Seed       *int64   `json:"seed,omitempty"`
	Noise      *float64 `json:"noise,omitempty"`
}

// Validate returns every problem found with the config, rooted at path.
func (p *Problem) Validate(path string) error {
	var err error
	if len(p.Lengths) == 0 {
		err = multierr.Append(err, utils.NewConfigValidationFieldRequiredError(path, "lengths"))
	}
	for idx, l := range p.Lengths {
		if lerr := referenceframe.ValidateLength(idx, l); lerr != nil {
			err = multierr.Append(err, utils.NewConfigValidationError(
				fmt.Sprintf("%s.%s.%d", path, "lengths", idx),
				lerr,
			))
		}
	}
	if p.Angles != nil && len(p.Angles) != len(p.Lengths) {
		err = multierr.Append(err, utils.NewConfigValidationError(
			fmt.Sprintf("%s.%s", path, "angles"),
			referenceframe.NewIncorrectDoFError(len(p.Angles), len(p.Lengths)),
		))
	}
	if p.Target == nil {
		err = multierr.Append(err, utils.NewConfigValidationFieldRequiredError(path, "target"))
	}
	if p.Iterations != nil && *p.Iterations < 0 {
		err = multierr.Append(err, utils.NewConfigValidationError(path, errors.New("iterations cannot be negative")))
	}
	if p.Precision != nil && !(*p.Precision >= 0) {
		err = multierr.Append(err, utils.NewConfigValidationError(path, errors.New("precision must be a non-negative number")))
	}
	if p.Noise != nil && !(*p.Noise >= 0) {
		err = multierr.Append(err, utils.NewConfigValidationError(path, errors.New("noise must be a non-negative number")))
	}
	return err
}

// Chain builds the chain the problem describes.
func (p *Problem) Chain() (*referenceframe.Chain, error) {
	return referenceframe.NewChain(p.Name, p.Lengths)
}

// TargetPoint returns the target, or the origin if none is set.
func (p *Problem) TargetPoint() r2.Point {
	if p.Target == nil {
		return r2.Point{}
	}
	return r2.Point{X: p.Target.X, Y: p.Target.Y}
}

// Options returns solver options for the problem, starting from the solver defaults.
func (p *Problem) Options() *ik.Options {
	opts := ik.NewDefaultOptions()
	if p.Iterations != nil {
		opts.MaxIterations = *p.Iterations
	}
	if p.Precision != nil {
		opts.Precision = *p.Precision
	}
	if p.Seed != nil {
		opts.Seed = *p.Seed
	}
	if p.Noise != nil {
		opts.NoiseAmplitude = *p.Noise
	}
	if p.Angles != nil {
		opts.StartAngles = referenceframe.FloatsToInputs(p.Angles)
	}
	return opts
}
