package cli

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/fabrik/chainplot"
	"go.viam.com/fabrik/config"
	"go.viam.com/fabrik/logging"
	"go.viam.com/fabrik/motionplan/ik"
)

// SolveAction solves the problem described by the flags and the optional problem file.
func SolveAction(c *cli.Context) error {
	problem, err := problemFromFlags(c)
	if err != nil {
		return err
	}
	return solveAndReport(c, problem)
}

func problemFromFlags(c *cli.Context) (*config.Problem, error) {
	problem := &config.Problem{}
	if path := c.String(flagConfig); path != "" {
		read, err := config.Read(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read problem from %s", path)
		}
		problem = read
	}
	if c.IsSet(flagLengths) {
		problem.Lengths = c.Float64Slice(flagLengths)
	}
	if c.IsSet(flagAngles) {
		problem.Angles = c.Float64Slice(flagAngles)
	}
	if c.IsSet(flagTarget) {
		target := c.Float64Slice(flagTarget)
		if len(target) != 2 {
			return nil, errors.Errorf("--%s takes exactly two values x,y, got %d", flagTarget, len(target))
		}
		problem.Target = &config.Point{X: target[0], Y: target[1]}
	}
	if c.IsSet(flagIterations) {
		iterations := c.Int(flagIterations)
		problem.Iterations = &iterations
	}
	if c.IsSet(flagPrecision) {
		precision := c.Float64(flagPrecision)
		problem.Precision = &precision
	}
	applySolverFlags(c, problem)

	if err := problem.Validate("flags"); err != nil {
		return nil, err
	}
	return problem, nil
}

// applySolverFlags overrides the tuning shared by every command.
func applySolverFlags(c *cli.Context, problem *config.Problem) {
	if c.IsSet(flagSeed) {
		seed := c.Int64(flagSeed)
		problem.Seed = &seed
	}
	if c.IsSet(flagNoise) {
		noise := c.Float64(flagNoise)
		problem.Noise = &noise
	}
}

// newLogger logs to the app's error writer and, if asked, to a file. The returned func closes the
// file.
func newLogger(c *cli.Context) (logging.Logger, func() error, error) {
	level := logging.DEBUG
	if !c.Bool(flagDebug) {
		var err error
		if level, err = logging.LevelFromString(c.String(flagLogLevel)); err != nil {
			return nil, nil, err
		}
	}
	logger := logging.NewBlankLogger("fabrik")
	logger.SetLevel(level)
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	closer := func() error { return nil }
	if path := c.String(flagLogFile); path != "" {
		file := logging.NewFileAppender(path)
		logger.AddAppender(file)
		closer = file.Close
	}
	return logger, closer, nil
}

func solveAndReport(c *cli.Context, problem *config.Problem) (err error) {
	logger, closeLog, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, closeLog())
	}()
	chain, err := problem.Chain()
	if err != nil {
		return err
	}
	target := problem.TargetPoint()

	sol, err := ik.Solve(c.Context, logger.Sublogger("ik"), chain, target, problem.Options())
	if err != nil {
		return err
	}
	if err := writeReport(c.App.Writer, chain, target, sol); err != nil {
		return err
	}

	if path := c.String(flagPlot); path != "" {
		title := chain.Name()
		if title == "" {
			title = "chain"
		}
		if err := chainplot.Save(path, title, sol.StartPositions, sol.Positions, target); err != nil {
			return errors.Wrap(err, "failed to plot chain")
		}
		printf(c.App.Writer, "plot written to %s", path)
	}
	return nil
}
