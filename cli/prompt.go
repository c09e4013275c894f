package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"go.viam.com/fabrik/config"
)

// Prompter asks the user for the values of a problem, one at a time.
type Prompter interface {
	Int(title string) (int, error)
	Float(title string) (float64, error)
	Confirm(title string) (bool, error)
}

// newPrompter is swapped out in tests.
var newPrompter = func(c *cli.Context) Prompter {
	accessible := !term.IsTerminal(int(os.Stdin.Fd()))
	if c.IsSet(flagAccessible) {
		accessible = c.Bool(flagAccessible)
	}
	return &formPrompter{accessible: accessible}
}

// PromptAction asks for a problem interactively and solves it.
func PromptAction(c *cli.Context) error {
	problem, err := promptProblem(newPrompter(c))
	if err != nil {
		return err
	}
	applySolverFlags(c, problem)
	return solveAndReport(c, problem)
}

func promptProblem(p Prompter) (*config.Problem, error) {
	count, err := p.Int("How many segments does the arm have?")
	if err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, errors.New("the arm needs at least one segment")
	}

	lengths := make([]float64, count)
	for i := range lengths {
		if lengths[i], err = p.Float(fmt.Sprintf("Length of segment %d", i)); err != nil {
			return nil, err
		}
	}

	fromAngles, err := p.Confirm("Start from a known configuration?")
	if err != nil {
		return nil, err
	}
	var angles []float64
	if fromAngles {
		angles = make([]float64, count)
		for i := range angles {
			if angles[i], err = p.Float(fmt.Sprintf("Angle of joint %d in radians", i)); err != nil {
				return nil, err
			}
		}
	}

	x, err := p.Float("Target X")
	if err != nil {
		return nil, err
	}
	y, err := p.Float("Target Y")
	if err != nil {
		return nil, err
	}
	iterations, err := p.Int("How many passes should the solver run at most?")
	if err != nil {
		return nil, err
	}
	precision, err := p.Float("Stop early once no segment changes by this much (0 to run every pass)")
	if err != nil {
		return nil, err
	}
	if precision < 0 {
		precision = 0
	}

	problem := &config.Problem{
		Lengths:    lengths,
		Angles:     angles,
		Target:     &config.Point{X: x, Y: y},
		Iterations: &iterations,
		Precision:  &precision,
	}
	if err := problem.Validate("prompt"); err != nil {
		return nil, err
	}
	return problem, nil
}

// formPrompter asks every question with a single field form.
type formPrompter struct {
	accessible bool
}

func (p *formPrompter) run(field huh.Field) error {
	return huh.NewForm(huh.NewGroup(field)).WithAccessible(p.accessible).Run()
}

func (p *formPrompter) input(title string, parse func(string) error) (string, error) {
	var raw string
	err := p.run(huh.NewInput().
		Title(title).
		Value(&raw).
		Validate(func(s string) error {
			return parse(strings.TrimSpace(s))
		}))
	return strings.TrimSpace(raw), err
}

func (p *formPrompter) Int(title string) (int, error) {
	raw, err := p.input(title, func(s string) error {
		if _, err := cast.ToIntE(s); err != nil {
			return errors.New("enter a whole number")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return cast.ToIntE(raw)
}

func (p *formPrompter) Float(title string) (float64, error) {
	raw, err := p.input(title, func(s string) error {
		if _, err := cast.ToFloat64E(s); err != nil {
			return errors.New("enter a number")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return cast.ToFloat64E(raw)
}

func (p *formPrompter) Confirm(title string) (bool, error) {
	var answer bool
	err := p.run(huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&answer))
	return answer, err
}
