package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.viam.com/test"

	"go.viam.com/fabrik/config"
)

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run(append([]string{"fabrik"}, args...))
	return out.String(), errOut.String(), err
}

func TestSolveCommand(t *testing.T) {
	out, _, err := runApp(t, "solve",
		"--lengths", "1,1",
		"--target", "1.5,0",
		"--iterations", "1000",
		"--precision", "1e-9",
		"--seed", "3",
	)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, strings.ToLower(out), test.ShouldContainSubstring, "joint positions")
	test.That(t, strings.ToLower(out), test.ShouldContainSubstring, "joint angles")
	test.That(t, out, test.ShouldContainSubstring, "converged after")
	test.That(t, out, test.ShouldContainSubstring, "1.500000")
}

func TestSolveCommandBudget(t *testing.T) {
	out, _, err := runApp(t, "solve", "--lengths", "1,1,1", "--target", "0.5,0.5", "--iterations", "3", "--seed", "1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "stopped after 3 passes without converging")
}

func TestSolveCommandDebug(t *testing.T) {
	_, logs, err := runApp(t, "--debug", "solve", "--lengths", "1", "--target", "0,1", "--iterations", "2", "--seed", "1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logs, test.ShouldContainSubstring, "relaxation pass")

	_, logs, err = runApp(t, "solve", "--lengths", "1", "--target", "0,1", "--iterations", "2", "--seed", "1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logs, test.ShouldNotContainSubstring, "relaxation pass")
}

func TestSolveCommandErrors(t *testing.T) {
	_, _, err := runApp(t, "solve", "--lengths", "1", "--target", "2,0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "out of reach")

	_, _, err = runApp(t, "solve", "--lengths", "1", "--target", "2")
	test.That(t, err, test.ShouldBeError, errors.New("--target takes exactly two values x,y, got 1"))

	_, _, err = runApp(t, "solve", "--target", "1,0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"lengths" is required`)

	_, _, err = runApp(t, "solve", "--lengths", "1,1", "--angles", "0", "--target", "1,0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "flags.angles")

	_, _, err = runApp(t, "solve", "--config", filepath.Join(t.TempDir(), "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to read problem")
}

func TestSolveCommandConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "problem.json")
	test.That(t, os.WriteFile(path, []byte(`{
		"name": "reacher",
		"lengths": [1, 1],
		"target": {"x": 5, "y": 5},
		"iterations": 1000,
		"precision": 1e-9,
		"seed": 4
	}`), 0o600), test.ShouldBeNil)

	// The file's target is out of reach, the flag's is not.
	_, _, err := runApp(t, "solve", "--config", path)
	test.That(t, err, test.ShouldNotBeNil)

	plot := filepath.Join(dir, "chain.svg")
	out, _, err := runApp(t, "solve", "--config", path, "--target", "1,1", "--plot", plot)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "converged after")
	test.That(t, out, test.ShouldContainSubstring, "plot written to "+plot)
	info, err := os.Stat(plot)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.Size(), test.ShouldBeGreaterThan, 0)
}

type fakePrompter struct {
	ints     []int
	floats   []float64
	confirms []bool
}

func (p *fakePrompter) Int(string) (int, error) {
	if len(p.ints) == 0 {
		return 0, errors.New("no more answers")
	}
	v := p.ints[0]
	p.ints = p.ints[1:]
	return v, nil
}

func (p *fakePrompter) Float(string) (float64, error) {
	if len(p.floats) == 0 {
		return 0, errors.New("no more answers")
	}
	v := p.floats[0]
	p.floats = p.floats[1:]
	return v, nil
}

func (p *fakePrompter) Confirm(string) (bool, error) {
	if len(p.confirms) == 0 {
		return false, errors.New("no more answers")
	}
	v := p.confirms[0]
	p.confirms = p.confirms[1:]
	return v, nil
}

func TestPromptProblem(t *testing.T) {
	problem, err := promptProblem(&fakePrompter{
		ints:     []int{2, 50},
		floats:   []float64{1, 0.5, 1, 0.5, -3},
		confirms: []bool{false},
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, problem.Lengths, test.ShouldResemble, []float64{1, 0.5})
	test.That(t, problem.Angles, test.ShouldBeNil)
	test.That(t, *problem.Target, test.ShouldResemble, config.Point{X: 1, Y: 0.5})
	test.That(t, *problem.Iterations, test.ShouldEqual, 50)
	// Negative precision means no early stop.
	test.That(t, *problem.Precision, test.ShouldEqual, 0.)

	problem, err = promptProblem(&fakePrompter{
		ints:     []int{2, 10},
		floats:   []float64{1, 1, 0.3, -0.6, 1.5, 0, 1e-6},
		confirms: []bool{true},
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, problem.Angles, test.ShouldResemble, []float64{0.3, -0.6})
	test.That(t, *problem.Precision, test.ShouldEqual, 1e-6)
}

func TestPromptProblemErrors(t *testing.T) {
	_, err := promptProblem(&fakePrompter{ints: []int{0}})
	test.That(t, err, test.ShouldBeError, errors.New("the arm needs at least one segment"))

	_, err = promptProblem(&fakePrompter{ints: []int{1}})
	test.That(t, err, test.ShouldBeError, errors.New("no more answers"))

	_, err = promptProblem(&fakePrompter{
		ints:     []int{1, 10},
		floats:   []float64{-1, 0, 0, 0},
		confirms: []bool{false},
	})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "prompt.lengths.0")
}

func TestPromptCommand(t *testing.T) {
	prev := newPrompter
	t.Cleanup(func() { newPrompter = prev })
	newPrompter = func(*cli.Context) Prompter {
		return &fakePrompter{
			ints:     []int{2, 1000},
			floats:   []float64{1, 1, 1.5, 0, 1e-9},
			confirms: []bool{false},
		}
	}

	out, _, err := runApp(t, "prompt", "--seed", "5")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "converged after")

	newPrompter = func(*cli.Context) Prompter {
		return &fakePrompter{
			ints:     []int{1, 10},
			floats:   []float64{1, 2, 0, 0},
			confirms: []bool{false},
		}
	}
	_, _, err = runApp(t, "prompt")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "out of reach")
}

func TestSchemaCommand(t *testing.T) {
	out, _, err := runApp(t, "schema")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, `"lengths"`)
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fabrik.log")
	_, _, err := runApp(t, "--debug", "--log-file", path,
		"solve", "--lengths", "1,1", "--target", "1,1", "--iterations", "5", "--seed", "1")
	test.That(t, err, test.ShouldBeNil)
	contents, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(contents), test.ShouldContainSubstring, "starting relaxation")
}

func TestWarningf(t *testing.T) {
	var out bytes.Buffer
	warningf(&out, "%d segment(s) collapsed", 2)
	test.That(t, out.String(), test.ShouldContainSubstring, "Warning: ")
	test.That(t, out.String(), test.ShouldEndWith, "2 segment(s) collapsed\n")
}

func TestLogLevel(t *testing.T) {
	_, _, err := runApp(t, "--log-level", "loud", "solve", "--lengths", "1", "--target", "1,0")
	test.That(t, err, test.ShouldBeError, errors.New(`unknown log level: "loud"`))

	_, logs, err := runApp(t, "--log-level", "DEBUG", "solve", "--lengths", "1", "--target", "1,0", "--iterations", "1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logs, test.ShouldContainSubstring, "fabrik.ik")
}
