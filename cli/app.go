// Package cli contains the fabrik command line: solving a problem given by flags or a problem file,
// or asked for interactively.
package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	flagDebug      = "debug"
	flagLogFile    = "log-file"
	flagLogLevel   = "log-level"
	flagConfig     = "config"
	flagLengths    = "lengths"
	flagAngles     = "angles"
	flagTarget     = "target"
	flagIterations = "iterations"
	flagPrecision  = "precision"
	flagSeed       = "seed"
	flagNoise      = "noise"
	flagPlot       = "plot"
	flagAccessible = "accessible"
)

// Flags shared by every command that runs a solve.
func solverFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        flagSeed,
			Usage:       "seed for the jitter of the starting pose",
			DefaultText: "current time",
		},
		&cli.Float64Flag{
			Name:        flagNoise,
			Usage:       "bound of the jitter added to the starting pose, 0 to disable",
			DefaultText: "1e-4",
		},
		&cli.StringFlag{
			Name:      flagPlot,
			Usage:     "render the starting and final chain to `FILE` (.png, .svg, .pdf)",
			TakesFile: true,
		},
	}
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "fabrik",
		Usage:           "move the end of a planar arm onto a target",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Usage: "lowest level logged: debug, info, warn or error",
				Value: "info",
			},
			&cli.StringFlag{
				Name:      flagLogFile,
				Usage:     "also write logs to `FILE`, rotated as it grows",
				TakesFile: true,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "solve",
				Usage: "solve a problem given by flags or a problem file",
				Description: `Flags override the values read from --config.

Example:
fabrik solve --lengths 1,1 --target 1.5,0 --iterations 1000 --precision 1e-9`,
				UsageText: "fabrik solve [--config FILE] --lengths L0,L1,... --target X,Y [other options]",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:      flagConfig,
						Aliases:   []string{"c"},
						Usage:     "load the problem from `FILE`",
						TakesFile: true,
					},
					&cli.Float64SliceFlag{
						Name:  flagLengths,
						Usage: "segment lengths, base first",
					},
					&cli.Float64SliceFlag{
						Name:  flagAngles,
						Usage: "joint angles in radians to start from, each relative to the previous segment",
					},
					&cli.Float64SliceFlag{
						Name:  flagTarget,
						Usage: "target position as x,y",
					},
					&cli.IntFlag{
						Name:        flagIterations,
						Usage:       "number of relaxation passes to run at most",
						DefaultText: "100",
					},
					&cli.Float64Flag{
						Name:        flagPrecision,
						Usage:       "stop once no segment changes by this much, 0 to run every pass",
						DefaultText: "0",
					},
				}, solverFlags()...),
				Action: SolveAction,
			},
			{
				Name:  "prompt",
				Usage: "describe the problem by answering questions",
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:        flagAccessible,
						Usage:       "ask plain questions instead of drawing forms, for screen readers",
						DefaultText: "true when stdin is not a terminal",
					},
				}, solverFlags()...),
				Action: PromptAction,
			},
			{
				Name:   "schema",
				Usage:  "print the JSON schema of a problem file",
				Action: SchemaAction,
			},
		},
	}
}

// printf prints a message with no decoration.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// warningf prints a message prefixed by a bold yellow "Warning: ".
func warningf(w io.Writer, format string, a ...interface{}) {
	if _, err := color.New(color.Bold, color.FgYellow).Fprint(w, "Warning: "); err != nil {
		log.Fatal(err)
	}
	printf(w, format, a...)
}
