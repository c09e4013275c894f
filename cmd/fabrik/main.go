// Package main is the fabrik command itself.
package main

import (
	"io"
	"os"

	"go.viam.com/fabrik/cli"
	"go.viam.com/fabrik/logging"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes the app and returns the exit code. Failures are logged to errOut so they never land
// in redirected output.
func run(args []string, out, errOut io.Writer) int {
	app := cli.NewApp(out, errOut)
	if err := app.Run(args); err != nil {
		logger := logging.NewBlankLogger("fabrik")
		logger.AddAppender(logging.NewWriterAppender(errOut))
		logger.Error(err)
		return 1
	}
	return 0
}
