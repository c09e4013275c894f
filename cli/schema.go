package cli

import (
	"github.com/urfave/cli/v2"

	"go.viam.com/fabrik/config"
)

// SchemaAction prints the JSON schema of a problem file.
func SchemaAction(c *cli.Context) error {
	raw, err := config.SchemaJSON()
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", raw)
	return nil
}
