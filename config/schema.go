package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// ProblemSchema describes the problem file format.
var ProblemSchema = jsonschema.Reflect(&Problem{})

// SchemaJSON returns ProblemSchema as indented JSON.
func SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(ProblemSchema, "", "  ")
}
