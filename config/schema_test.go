package config

import (
	"encoding/json"
	"testing"

	"go.viam.com/test"
)

func TestSchemaJSON(t *testing.T) {
	raw, err := SchemaJSON()
	test.That(t, err, test.ShouldBeNil)

	var schema map[string]interface{}
	test.That(t, json.Unmarshal(raw, &schema), test.ShouldBeNil)
	for _, field := range []string{"lengths", "angles", "target", "iterations", "precision", "seed", "noise"} {
		test.That(t, string(raw), test.ShouldContainSubstring, `"`+field+`"`)
	}
	test.That(t, string(raw), test.ShouldNotContainSubstring, "ConfigFilePath")
}
