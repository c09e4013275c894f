package config

import (
	"bytes"
	"encoding/json"
	"io"
	"sort"

	"github.com/a8m/envsubst"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// Read reads a problem from the given file, expanding environment variables first.
func Read(filePath string) (*Problem, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return FromReader(filePath, bytes.NewReader(buf))
}

// FromReader reads a problem from the given reader and specifies where, if applicable, the file the
// reader originated from. The problem is validated before it is returned.
func FromReader(originalPath string, r io.Reader) (*Problem, error) {
	dec := json.NewDecoder(r)
	// Keeps integer seeds exact.
	dec.UseNumber()
	var attributes map[string]interface{}
	if err := dec.Decode(&attributes); err != nil {
		return nil, errors.Wrap(err, "failed to decode problem from json")
	}

	problem := &Problem{}
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:  "json",
		Result:   problem,
		Metadata: &md,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrap(err, "failed to decode problem")
	}
	if len(md.Unused) != 0 {
		sort.Strings(md.Unused)
		return nil, errors.Errorf("unknown problem fields %v", md.Unused)
	}
	problem.ConfigFilePath = originalPath

	if err := problem.Validate("problem"); err != nil {
		return nil, err
	}
	return problem, nil
}
