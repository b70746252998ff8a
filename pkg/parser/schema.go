// Package parser validates workcell documents against the format's JSON
// schema and maps validation and syntax errors back to source positions so
// the CLI can render compiler style diagnostics.
package parser

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/luca-della-vedova/rmf-workcell/pkg/logger"
)

var schemaLog = logger.New("parser:schema")

//go:embed schemas/workcell.schema.json
var workcellSchemaJSON string

var (
	schemaOnce     sync.Once
	workcellSchema *jsonschema.Schema
	schemaErr      error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(workcellSchemaJSON), &doc); err != nil {
			schemaErr = fmt.Errorf("failed to parse workcell schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("workcell.schema.json", doc); err != nil {
			schemaErr = fmt.Errorf("failed to add workcell schema: %w", err)
			return
		}
		workcellSchema, schemaErr = compiler.Compile("workcell.schema.json")
		if schemaErr == nil {
			schemaLog.Print("compiled workcell schema")
		}
	})
	return workcellSchema, schemaErr
}

// ValidateWorkcellJSON checks a JSON document against the workcell schema.
// The returned error is a *jsonschema.ValidationError when the document
// parses but violates the schema.
func ValidateWorkcellJSON(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return err
	}
	return schema.Validate(instance)
}

// ValidateWorkcellYAML checks a YAML document against the workcell schema
// by bridging it through JSON first.
func ValidateWorkcellYAML(data []byte) error {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return err
	}
	return ValidateWorkcellJSON(jsonData)
}
