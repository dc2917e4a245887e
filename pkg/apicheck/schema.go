package apicheck

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Response schemas, compiled once on first use.
const (
	schemaGeneration = "generation.schema.json"
	schemaPrompts    = "prompts.schema.json"
)

// schemaBaseURL gives the embedded schemas stable IDs independent of the
// working directory.
const schemaBaseURL = "https://bananacheck.local/schemas/"

var (
	schemas     map[string]*jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
)

func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		names := []string{schemaGeneration, schemaPrompts}

		for _, name := range names {
			data, err := schemaFS.ReadFile("schemas/" + name)
			if err != nil {
				compileErr = fmt.Errorf("read schema %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("unmarshal schema %s: %w", name, err)
				return
			}
			if err := compiler.AddResource(schemaBaseURL+name, doc); err != nil {
				compileErr = fmt.Errorf("add schema resource %s: %w", name, err)
				return
			}
		}

		compiled := make(map[string]*jsonschema.Schema, len(names))
		for _, name := range names {
			sch, err := compiler.Compile(schemaBaseURL + name)
			if err != nil {
				compileErr = fmt.Errorf("compile schema %s: %w", name, err)
				return
			}
			compiled[name] = sch
		}
		schemas = compiled
	})
	return compileErr
}

// validateShape checks that body is JSON matching the named schema.
// The returned error echoes the raw body for diagnostics.
func validateShape(name string, body []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("response is not valid JSON: %v\nresponse: %s", err, snippet(body))
	}
	if err := schemas[name].Validate(inst); err != nil {
		return fmt.Errorf("unexpected response shape: %v\nresponse: %s", err, snippet(body))
	}
	return nil
}
