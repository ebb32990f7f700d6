package recording

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema is the JSON Schema every JSON recording must satisfy.
const Schema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "coach recording",
  "type": "object",
  "required": ["version", "steps", "variables"],
  "properties": {
    "version": {"type": "integer", "minimum": 1},
    "id": {"type": "string"},
    "title": {"type": "string"},
    "steps": {"type": "integer", "minimum": 0},
    "metadata": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "unit": {"type": "string"},
          "label": {"type": "string"}
        },
        "additionalProperties": false
      }
    },
    "variables": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "values"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "values": {
            "type": "array",
            "items": {
              "oneOf": [
                {"type": "number"},
                {"type": "null"},
                {"enum": ["+Inf", "-Inf"]}
              ]
            }
          }
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

const schemaURL = "recording.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// SchemaErrors collects every violation found by ValidateJSON.
type SchemaErrors []error

// Error implements the error interface
func (se SchemaErrors) Error() string {
	if len(se) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, err := range se {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

func recordingSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, strings.NewReader(Schema)); err != nil {
			schemaErr = fmt.Errorf("invalid schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// ValidateJSON checks a JSON document against Schema.
func ValidateJSON(data []byte) error {
	schema, err := recordingSchema()
	if err != nil {
		return err
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%w: %w", ErrInvalidRecording, collectSchemaErrors(verr))
		}
		return err
	}

	return nil
}

func collectSchemaErrors(err *jsonschema.ValidationError) SchemaErrors {
	var out SchemaErrors

	if err.Message != "" && len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		out = append(out, fmt.Errorf("%s: %s", loc, err.Message))
	}
	for _, cause := range err.Causes {
		out = append(out, collectSchemaErrors(cause)...)
	}

	return out
}
