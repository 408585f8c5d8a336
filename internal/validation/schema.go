// Package validation checks generated payloads against JSON schemas.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("validation: schema does not compile")
	ErrSchemaValidation = errors.New("validation: payload does not match schema")
)

const schemaResource = "landing-schema.json"

// ValidationIssue is one failed constraint. Location is a JSON pointer into the
// payload.
type ValidationIssue struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

func (i ValidationIssue) String() string {
	location := "#" + strings.TrimPrefix(strings.TrimSpace(i.Location), "#")
	if i.Message == "" {
		return location
	}
	return location + ": " + i.Message
}

// PayloadError lists every issue found in one payload. It matches
// ErrSchemaValidation with errors.Is.
type PayloadError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadError) Is(target error) bool {
	return target == ErrSchemaValidation
}

func (e *PayloadError) Unwrap() error {
	return e.Cause
}

// Issues returns the issues carried by err. Errors that are not schema
// failures become a single location-less issue.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadError
	if errors.As(err, &payloadErr) {
		return payloadErr.Issues
	}
	var schemaErr *jsonschema.ValidationError
	if errors.As(err, &schemaErr) {
		return leafIssues(schemaErr, nil)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// Validator holds one compiled schema together with its JSON source.
type Validator struct {
	source   []byte
	compiled *jsonschema.Schema
}

func NewValidator(schema map[string]any) (*Validator, error) {
	if len(schema) == 0 {
		return nil, fmt.Errorf("%w: empty schema", ErrSchemaInvalid)
	}
	source, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaResource, bytes.NewReader(source)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	compiled, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return &Validator{source: source, compiled: compiled}, nil
}

func MustNewValidator(schema map[string]any) *Validator {
	v, err := NewValidator(schema)
	if err != nil {
		panic(err)
	}
	return v
}

// Schema decodes a fresh copy of the schema source.
func (v *Validator) Schema() map[string]any {
	var out map[string]any
	_ = json.Unmarshal(v.source, &out)
	return out
}

// Validate checks a value shaped like encoding/json output.
func (v *Validator) Validate(payload any) error {
	err := v.compiled.Validate(payload)
	if err == nil {
		return nil
	}
	return &PayloadError{Issues: Issues(err), Cause: err}
}

// ValidateJSON decodes raw as a JSON object and validates it. Numbers are kept
// as json.Number.
func (v *Validator) ValidateJSON(raw []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, &PayloadError{
			Issues: []ValidationIssue{{Message: "invalid JSON: " + err.Error()}},
			Cause:  err,
		}
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, &PayloadError{Issues: []ValidationIssue{{Message: "expected a JSON object"}}}
	}
	if err := v.Validate(obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func leafIssues(node *jsonschema.ValidationError, out []ValidationIssue) []ValidationIssue {
	if node == nil {
		return out
	}
	if len(node.Causes) == 0 {
		return append(out, ValidationIssue{
			Location: strings.TrimSpace(node.InstanceLocation),
			Message:  strings.TrimSpace(node.Message),
		})
	}
	for _, cause := range node.Causes {
		out = leafIssues(cause, out)
	}
	return out
}
