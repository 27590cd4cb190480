package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a JSON Schema a response must satisfy. It is compiled once,
// when created.
type Schema struct {
	// Name is sent as the schema or tool name. Kebab-case.
	Name        string
	Description string
	Definition  map[string]any

	compiled *jsonschema.Schema
}

// NewSchema compiles def and returns a ready Schema.
func NewSchema(name, description string, def map[string]any) (*Schema, error) {
	// The compiler wants plain decoded JSON, not Go maps with typed slices.
	raw, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", name, err)
	}

	return &Schema{Name: name, Description: description, Definition: def, compiled: compiled}, nil
}

// MustSchema is NewSchema for package-level schemas; it panics on error.
func MustSchema(name, description string, def map[string]any) *Schema {
	s, err := NewSchema(name, description, def)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks raw against the schema.
func (s *Schema) Validate(raw json.RawMessage) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := s.compiled.Validate(doc); err != nil {
		return fmt.Errorf("schema %q: %w", s.Name, err)
	}
	return nil
}

// check validates content returned by provider, wrapping failures as
// ErrInvalidResponse.
func (s *Schema) check(provider string, content json.RawMessage) error {
	if s == nil {
		return nil
	}
	if err := s.Validate(content); err != nil {
		return invalidResponse(provider, err)
	}
	return nil
}
