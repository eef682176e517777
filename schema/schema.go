// Package schema enforces structured output: the caller supplies a Go
// struct describing the shape a model response must take, and the dispatcher
// coerces the raw reply into it or reports a mismatch.
//
// The JSON schema derived from the struct serves two purposes: it is
// rendered into the prompt so the model knows the expected shape, and its
// required-field list is checked during coercion so a reply that decodes
// but omits mandatory fields still counts as a mismatch.
//
//	type Summary struct {
//	    Summary string   `json:"summary"`
//	    Points  []string `json:"points"`
//	}
//
//	var out Summary
//	err := schema.Coerce(rawResponse, &out)
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/puntorigen/junior/parser"
)

// Sentinel errors for coercion outcomes.
var (
	// ErrNoPayload indicates no JSON (or YAML) payload was found in the
	// response text.
	ErrNoPayload = errors.New("no structured payload in response")

	// ErrMismatch indicates the payload does not satisfy the schema.
	ErrMismatch = errors.New("response does not match output schema")
)

// Generate derives a JSON schema from the struct behind v.
// The schema is inlined (no $ref indirection) so it can be embedded in
// prompts and inspected for required fields.
func Generate(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, fmt.Errorf("generate schema: nil value")
	}
	reflector := jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	raw, err := json.Marshal(reflector.Reflect(v))
	if err != nil {
		return nil, fmt.Errorf("generate schema: %w", err)
	}
	return raw, nil
}

// Instructions renders the schema for v as a prompt block instructing the
// model to answer with a single matching JSON object. Providers without a
// native structured-output mode append this to the system prompt.
func Instructions(v any) (string, error) {
	raw, err := Generate(v)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Respond with a single JSON object that conforms to this JSON schema:\n")
	b.Write(raw)
	b.WriteString("\nDo not include any text outside the JSON object.")
	return b.String(), nil
}

// Coerce extracts the structured payload from a raw model response and
// decodes it into out, which must be a pointer to a struct. Fields the
// schema marks required must be present in the payload; extra fields are
// ignored. Returns ErrNoPayload or a wrapped ErrMismatch on failure.
func Coerce(response string, out any) error {
	payload, ok := parser.ExtractPayload(response)
	if !ok {
		return ErrNoPayload
	}
	return CoercePayload([]byte(payload), out)
}

// CoercePayload decodes an already-extracted JSON payload into out,
// validating required fields against out's generated schema.
func CoercePayload(payload []byte, out any) error {
	required, err := requiredFields(out)
	if err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrMismatch, err)
	}
	for _, name := range required {
		if _, present := fields[name]; !present {
			return fmt.Errorf("%w: missing required field %q", ErrMismatch, name)
		}
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMismatch, err)
	}
	return nil
}

// requiredFields extracts the top-level required list from the schema
// generated for v.
func requiredFields(v any) ([]string, error) {
	raw, err := Generate(v)
	if err != nil {
		return nil, err
	}

	var shape struct {
		Required []string `json:"required"`
	}
	if err := json.Unmarshal(raw, &shape); err != nil {
		return nil, fmt.Errorf("inspect schema: %w", err)
	}
	return shape.Required, nil
}
