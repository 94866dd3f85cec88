// Package validate wraps a standard JSON-Schema validator so inferred or
// hand-written schemas can be checked against sample values. The inference
// core itself never validates; this is the delegated collaborator.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Result contains the outcome of validating a single value.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Validator validates parsed JSON values against one compiled schema.
type Validator struct {
	schema *jsonschema.Schema
}

// Compile builds a validator from any JSON-marshalable schema form
// (a schema fragment, a document, or a raw map).
func Compile(schema any) (*Validator, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	return CompileBytes(raw)
}

// CompileBytes builds a validator from a serialized schema document.
func CompileBytes(raw []byte) (*Validator, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}

	return &Validator{schema: compiled}, nil
}

// ValidateValue validates an already-parsed value against the schema.
func (v *Validator) ValidateValue(value any) *Result {
	if v == nil || v.schema == nil {
		return &Result{Valid: false, Errors: []string{"schema not compiled"}}
	}

	err := v.schema.Validate(value)
	if err == nil {
		return &Result{Valid: true}
	}
	return &Result{Valid: false, Errors: extractValidationErrors(err)}
}

// ValidateBytes parses raw JSON and validates it.
func (v *Validator) ValidateBytes(data []byte) *Result {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return &Result{Valid: false, Errors: []string{fmt.Sprintf("invalid JSON: %s", err)}}
	}
	return v.ValidateValue(value)
}

// printer renders localized validation messages in English.
var printer = message.NewPrinter(language.English)

// extractValidationErrors flattens a validation error into deduplicated,
// per-path human-readable messages.
func extractValidationErrors(err error) []string {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []string{err.Error()}
	}

	errorsByPath := make(map[string][]string)
	collectErrors(validationErr, errorsByPath)

	var result []string
	for path, msgs := range errorsByPath {
		seen := make(map[string]bool)
		for _, msg := range msgs {
			if seen[msg] {
				continue
			}
			seen[msg] = true
			if path != "" {
				result = append(result, fmt.Sprintf("%s: %s", path, msg))
			} else {
				result = append(result, msg)
			}
		}
	}
	return result
}

// collectErrors gathers leaf errors, skipping schema-reference noise.
func collectErrors(err *jsonschema.ValidationError, errorsByPath map[string][]string) {
	instancePath := ""
	if len(err.InstanceLocation) > 0 {
		instancePath = "/" + strings.Join(err.InstanceLocation, "/")
	}

	if err.ErrorKind != nil && len(err.Causes) == 0 {
		msg := err.ErrorKind.LocalizedString(printer)
		if !strings.HasPrefix(msg, "$ref ") && !strings.HasPrefix(msg, "doesn't validate with") {
			errorsByPath[instancePath] = append(errorsByPath[instancePath], msg)
		}
	}

	for _, cause := range err.Causes {
		collectErrors(cause, errorsByPath)
	}
}
