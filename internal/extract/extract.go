// Package extract selects sample values out of response envelopes with jq
// expressions, so callers can point the inference at the interesting array
// inside a wrapper object.
package extract

import (
	"fmt"

	"github.com/itchyny/gojq"
)

// Engine evaluates jq expressions against parsed JSON values.
type Engine struct{}

// NewEngine creates a new extraction engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Result contains the values produced by a jq expression.
type Result struct {
	Values []any    `json:"values"`
	Errors []string `json:"errors,omitempty"` // per-item evaluation errors
}

// Apply evaluates expression against input and collects the produced values.
// The input must come from generic JSON decoding (nil, bool, float64, string,
// []any, map[string]any). Null outputs are dropped; per-item evaluation
// errors are collected rather than aborting. maxResults caps the output
// (0 means no cap).
func (e *Engine) Apply(input any, expression string, maxResults int) (*Result, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	result := &Result{Values: make([]any, 0)}
	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if itemErr, isErr := v.(error); isErr {
			result.Errors = append(result.Errors, itemErr.Error())
			continue
		}
		if v == nil {
			continue
		}
		result.Values = append(result.Values, v)
		if maxResults > 0 && len(result.Values) >= maxResults {
			break
		}
	}
	return result, nil
}

// ValidateExpression parses an expression without evaluating it.
func (e *Engine) ValidateExpression(expression string) error {
	if _, err := gojq.Parse(expression); err != nil {
		return fmt.Errorf("invalid jq expression: %w", err)
	}
	return nil
}
