// Package tools contains MCP tool implementations for schemaprobe.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/fwerner/schemaprobe/pkg/jsonval"
)

// ToAny converts a typed value to a plain any (map[string]any, []any, scalars)
// via a JSON round-trip. Tool outputs declared as any must hold plain values so
// the SDK's schema inference stays honest.
func ToAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// collectRaw resolves the effective sample set: when path is empty the samples
// pass through unchanged, otherwise the expression is applied to each sample
// and the extracted values are pooled in sample order.
func (d *Deps) collectRaw(samples []any, path string) ([]any, error) {
	if path == "" {
		return samples, nil
	}

	if err := d.Extract.ValidateExpression(path); err != nil {
		return nil, ErrInvalidInput(fmt.Sprintf("invalid path expression: %v", err))
	}

	var pooled []any
	for i, sample := range samples {
		res, err := d.Extract.Apply(sample, path, d.Config.ExtractMaxResults)
		if err != nil {
			return nil, ErrInvalidInput(fmt.Sprintf("path extraction failed on sample %d: %v", i, err))
		}
		pooled = append(pooled, res.Values...)
	}

	if len(pooled) == 0 {
		return nil, ErrInvalidInput("path expression matched no values in any sample")
	}
	return pooled, nil
}

// collectValues resolves samples like collectRaw and converts each to a
// decoded jsonval.Value.
func (d *Deps) collectValues(samples []any, path string) ([]jsonval.Value, error) {
	raw, err := d.collectRaw(samples, path)
	if err != nil {
		return nil, err
	}

	values := make([]jsonval.Value, 0, len(raw))
	for i, r := range raw {
		v := jsonval.FromAny(r)
		if !v.IsValid() {
			return nil, ErrInvalidInput(fmt.Sprintf("sample %d is not a JSON value", i))
		}
		values = append(values, v)
	}
	return values, nil
}

// capSamples truncates the sample list to the configured maximum.
func (d *Deps) capSamples(samples []any) []any {
	if d.Config.MaxSamples > 0 && len(samples) > d.Config.MaxSamples {
		return samples[:d.Config.MaxSamples]
	}
	return samples
}
