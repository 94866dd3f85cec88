package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fwerner/schemaprobe/pkg/inferschema"
	"github.com/fwerner/schemaprobe/pkg/schemadoc"
)

// Schema dialects accepted by schemaprobe_infer_schema.
const (
	DialectDraft07   = "draft07"
	DialectDraft2020 = "draft2020"
)

// InferSchemaInput is the input for schemaprobe_infer_schema.
type InferSchemaInput struct {
	Samples      []any             `json:"samples" jsonschema:"JSON sample values to infer a schema from. Required. Objects with the same shape are merged into one schema."`
	Path         string            `json:"path,omitempty" jsonschema:"Optional jq expression applied to each sample before inference (e.g. '.data.items[]'). Extracted values are pooled across samples."`
	Descriptions map[string]string `json:"descriptions,omitempty" jsonschema:"Optional property descriptions keyed by property name. Overrides the generated 'Description for <key>' defaults."`
	Dialect      string            `json:"dialect,omitempty" jsonschema:"Output dialect: draft07 (default, adds a $schema marker) or draft2020"`
}

// InferSchemaOutput is the output for schemaprobe_infer_schema.
type InferSchemaOutput struct {
	Schema      any    `json:"schema"`
	SampleCount int    `json:"sample_count"`
	AllMatch    bool   `json:"all_match"`
	Hint        string `json:"hint,omitempty"`
}

// ToolInferSchema infers a merged JSON schema from one or more samples.
// Object samples are inferred independently and merged; properties missing
// from some samples come back optional, conflicting types become anyOf.
func ToolInferSchema(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, InferSchemaOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, InferSchemaOutput, error) {
		if len(input.Samples) == 0 {
			return nil, InferSchemaOutput{}, ErrInvalidInput("samples is required and must contain at least one value")
		}

		dialect := input.Dialect
		if dialect == "" {
			dialect = DialectDraft07
		}
		if dialect != DialectDraft07 && dialect != DialectDraft2020 {
			return nil, InferSchemaOutput{}, ErrInvalidInput("dialect must be 'draft07' or 'draft2020'")
		}

		values, err := d.collectValues(d.capSamples(input.Samples), input.Path)
		if err != nil {
			return nil, InferSchemaOutput{}, err
		}

		desc := inferschema.Descriptions(input.Descriptions)
		res, err := inferschema.InferSamples(ctx, values, desc, d.Config.InferWorkers)
		if err != nil {
			return nil, InferSchemaOutput{}, ErrInternal("schema inference failed", err)
		}
		if res == nil {
			return nil, InferSchemaOutput{}, ErrInvalidInput("no values available for inference")
		}

		var schema any
		switch dialect {
		case DialectDraft07:
			schema, err = ToAny(schemadoc.New(res.Fragment))
		case DialectDraft2020:
			schema, err = ToAny(inferschema.ToDraft2020(res.Fragment))
		}
		if err != nil {
			return nil, InferSchemaOutput{}, ErrInternal("schema serialization failed", err)
		}

		hint := "Use schemaprobe_field_stats for per-field frequency and format analysis, or schemaprobe_validate to check further samples against this schema."
		if !res.AllMatch {
			hint = fmt.Sprintf("Samples did not all produce identical schemas; the result merges %d variants. Optional properties carry an '(optional/nullable)' marker in their description.", res.SampleCount)
		}

		return nil, InferSchemaOutput{
			Schema:      schema,
			SampleCount: res.SampleCount,
			AllMatch:    res.AllMatch,
			Hint:        hint,
		}, nil
	}
}
