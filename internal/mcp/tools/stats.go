package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fwerner/schemaprobe/pkg/inferschema"
)

// FieldStatsInput is the input for schemaprobe_field_stats.
type FieldStatsInput struct {
	Samples  []any  `json:"samples" jsonschema:"JSON sample values to analyze. Required."`
	Path     string `json:"path,omitempty" jsonschema:"Optional jq expression applied to each sample before analysis."`
	MaxDepth int    `json:"max_depth,omitempty" jsonschema:"Max nesting depth to walk (default: 5). Deeper fields are reported as truncated."`
}

// FieldStatsOutput is the output for schemaprobe_field_stats.
type FieldStatsOutput struct {
	Stats       []inferschema.FieldStat `json:"stats,omitzero"`
	SampleCount int                     `json:"sample_count"`
}

// ToolFieldStats computes per-field statistics across samples: frequency,
// required/nullable status, distinct counts, example values, and detected
// string formats (uuid, iso8601, url, email) or enum candidates.
func ToolFieldStats(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input FieldStatsInput) (*sdkmcp.CallToolResult, FieldStatsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input FieldStatsInput) (*sdkmcp.CallToolResult, FieldStatsOutput, error) {
		if len(input.Samples) == 0 {
			return nil, FieldStatsOutput{}, ErrInvalidInput("samples is required and must contain at least one value")
		}

		maxDepth := input.MaxDepth
		if maxDepth <= 0 {
			maxDepth = d.Config.StatsMaxDepth
		}

		values, err := d.collectValues(d.capSamples(input.Samples), input.Path)
		if err != nil {
			return nil, FieldStatsOutput{}, err
		}

		res, err := inferschema.InferSamples(ctx, values, nil, d.Config.InferWorkers)
		if err != nil {
			return nil, FieldStatsOutput{}, ErrInternal("schema inference failed", err)
		}
		if res == nil {
			return nil, FieldStatsOutput{}, ErrInvalidInput("no values available for analysis")
		}

		stats := inferschema.ComputeFieldStats(res.Fragment, values, maxDepth)
		if stats == nil {
			stats = []inferschema.FieldStat{}
		}

		return nil, FieldStatsOutput{
			Stats:       stats,
			SampleCount: len(values),
		}, nil
	}
}
