package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fwerner/schemaprobe/pkg/jsonval"
	"github.com/fwerner/schemaprobe/pkg/typestruct"
)

// SummarizeTypesInput is the input for schemaprobe_summarize_types.
type SummarizeTypesInput struct {
	Sample any    `json:"sample" jsonschema:"JSON value to summarize. Required."`
	Path   string `json:"path,omitempty" jsonschema:"Optional jq expression applied before summarizing. Multiple extracted values are summarized as an array."`
}

// SummarizeTypesOutput is the output for schemaprobe_summarize_types.
type SummarizeTypesOutput struct {
	TypeStructure any `json:"type_structure"`
}

// ToolSummarizeTypes reduces a JSON value to its type skeleton: objects keep
// their keys, arrays collapse to their first element's structure, scalars
// become type names. Cheaper than infer_schema when only the shape matters.
func ToolSummarizeTypes(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SummarizeTypesInput) (*sdkmcp.CallToolResult, SummarizeTypesOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SummarizeTypesInput) (*sdkmcp.CallToolResult, SummarizeTypesOutput, error) {
		if input.Sample == nil {
			return nil, SummarizeTypesOutput{}, ErrInvalidInput("sample is required")
		}

		values, err := d.collectValues([]any{input.Sample}, input.Path)
		if err != nil {
			return nil, SummarizeTypesOutput{}, err
		}

		var node typestruct.Node
		if len(values) == 1 {
			node = typestruct.Summarize(values[0])
		} else {
			node = typestruct.Summarize(jsonval.Array(values...))
		}

		structure, err := ToAny(node)
		if err != nil {
			return nil, SummarizeTypesOutput{}, ErrInternal("summary serialization failed", err)
		}

		return nil, SummarizeTypesOutput{TypeStructure: structure}, nil
	}
}
