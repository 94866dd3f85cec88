package tools

import (
	"context"
	"sort"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ValidateInput is the input for schemaprobe_validate.
type ValidateInput struct {
	Schema  any    `json:"schema" jsonschema:"JSON Schema to validate against. Required. Accepts the schemas produced by schemaprobe_infer_schema."`
	Samples []any  `json:"samples" jsonschema:"JSON sample values to validate. Required."`
	Path    string `json:"path,omitempty" jsonschema:"Optional jq expression applied to each sample before validation."`
}

// SampleValidation is the validation result for a single sample.
type SampleValidation struct {
	Index  int      `json:"index"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitzero"`
}

// CommonError is a validation error aggregated across samples.
type CommonError struct {
	Error     string `json:"error"`
	Frequency int    `json:"frequency"`
}

// ValidateSummary aggregates validation outcomes across all samples.
type ValidateSummary struct {
	TotalSamples  int  `json:"total_samples"`
	MatchingCount int  `json:"matching_count"`
	FailedCount   int  `json:"failed_count"`
	AllMatch      bool `json:"all_match"`
}

// ValidateOutput is the output for schemaprobe_validate.
type ValidateOutput struct {
	Summary      ValidateSummary    `json:"summary"`
	Results      []SampleValidation `json:"results,omitzero"`
	CommonErrors []CommonError      `json:"common_errors,omitzero"`
}

// ToolValidate checks samples against a JSON Schema. Compiled schemas are
// cached, so validating against the same schema repeatedly is cheap.
func ToolValidate(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateInput) (*sdkmcp.CallToolResult, ValidateOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateInput) (*sdkmcp.CallToolResult, ValidateOutput, error) {
		if input.Schema == nil {
			return nil, ValidateOutput{}, ErrInvalidInput("schema is required")
		}
		if len(input.Samples) == 0 {
			return nil, ValidateOutput{}, ErrInvalidInput("samples is required and must contain at least one value")
		}

		validator, err := d.Validators.Get(input.Schema)
		if err != nil {
			return nil, ValidateOutput{}, ErrInvalidInput("schema did not compile: " + err.Error())
		}

		samples, err := d.collectRaw(d.capSamples(input.Samples), input.Path)
		if err != nil {
			return nil, ValidateOutput{}, err
		}

		results := make([]SampleValidation, 0, len(samples))
		errorCounts := make(map[string]int)
		matching := 0

		for i, sample := range samples {
			res := validator.ValidateValue(sample)
			if res.Valid {
				matching++
			}
			for _, e := range res.Errors {
				errorCounts[e]++
			}
			results = append(results, SampleValidation{
				Index:  i,
				Valid:  res.Valid,
				Errors: res.Errors,
			})
		}

		common := make([]CommonError, 0, len(errorCounts))
		for msg, n := range errorCounts {
			common = append(common, CommonError{Error: msg, Frequency: n})
		}
		sort.Slice(common, func(a, b int) bool {
			if common[a].Frequency != common[b].Frequency {
				return common[a].Frequency > common[b].Frequency
			}
			return common[a].Error < common[b].Error
		})

		return nil, ValidateOutput{
			Summary: ValidateSummary{
				TotalSamples:  len(samples),
				MatchingCount: matching,
				FailedCount:   len(samples) - matching,
				AllMatch:      matching == len(samples),
			},
			Results:      results,
			CommonErrors: common,
		}, nil
	}
}
