package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: schemaprobe_infer_schema
	AddTool(srv, &sdkmcp.Tool{
		Name:        "schemaprobe_infer_schema",
		Description: "Infer a JSON Schema from sample values. Multiple object samples are merged: properties present in every sample are required, missing ones become optional, and conflicting types become anyOf unions. Returns the schema plus sample_count and all_match. Pass descriptions to label properties, path (jq) to select sub-values, and dialect to choose draft07 (default) or draft2020 output.",
	}, ToolInferSchema(d))

	// Tool 2: schemaprobe_summarize_types
	AddTool(srv, &sdkmcp.Tool{
		Name:        "schemaprobe_summarize_types",
		Description: "Summarize a JSON value's type structure without building a full schema. Objects keep their keys, arrays collapse to the first element's structure (empty arrays report 'empty_list'), scalars become type names. Use infer_schema instead when you need a validatable schema.",
	}, ToolSummarizeTypes(d))

	// Tool 3: schemaprobe_field_stats
	AddTool(srv, &sdkmcp.Tool{
		Name:        "schemaprobe_field_stats",
		Description: "Compute per-field statistics across JSON samples: frequency, required/nullable flags, distinct value counts, example values, detected string formats (uuid, iso8601, url, email), and enum candidates. Use after infer_schema to understand how fields vary across samples.",
	}, ToolFieldStats(d))

	// Tool 4: schemaprobe_validate
	AddTool(srv, &sdkmcp.Tool{
		Name:        "schemaprobe_validate",
		Description: "Validate JSON samples against a JSON Schema. Returns a per-sample verdict with error messages plus a summary and the most common errors across samples. Accepts schemas produced by infer_schema; compiled schemas are cached.",
	}, ToolValidate(d))
}
