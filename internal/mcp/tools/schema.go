package tools

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/keywordcsv-mcp/pkg/keywords"
	"github.com/usestring/keywordcsv-mcp/pkg/types"
)

// SchemaInput is the input for keywords_schema.
type SchemaInput struct{}

// SchemaOutput is the output for keywords_schema.
type SchemaOutput struct {
	Schema    any    `json:"schema"`
	Sample    string `json:"sample"`
	CSVHeader string `json:"csv_header"`
}

// ToolSchema returns the expected input schema with a sample document.
func ToolSchema(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SchemaInput) (*sdkmcp.CallToolResult, SchemaOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SchemaInput) (*sdkmcp.CallToolResult, SchemaOutput, error) {
		schemaDoc, err := types.ToAny(json.RawMessage(d.Schema.SchemaJSON()))
		if err != nil {
			return nil, SchemaOutput{}, fmt.Errorf("decoding schema: %w", err)
		}

		return nil, SchemaOutput{
			Schema:    schemaDoc,
			Sample:    keywords.SampleInput,
			CSVHeader: keywords.Header,
		}, nil
	}
}
