package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// LintInput is the input for keywords_lint.
type LintInput struct {
	Input string `json:"input" jsonschema:"JSON text to check against the keyword schema"`
}

// LintOutput is the output for keywords_lint.
type LintOutput struct {
	Valid      bool     `json:"valid"`
	ErrorCount int      `json:"error_count"`
	Errors     []string `json:"errors,omitzero"`
}

// ToolLint checks keyword JSON against the schema and reports every problem.
func ToolLint(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input LintInput) (*sdkmcp.CallToolResult, LintOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input LintInput) (*sdkmcp.CallToolResult, LintOutput, error) {
		if d.Config.MaxInputBytes > 0 && len(input.Input) > d.Config.MaxInputBytes {
			return nil, LintOutput{}, ErrInvalidInput("input exceeds MAX_INPUT_BYTES")
		}

		result := d.Schema.Lint(input.Input)
		return nil, LintOutput{
			Valid:      result.Valid,
			ErrorCount: len(result.Errors),
			Errors:     result.Errors,
		}, nil
	}
}
