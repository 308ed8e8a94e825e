package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/keywordcsv-mcp/internal/convert"
	"github.com/usestring/keywordcsv-mcp/pkg/keywords"
	"github.com/usestring/keywordcsv-mcp/pkg/types"
)

// ConvertInput is the input for keywords_convert.
type ConvertInput struct {
	Input    string `json:"input" jsonschema:"JSON array of {keyword: string, search_volume: number} objects"`
	FileName string `json:"file_name,omitempty" jsonschema:"File name without extension used by keywords_download (default: keywords)"`
	Filter   string `json:"filter,omitempty" jsonschema:"Optional jq expression applied to the parsed input before validation, e.g. map(select(.search_volume >= 1000))"`
}

// ConvertOutput is the output for keywords_convert.
type ConvertOutput struct {
	OK           bool             `json:"ok"`
	ConversionID string           `json:"conversion_id,omitempty"`
	FileName     string           `json:"file_name,omitempty"`
	CSV          string           `json:"csv"`
	RowCount     int              `json:"row_count"`
	Summary      *types.Summary   `json:"summary,omitempty"`
	Error        *ConversionError `json:"error,omitempty"`
	Hint         string           `json:"hint,omitempty"`
}

// ConversionError describes why the input was rejected.
type ConversionError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Index   *int   `json:"index,omitempty"`
	Field   string `json:"field,omitempty"`
	Preview string `json:"preview,omitempty"`
}

// ToolConvert validates keyword JSON and renders it as CSV.
func ToolConvert(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ConvertInput) (*sdkmcp.CallToolResult, ConvertOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ConvertInput) (*sdkmcp.CallToolResult, ConvertOutput, error) {
		res, err := d.Convert.Convert(convert.Request{
			Input:    input.Input,
			FileName: input.FileName,
			Filter:   input.Filter,
		})
		if err != nil {
			return nil, ConvertOutput{}, WrapServiceError(err)
		}

		if res.Failure != nil {
			output := ConvertOutput{
				Error: toConversionError(res.Failure, res.Preview),
				Hint:  "Fix the input and call keywords_convert again; keywords_lint lists every problem at once.",
			}
			result, err := MakeJSONToolResult(output)
			if err != nil {
				return nil, ConvertOutput{}, err
			}
			result.IsError = true
			return result, output, nil
		}

		conv := res.Conversion
		output := ConvertOutput{
			OK:           true,
			ConversionID: conv.ID,
			FileName:     conv.FileName,
			CSV:          conv.CSV,
			RowCount:     conv.Summary.RowCount,
			Summary:      &conv.Summary,
		}
		if conv.CSV == "" {
			output.Hint = "The input is an empty array, so the CSV is empty and there is nothing to download."
		} else {
			output.Hint = fmt.Sprintf("Call keywords_download with conversion_id %q to save %s.", conv.ID, conv.FileName)
		}

		return nil, output, nil
	}
}

func toConversionError(vErr *keywords.ValidationError, preview string) *ConversionError {
	out := &ConversionError{
		Kind:    string(vErr.Kind),
		Message: vErr.Detail,
		Field:   vErr.Field,
		Preview: preview,
	}
	if vErr.HasIndex() {
		idx := vErr.Index
		out.Index = &idx
	}
	return out
}
