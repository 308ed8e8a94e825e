package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/keywordcsv-mcp/pkg/keywords"
)

// HandleKeywordsToCSV implements the convert-then-download workflow.
func HandleKeywordsToCSV(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		args := req.Params.Arguments

		data := ""
		fileName := cfg.DefaultFileName
		if args != nil {
			if v, ok := args["data"]; ok {
				data = strings.TrimSpace(v)
			}
			if v, ok := args["file_name"]; ok && strings.TrimSpace(v) != "" {
				fileName = v
			}
		}

		var sb strings.Builder

		sb.WriteString("# Keyword Data to CSV\n\n")
		sb.WriteString("Convert keyword research data into a CSV file with the columns `kata_pencarian` (keyword) and `jumlah_pencarian` (search volume).\n\n")

		sb.WriteString("## Expected Input\n\n")
		sb.WriteString("A JSON array where every item has a string `keyword` and a numeric `search_volume`:\n\n")
		sb.WriteString("```json\n")
		sb.WriteString(keywords.SampleInput)
		sb.WriteString("\n```\n\n")
		sb.WriteString("- Extra properties are ignored\n")
		sb.WriteString("- Quoted numbers such as `\"1500\"` are rejected, not coerced\n")
		sb.WriteString("- Order and duplicates are kept as given\n\n")

		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Convert** - `keywords_convert(input: <json>")
		if fileName != "" {
			fmt.Fprintf(&sb, ", file_name: %q", fileName)
		}
		sb.WriteString(")`\n")
		sb.WriteString("   - On success, show the user the `csv` and `summary` (duplicates and zero-volume rows are worth mentioning)\n")
		sb.WriteString("   - Use `filter` to reshape data first, e.g. `map({keyword: .term, search_volume: .volume})`\n\n")
		sb.WriteString("2. **Fix** - If `ok` is false, read `error.kind`, `error.index` and `error.preview`\n")
		sb.WriteString("   - Call `keywords_lint` to list every problem at once before asking the user to fix the data\n\n")
		sb.WriteString("3. **Download** - `keywords_download(conversion_id: <id>)`\n")
		fmt.Fprintf(&sb, "   - Saves `%s` under `%s`\n", keywords.FileName(fileName), cfg.OutputDir)
		sb.WriteString("   - An empty array converts to an empty CSV and cannot be downloaded\n")

		if data != "" {
			sb.WriteString("\n## Data\n\n")
			sb.WriteString("```json\n")
			sb.WriteString(data)
			sb.WriteString("\n```\n")
		}

		return &sdkmcp.GetPromptResult{
			Description: "Guide for converting keyword data to CSV",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
