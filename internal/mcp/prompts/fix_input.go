package prompts

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/keywordcsv-mcp/pkg/keywords"
)

var fixes = []struct {
	kind keywords.ErrorKind
	text string
}{
	{keywords.KindEmptyInput, "The input was blank. Ask the user to paste the keyword data."},
	{keywords.KindSyntax, "The input is not valid JSON. Look for trailing commas, single quotes, unquoted keys or a second value after the array."},
	{keywords.KindStructural, "The input parsed but is not an array. Wrap a single object in `[...]`, or use `filter` to pick the array out of a wrapper object (e.g. `.data`)."},
	{keywords.KindElementType, "An item of the array is null, a string, a number or another array. Remove it or replace it with a `{keyword, search_volume}` object."},
	{keywords.KindFieldType, "An item has a missing or mistyped field. `keyword` must be a string and `search_volume` a number (not a quoted number). A filter like `map(.search_volume |= tonumber)` can convert quoted numbers."},
}

// HandleFixInput explains validation failures by error kind.
func HandleFixInput(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		kind := ""
		if args := req.Params.Arguments; args != nil {
			kind = strings.TrimSpace(args["error_kind"])
		}

		var sb strings.Builder

		sb.WriteString("# Fix Rejected Keyword Input\n\n")
		sb.WriteString("`keywords_convert` stops at the first problem. `error.index` is the zero-based array position and `error.preview` shows the offending item.\n\n")

		sb.WriteString("## Error Kinds\n\n")
		matched := false
		for _, f := range fixes {
			if kind != "" && kind != string(f.kind) {
				continue
			}
			matched = true
			sb.WriteString("- **")
			sb.WriteString(string(f.kind))
			sb.WriteString("**: ")
			sb.WriteString(f.text)
			sb.WriteString("\n")
		}
		if !matched {
			sb.WriteString("- Unknown error kind `")
			sb.WriteString(kind)
			sb.WriteString("`. Call `keywords_schema` to see what the input should look like.\n")
		}

		sb.WriteString("\n## Tips\n\n")
		sb.WriteString("- Run `keywords_lint` to see every violation with its path (e.g. `/3/search_volume`)\n")
		sb.WriteString("- A failed conversion does not replace the last good one; `keywords_download` still saves it\n")

		return &sdkmcp.GetPromptResult{
			Description: "Guide for repairing keyword input",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
