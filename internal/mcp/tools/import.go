package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/keywordcsv-mcp/pkg/contenttype"
	"github.com/usestring/keywordcsv-mcp/pkg/extract"
)

// ImportInput is the input for keywords_import.
type ImportInput struct {
	Content      string `json:"content" jsonschema:"Keyword table to import: CSV, TSV, HTML, XML, YAML or JSON"`
	Format       string `json:"format,omitempty" jsonschema:"Input format: json, csv, tsv, html, xml or yaml (default: detected)"`
	ContentType  string `json:"content_type,omitempty" jsonschema:"Content-Type of the content, used for detection when format is omitted"`
	RowSelector  string `json:"row_selector,omitempty" jsonschema:"Rows to read: CSS selector or XPath for HTML (default: tr), XPath for XML (default: /*/*), jq for JSON/YAML (e.g. .data)"`
	KeywordField string `json:"keyword_field,omitempty" jsonschema:"Source column holding the keyword (default: first of keyword, kata_pencarian, term, query...)"`
	VolumeField  string `json:"volume_field,omitempty" jsonschema:"Source column holding the search volume (default: first of search_volume, jumlah_pencarian, volume...)"`
}

// ImportOutput is the output for keywords_import.
type ImportOutput struct {
	Format        string   `json:"format"`
	Input         string   `json:"input"`
	RowCount      int      `json:"row_count"`
	Columns       []string `json:"columns,omitzero"`
	KeywordColumn string   `json:"keyword_column"`
	VolumeColumn  string   `json:"volume_column"`
	Skipped       int      `json:"skipped,omitempty"`
	Hint          string   `json:"hint"`
}

// ToolImport reshapes keyword tables from other tools into keywords_convert input.
func ToolImport(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ImportInput) (*sdkmcp.CallToolResult, ImportOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ImportInput) (*sdkmcp.CallToolResult, ImportOutput, error) {
		if d.Config.MaxInputBytes > 0 && len(input.Content) > d.Config.MaxInputBytes {
			return nil, ImportOutput{}, ErrInvalidInput("content exceeds MAX_INPUT_BYTES")
		}

		opts := extract.Options{
			ContentType:  input.ContentType,
			RowSelector:  input.RowSelector,
			KeywordField: input.KeywordField,
			VolumeField:  input.VolumeField,
		}
		if input.Format != "" {
			format, ok := contenttype.Parse(input.Format)
			if !ok {
				names := make([]string, len(contenttype.Categories))
				for i, c := range contenttype.Categories {
					names[i] = string(c)
				}
				return nil, ImportOutput{}, ErrInvalidInput(fmt.Sprintf("unknown format %q (valid: %s)", input.Format, strings.Join(names, ", ")))
			}
			opts.Format = format
		}

		res, err := d.Extract.Extract([]byte(input.Content), opts)
		if err != nil {
			slog.Info("import rejected", slog.String("error", err.Error()))
			return nil, ImportOutput{}, &CodedError{Code: ErrCodeInvalidInput, Message: "could not read keyword rows", Cause: err}
		}

		doc, err := res.JSON()
		if err != nil {
			return nil, ImportOutput{}, err
		}

		return nil, ImportOutput{
			Format:        string(res.Format),
			Input:         doc,
			RowCount:      len(res.Items),
			Columns:       res.Columns,
			KeywordColumn: res.KeywordColumn,
			VolumeColumn:  res.VolumeColumn,
			Skipped:       res.Skipped,
			Hint:          "Pass input to keywords_convert to validate it and build the CSV.",
		}, nil
	}
}
