package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: keywords_convert
	AddTool(srv, &sdkmcp.Tool{
		Name:        "keywords_convert",
		Description: "Validate a JSON array of {keyword, search_volume} objects and convert it to CSV with the header kata_pencarian,jumlah_pencarian. Returns ok, conversion_id, csv, row_count and a summary (duplicate and zero-volume rows). On failure returns ok=false and error{kind, message, index, field, preview} for the first problem found. Use filter (jq) to reshape or narrow the input first. Pass conversion_id to keywords_download to save the file.",
	}, ToolConvert(d))

	// Tool 2: keywords_download
	AddTool(srv, &sdkmcp.Tool{
		Name:        "keywords_download",
		Description: "Save a converted CSV as {file_name}.csv (text/csv, UTF-8). Defaults to the latest successful keywords_convert result. Fails with NOTHING_TO_EXPORT when the CSV is empty.",
	}, ToolDownload(d))

	// Tool 3: keywords_lint
	AddTool(srv, &sdkmcp.Tool{
		Name:        "keywords_lint",
		Description: "Check keyword JSON against the schema and list every violation with its JSON pointer path (e.g. /3/search_volume). Use this when keywords_convert reports an error and the input may contain several problems.",
	}, ToolLint(d))

	// Tool 4: keywords_schema
	AddTool(srv, &sdkmcp.Tool{
		Name:        "keywords_schema",
		Description: "Return the JSON Schema of the expected input, a sample document and the CSV header.",
	}, ToolSchema(d))

	// Tool 5: keywords_import
	AddTool(srv, &sdkmcp.Tool{
		Name:        "keywords_import",
		Description: "Reshape a keyword table exported by another tool (CSV, TSV, HTML table, XML, YAML, or JSON with other field names) into the JSON input keywords_convert expects. Columns are matched by header (keyword/kata_pencarian/term, search_volume/jumlah_pencarian/volume) or named with keyword_field and volume_field. Volume text like \"12,500\" becomes a number; other text is kept so keywords_convert reports it.",
	}, ToolImport(d))
}
