package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	// Prompt 1: Convert pasted keyword data to CSV
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "keywords_to_csv",
		Description: "RECOMMENDED: Turn pasted keyword research data into a downloadable CSV. Start here - walks through convert, fix and download.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "data",
				Description: "JSON array of {keyword, search_volume} objects to convert",
				Required:    false,
			},
			{
				Name:        "file_name",
				Description: "File name without extension for the download",
				Required:    false,
			},
		},
	}, HandleKeywordsToCSV(cfg))

	// Prompt 2: Repair rejected input
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "keywords_fix_input",
		Description: "Explain a keywords_convert error and how to repair the input, by error kind.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "error_kind",
				Description: "Error kind reported by keywords_convert (empty_input, syntax_error, structural_error, element_type_error, field_type_error)",
				Required:    false,
			},
		},
	}, HandleFixInput(cfg))
}
