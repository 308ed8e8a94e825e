// Package mcpsrv provides an extensible MCP server that converts keyword
// research JSON into CSV.
//
// The builtin tools validate a JSON array of {keyword, search_volume}
// objects, render it as CSV with the header kata_pencarian,jumlah_pencarian
// and save the result as a .csv file. Users can extend the server with custom
// tools, prompts, and resources using functional options.
//
// # Basic Usage
//
// Create a server with default configuration:
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Add custom tools using MCP SDK types directly, or use WithDepsTool to reach
// the conversion service:
//
//	import mcp "github.com/modelcontextprotocol/go-sdk/mcp"
//
//	type TopInput struct {
//	    N int `json:"n"`
//	}
//
//	type TopOutput struct {
//	    Keywords []string `json:"keywords,omitzero"`
//	}
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithDepsTool(&mcp.Tool{Name: "top_keywords"}, func(d *mcpsrv.Deps) func(context.Context, *mcp.CallToolRequest, TopInput) (*mcp.CallToolResult, TopOutput, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, in TopInput) (*mcp.CallToolResult, TopOutput, error) {
//	            conv, ok := d.Convert.Latest()
//	            ...
//	        }
//	    }),
//	)
//
// # Configuration
//
// Configure logging and where downloads go:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/keywordcsv-mcp.log"),
//	    mcpsrv.WithOutputDir("/srv/exports"),
//	)
package mcpsrv
