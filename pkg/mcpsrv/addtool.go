package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/keywordcsv-mcp/internal/mcp/tools"
)

// AddTool registers a tool with the server after checking that the zero value
// of Out validates against the output schema the SDK infers for it. Nil slices
// marshal as null while the schema says "array", so a bad output type panics
// here instead of failing on the first call.
//
// Use this instead of [sdkmcp.AddTool] to get the additional check.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}
