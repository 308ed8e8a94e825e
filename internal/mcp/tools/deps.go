package tools

import (
	"github.com/usestring/keywordcsv-mcp/internal/config"
	"github.com/usestring/keywordcsv-mcp/internal/convert"
	"github.com/usestring/keywordcsv-mcp/internal/schema"
	"github.com/usestring/keywordcsv-mcp/pkg/extract"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config  *config.Config
	Convert *convert.Service
	Schema  *schema.Validator
	Extract *extract.Engine
}
