package mcpsrv

import (
	"github.com/usestring/keywordcsv-mcp/internal/cache"
	"github.com/usestring/keywordcsv-mcp/internal/config"
	"github.com/usestring/keywordcsv-mcp/internal/convert"
	"github.com/usestring/keywordcsv-mcp/internal/query"
	"github.com/usestring/keywordcsv-mcp/internal/schema"
	"github.com/usestring/keywordcsv-mcp/pkg/extract"
	"github.com/usestring/keywordcsv-mcp/pkg/keywords"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Config  *config.Config
	Cache   *cache.ConversionCache
	Convert *convert.Service
	Schema  *schema.Validator
	Query   *query.Engine
	Saver   keywords.Saver
	Extract *extract.Engine
}
