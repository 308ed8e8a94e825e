package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/keywordcsv-mcp/internal/mcp/tools"
	"github.com/usestring/keywordcsv-mcp/pkg/keywords"
	"github.com/usestring/keywordcsv-mcp/pkg/types"
)

// Resource URI scheme: keywords://
// Supported URIs:
//   keywords://conversion/{id}   (id may be "latest")
//   keywords://conversions
//   keywords://schema
//   keywords://sample

const (
	resourceScheme    = "keywords://"
	latestConversion  = "latest"
	resourceListURI   = resourceScheme + "conversions"
	resourceSchemaURI = resourceScheme + "schema"
	resourceSampleURI = resourceScheme + "sample"
)

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: resourceScheme + "conversion/{id}",
		Name:        "Keyword CSV",
		Description: "CSV document produced by keywords_convert. Use the conversion_id from the tool output, or \"latest\" for the most recent successful conversion.",
		MIMEType:    tools.MimeCSV,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"user", "assistant"},
			Priority: 0.8,
		},
	}, s.handleResourceConversion)

	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         resourceListURI,
		Name:        "Recent Conversions",
		Description: "Conversions that can still be downloaded, most recently used first.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.6,
		},
	}, s.handleResourceConversions)

	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         resourceSchemaURI,
		Name:        "Keyword Input Schema",
		Description: "JSON Schema for the keyword array accepted by keywords_convert.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.5,
		},
	}, s.handleResourceSchema)

	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         resourceSampleURI,
		Name:        "Sample Keyword Input",
		Description: "Example input with three keyword records.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"user", "assistant"},
			Priority: 0.3,
		},
	}, s.handleResourceSample)
}

// Resource handlers

func (s *Server) handleResourceConversion(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	id := params["id"]
	conv, ok := s.deps.Convert.Latest()
	if id != latestConversion {
		conv, ok = s.deps.Convert.Get(id)
	}
	if !ok {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: tools.MimeCSV,
				Text:     conv.CSV,
			},
		},
	}, nil
}

// conversionListing is one entry of the keywords://conversions resource.
type conversionListing struct {
	ConversionID string    `json:"conversion_id"`
	FileName     string    `json:"file_name"`
	RowCount     int       `json:"row_count"`
	CreatedAt    time.Time `json:"created_at"`
	URI          string    `json:"uri"`
}

func (s *Server) handleResourceConversions(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	if _, err := parseResourceURI(req.Params.URI); err != nil {
		return nil, err
	}

	recent := s.deps.Convert.Recent()
	listing := make([]conversionListing, 0, len(recent))
	for _, conv := range recent {
		listing = append(listing, conversionListing{
			ConversionID: conv.ID,
			FileName:     conv.FileName,
			RowCount:     conv.Summary.RowCount,
			CreatedAt:    conv.CreatedAt,
			URI:          resourceScheme + "conversion/" + conv.ID,
		})
	}
	return toResourceResult(req.Params.URI, listing)
}

func (s *Server) handleResourceSchema(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	doc, err := types.ToAny(json.RawMessage(s.deps.Schema.SchemaJSON()))
	if err != nil {
		return nil, fmt.Errorf("decoding schema: %w", err)
	}
	return toResourceResult(req.Params.URI, doc)
}

func (s *Server) handleResourceSample(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: tools.MimeJSON,
				Text:     keywords.SampleInput,
			},
		},
	}, nil
}

// Helper functions

// parseResourceURI extracts parameters from a keywords:// URI.
func parseResourceURI(uri string) (map[string]string, error) {
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, tools.ErrInvalidInput("invalid URI scheme: expected " + resourceScheme)
	}

	path := strings.TrimPrefix(uri, resourceScheme)
	parts := strings.Split(path, "/")

	params := make(map[string]string)
	resourceType := parts[0]

	switch resourceType {
	case "conversion":
		if len(parts) != 2 || parts[1] == "" {
			return nil, tools.ErrInvalidInput("conversion URI requires a conversion ID")
		}
		params["id"] = parts[1]

	case "conversions", "schema", "sample":
		if len(parts) != 1 {
			return nil, tools.ErrInvalidInput(fmt.Sprintf("%s URI takes no parameters", resourceType))
		}

	default:
		return nil, tools.ErrInvalidInput(fmt.Sprintf("unknown resource type: %s", resourceType))
	}

	return params, nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
