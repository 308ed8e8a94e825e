package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/keywordcsv-mcp/internal/mcp/prompts"
	"github.com/usestring/keywordcsv-mcp/internal/mcp/tools"
)

// Server wraps the MCP server with keyword conversion components.
type Server struct {
	mcpServer *sdkmcp.Server
	deps      *tools.Deps

	// Extension toggles
	enableBuiltinTools   bool
	enableBuiltinPrompts bool

	// Custom extension registration callbacks
	customRegistrations []func(*sdkmcp.Server)
}

// ServerOption is a functional option for configuring the Server.
type ServerOption func(*Server)

// WithBuiltinTools enables the builtin keyword tools and resources.
func WithBuiltinTools() ServerOption {
	return func(s *Server) {
		s.enableBuiltinTools = true
	}
}

// WithBuiltinPrompts enables the builtin prompts.
func WithBuiltinPrompts() ServerOption {
	return func(s *Server) {
		s.enableBuiltinPrompts = true
	}
}

// WithCustomRegistration adds a custom registration callback.
// The callback receives the underlying MCP server and can register
// tools, prompts, or resources directly.
func WithCustomRegistration(fn func(*sdkmcp.Server)) ServerOption {
	return func(s *Server) {
		s.customRegistrations = append(s.customRegistrations, fn)
	}
}

// NewServer creates a new MCP server with the provided dependencies and options.
func NewServer(deps *tools.Deps, opts ...ServerOption) (*Server, error) {
	if deps == nil {
		return nil, fmt.Errorf("deps is required")
	}

	s := &Server{deps: deps}

	for _, opt := range opts {
		opt(s)
	}

	s.mcpServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{
			Name:    "keywordcsv-mcp",
			Title:   "Keyword CSV converter",
			Version: "1.0.0",
		},
		&sdkmcp.ServerOptions{
			Instructions: instructions(deps, s.enableBuiltinTools),
			Logger:       slog.Default(),
		},
	)

	s.mcpServer.AddReceivingMiddleware(LoggingMiddleware())

	promptCfg := &prompts.Config{
		DefaultFileName: deps.Config.DefaultFileName,
		OutputDir:       deps.Config.OutputDir,
	}

	if s.enableBuiltinTools {
		tools.Register(s.mcpServer, deps)
		s.registerResources()
	}
	if s.enableBuiltinPrompts {
		prompts.Register(s.mcpServer, promptCfg)
	}

	for _, fn := range s.customRegistrations {
		fn(s.mcpServer)
	}

	return s, nil
}

// instructions tells clients how the builtin tools fit together. Limits come
// from the loaded configuration so the text matches what the tools enforce.
func instructions(deps *tools.Deps, builtinTools bool) string {
	if !builtinTools {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Converts JSON arrays of {\"keyword\", \"search_volume\"} records to CSV.\n")
	sb.WriteString("Call keywords_convert with the JSON text, then keywords_download to save the CSV. ")
	sb.WriteString("Use keywords_lint to list every problem at once and keywords_import to turn CSV, HTML, XML or YAML tables into the JSON input.\n")
	if deps.Config.MaxInputBytes > 0 {
		fmt.Fprintf(&sb, "Input is limited to %d bytes.\n", deps.Config.MaxInputBytes)
	}
	if deps.Config.OutputDir != "" {
		fmt.Fprintf(&sb, "Downloads are written to %s.\n", deps.Config.OutputDir)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &sdkmcp.StdioTransport{})
}

// MCPServer returns the underlying MCP server for testing.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.mcpServer
}
