// Package prompts contains MCP prompt implementations for keyword conversion.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	DefaultFileName string
	OutputDir       string
}
