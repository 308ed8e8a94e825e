package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// LoggingMiddleware returns middleware that logs every incoming call. Tool
// calls are logged with the tool name, and tool results flagged as errors
// (rejected conversions, failed downloads) are logged at warn level.
func LoggingMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			start := time.Now()

			result, err := next(ctx, method, req)

			attrs := append(requestAttrs(method, req),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			)

			switch {
			case err != nil:
				attrs = append(attrs, slog.String("error", err.Error()))
				slog.LogAttrs(ctx, slog.LevelError, "method call failed", attrs...)
			case isToolError(result):
				slog.LogAttrs(ctx, slog.LevelWarn, "tool returned an error", attrs...)
			default:
				slog.LogAttrs(ctx, slog.LevelInfo, "method call completed", attrs...)
			}

			return result, err
		}
	}
}

// requestAttrs names what a request targets: the tool for tools/call and
// the URI for resources/read.
func requestAttrs(method string, req sdkmcp.Request) []slog.Attr {
	attrs := []slog.Attr{slog.String("method", method)}
	switch r := req.(type) {
	case *sdkmcp.CallToolRequest:
		if r.Params != nil {
			attrs = append(attrs, slog.String("tool", r.Params.Name))
		}
	case *sdkmcp.ReadResourceRequest:
		if r.Params != nil {
			attrs = append(attrs, slog.String("uri", r.Params.URI))
		}
	}
	return attrs
}

func isToolError(result sdkmcp.Result) bool {
	res, ok := result.(*sdkmcp.CallToolResult)
	return ok && res != nil && res.IsError
}
