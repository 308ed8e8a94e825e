package mcp

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestLoggingMiddleware(t *testing.T) {
	callConvert := &sdkmcp.CallToolRequest{Params: &sdkmcp.CallToolParamsRaw{Name: "keywords_convert"}}

	tests := []struct {
		name   string
		method string
		req    sdkmcp.Request
		result sdkmcp.Result
		err    error
		want   []string
	}{
		{
			name:   "rejected conversion",
			method: "tools/call",
			req:    callConvert,
			result: &sdkmcp.CallToolResult{IsError: true},
			want:   []string{"level=WARN", "tool returned an error", "tool=keywords_convert"},
		},
		{
			name:   "successful conversion",
			method: "tools/call",
			req:    callConvert,
			result: &sdkmcp.CallToolResult{},
			want:   []string{"level=INFO", "method call completed", "tool=keywords_convert"},
		},
		{
			name:   "resource read",
			method: "resources/read",
			req:    &sdkmcp.ReadResourceRequest{Params: &sdkmcp.ReadResourceParams{URI: "keywords://conversion/latest"}},
			result: &sdkmcp.ReadResourceResult{},
			want:   []string{"level=INFO", "uri=keywords://conversion/latest"},
		},
		{
			name:   "handler failure",
			method: "resources/read",
			req:    &sdkmcp.ReadResourceRequest{Params: &sdkmcp.ReadResourceParams{URI: "keywords://conversion/x"}},
			err:    errors.New("boom"),
			want:   []string{"level=ERROR", "method call failed", "error=boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			handler := LoggingMiddleware()(func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
				return tt.result, tt.err
			})

			result, err := handler(context.Background(), tt.method, tt.req)
			assert.Equal(t, tt.err, err)
			assert.Equal(t, tt.result, result)
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}
