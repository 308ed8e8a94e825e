package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// DownloadInput is the input for keywords_download.
type DownloadInput struct {
	ConversionID string `json:"conversion_id,omitempty" jsonschema:"Conversion to save (default: the latest successful conversion)"`
	FileName     string `json:"file_name,omitempty" jsonschema:"File name without extension (default: the name given to keywords_convert)"`
}

// DownloadOutput is the output for keywords_download.
type DownloadOutput struct {
	ConversionID string `json:"conversion_id"`
	FileName     string `json:"file_name"`
	Path         string `json:"path"`
	Bytes        int    `json:"bytes"`
	MIMEType     string `json:"mime_type"`
}

// ToolDownload saves a converted CSV document as {file_name}.csv.
func ToolDownload(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input DownloadInput) (*sdkmcp.CallToolResult, DownloadOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input DownloadInput) (*sdkmcp.CallToolResult, DownloadOutput, error) {
		dl, err := d.Convert.Download(ctx, input.ConversionID, input.FileName)
		if err != nil {
			return nil, DownloadOutput{}, WrapServiceError(err)
		}

		return nil, DownloadOutput{
			ConversionID: dl.ConversionID,
			FileName:     dl.FileName,
			Path:         dl.Location,
			Bytes:        dl.Bytes,
			MIMEType:     dl.MIMEType,
		}, nil
	}
}
