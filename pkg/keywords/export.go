package keywords

import (
	"context"
	"strings"
)

// DefaultBaseName is used when no file name is given.
const DefaultBaseName = "keywords"

// MIMEType is the content type attached to exported documents.
const MIMEType = "text/csv;charset=utf-8"

// Saver hands exported bytes to the host environment, e.g. a directory on
// disk or a browser download.
type Saver interface {
	Save(ctx context.Context, content []byte, name, mimeType string) error
}

// FileName returns the export file name for base. A blank base falls back to
// DefaultBaseName and a trailing ".csv" is not doubled.
func FileName(base string) string {
	base = strings.TrimSpace(base)
	if len(base) >= 4 && strings.EqualFold(base[len(base)-4:], ".csv") {
		base = strings.TrimSpace(base[:len(base)-4])
	}
	if base == "" {
		base = DefaultBaseName
	}
	return base + ".csv"
}

// Export saves doc as "{base}.csv" through saver and returns the file name
// used. An empty doc returns ErrNothingToExport without calling saver.
func Export(ctx context.Context, saver Saver, doc, base string) (string, error) {
	if doc == "" {
		return "", ErrNothingToExport
	}

	name := FileName(base)
	if err := saver.Save(ctx, []byte(doc), name, MIMEType); err != nil {
		return "", err
	}
	return name, nil
}
