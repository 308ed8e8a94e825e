// Package extract turns keyword tables exported by other tools (CSV, TSV,
// HTML, XML, YAML or JSON with different field names) into the JSON array of
// {keyword, search_volume} objects that keywords.Parse accepts.
//
// Extraction only reshapes data. Cells that do not look like numbers are
// passed through as strings so that validation reports them with their index.
package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/usestring/keywordcsv-mcp/internal/query"
	"github.com/usestring/keywordcsv-mcp/pkg/contenttype"
)

// Errors returned by Extract.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrNoRows            = errors.New("no rows found")
	ErrColumnNotFound    = errors.New("column not found")
)

// Options controls a single extraction.
type Options struct {
	// Format forces the input format. When empty it is detected from
	// ContentType and then by sniffing the data.
	Format      contenttype.Category
	ContentType string

	// RowSelector picks the rows: a CSS selector or XPath (starting with "/")
	// for HTML, XPath for XML, a jq expression for JSON and YAML. Ignored for
	// CSV and TSV.
	RowSelector string

	// KeywordField and VolumeField name the source columns. When empty the
	// usual export headers are tried (keyword, kata_pencarian, term, volume...).
	KeywordField string
	VolumeField  string
}

// Result is the outcome of an extraction.
type Result struct {
	Format  contenttype.Category
	Items   []any
	Columns []string

	// KeywordColumn and VolumeColumn are the source columns that were used.
	KeywordColumn string
	VolumeColumn  string

	// Skipped counts blank rows that were dropped.
	Skipped int
}

// JSON renders the extracted items as compact JSON suitable for keywords.Parse.
func (r *Result) JSON() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r.Items); err != nil {
		return "", fmt.Errorf("encoding items: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// Engine extracts keyword rows from documents.
type Engine struct {
	jq *query.Engine
}

// NewEngine creates an extraction engine. q evaluates row selectors for JSON
// and YAML input.
func NewEngine(q *query.Engine) *Engine {
	return &Engine{jq: q}
}

// Extract reads data in the format given by opts and maps its rows onto
// keyword records.
func (e *Engine) Extract(data []byte, opts Options) (*Result, error) {
	format := opts.Format
	if format == "" || format == contenttype.Unknown {
		format = contenttype.Detect(opts.ContentType, data)
	}

	var (
		t   *table
		err error
	)
	switch format {
	case contenttype.CSV:
		t, err = readDelimited(data, ',')
	case contenttype.TSV:
		t, err = readDelimited(data, '\t')
	case contenttype.HTML:
		t, err = readHTML(data, opts.RowSelector)
	case contenttype.XML:
		t, err = readXML(data, opts.RowSelector)
	case contenttype.JSON:
		t, err = e.readJSON(data, opts.RowSelector)
	case contenttype.YAML:
		t, err = e.readYAML(data, opts.RowSelector)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	result, err := t.project(opts.KeywordField, opts.VolumeField)
	if err != nil {
		return nil, err
	}
	result.Format = format
	return result, nil
}
