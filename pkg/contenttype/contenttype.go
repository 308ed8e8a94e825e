// Package contenttype classifies documents handed to the keyword importer,
// either by their content-type header or by sniffing the first bytes.
package contenttype

import (
	"bytes"
	"mime"
	"strings"
)

// Category represents a broad content-type classification.
type Category string

const (
	JSON    Category = "json"
	XML     Category = "xml"
	HTML    Category = "html"
	YAML    Category = "yaml"
	CSV     Category = "csv"
	TSV     Category = "tsv"
	Unknown Category = "unknown"
)

// Categories lists the categories the importer understands, in the order
// they are documented to users.
var Categories = []Category{JSON, CSV, TSV, HTML, XML, YAML}

// Parse maps a user-supplied format name ("csv", "HTML", ...) to a Category.
func Parse(name string) (Category, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range Categories {
		if string(c) == name {
			return c, true
		}
	}
	if name == "yml" {
		return YAML, true
	}
	return Unknown, false
}

// Classify returns the broad content category for a content-type header value.
// Uses mime.ParseMediaType to strip parameters (charset etc.) before matching.
// Falls back to strings.ToLower for malformed values.
func Classify(contentType string) Category {
	if strings.TrimSpace(contentType) == "" {
		return Unknown
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch {
	case strings.Contains(mediaType, "json"):
		return JSON
	case mediaType == "text/html" || mediaType == "application/xhtml+xml":
		return HTML
	case strings.Contains(mediaType, "xml"):
		return XML
	case strings.Contains(mediaType, "yaml"):
		return YAML
	case mediaType == "text/csv":
		return CSV
	case mediaType == "text/tab-separated-values":
		return TSV
	}
	return Unknown
}

// Sniff guesses the category of data from its leading bytes. Plain text that
// is neither markup nor JSON is treated as delimited when its first line has a
// comma or tab, and as YAML otherwise.
func Sniff(data []byte) Category {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	if len(trimmed) == 0 {
		return Unknown
	}

	switch trimmed[0] {
	case '[', '{':
		return JSON
	case '<':
		head := strings.ToLower(string(trimmed[:min(len(trimmed), 512)]))
		if strings.Contains(head, "<!doctype html") || strings.Contains(head, "<html") ||
			strings.Contains(head, "<table") || strings.Contains(head, "<tr") {
			return HTML
		}
		return XML
	}

	firstLine, _, _ := bytes.Cut(trimmed, []byte("\n"))
	switch {
	case bytes.HasPrefix(trimmed, []byte("---")), bytes.HasPrefix(trimmed, []byte("- ")):
		return YAML
	case bytes.ContainsRune(firstLine, '\t'):
		return TSV
	case bytes.ContainsRune(firstLine, ','):
		return CSV
	}
	return YAML
}

// Detect prefers the content-type header and falls back to sniffing.
func Detect(contentType string, data []byte) Category {
	if c := Classify(contentType); c != Unknown {
		return c
	}
	return Sniff(data)
}
