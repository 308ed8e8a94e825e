package extract

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// readDelimited parses CSV or TSV. The first non-blank record is the header.
func readDelimited(data []byte, comma rune) (*table, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	reader.Comma = comma
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // Allow variable field counts

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSV parse error: %w", err)
	}

	t := &table{items: []any{}}
	var header []string
	for _, record := range records {
		if isBlankRecord(record) {
			if header != nil {
				t.skipped++
			}
			continue
		}
		if header == nil {
			header = make([]string, len(record))
			seen := make(map[string]bool, len(record))
			for i, name := range record {
				header[i] = strings.TrimSpace(name)
				t.addColumn(seen, header[i])
			}
			continue
		}

		row := make(map[string]any, len(header))
		for i, cell := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			row[header[i]] = strings.TrimSpace(cell)
		}
		t.items = append(t.items, row)
	}

	if header == nil {
		return nil, ErrNoRows
	}
	return t, nil
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
