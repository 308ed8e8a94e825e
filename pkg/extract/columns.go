package extract

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/usestring/keywordcsv-mcp/pkg/keywords"
)

// Header names tried, in order, when no column is named explicitly.
var (
	keywordAliases = []string{keywords.FieldKeyword, "kata_pencarian", "kata_kunci", "keywords", "query", "search_term", "term"}
	volumeAliases  = []string{keywords.FieldSearchVolume, "jumlah_pencarian", "volume", "avg_monthly_searches", "monthly_searches", "searches"}
)

// table is the format-neutral form of an input document. Rows that are not
// objects (possible for JSON and YAML) are kept as-is in items.
type table struct {
	columns []string
	items   []any
	skipped int
}

// addColumn records name once, keeping first-seen order.
func (t *table) addColumn(seen map[string]bool, name string) {
	if !seen[name] {
		seen[name] = true
		t.columns = append(t.columns, name)
	}
}

// project renames the keyword and volume columns of every object row to the
// canonical field names and parses volume cells that hold text.
func (t *table) project(keywordField, volumeField string) (*Result, error) {
	kwCol, err := resolveColumn(t.columns, keywordField, keywordAliases)
	if err != nil {
		return nil, err
	}
	volCol, err := resolveColumn(t.columns, volumeField, volumeAliases)
	if err != nil {
		return nil, err
	}

	items := make([]any, len(t.items))
	for i, item := range t.items {
		row, ok := item.(map[string]any)
		if !ok {
			items[i] = item
			continue
		}

		out := make(map[string]any, 2)
		if v, ok := row[kwCol]; ok {
			out[keywords.FieldKeyword] = v
		}
		if v, ok := volumeValue(row[volCol]); ok {
			out[keywords.FieldSearchVolume] = v
		}
		items[i] = out
	}

	return &Result{
		Items:         items,
		Columns:       t.columns,
		KeywordColumn: kwCol,
		VolumeColumn:  volCol,
		Skipped:       t.skipped,
	}, nil
}

// resolveColumn finds the source column for a field. An explicit name must
// exist; otherwise the first alias present wins. Names are compared after
// normalizeName. A table with no columns at all resolves to the canonical
// name so that non-object rows still reach validation.
func resolveColumn(columns []string, explicit string, aliases []string) (string, error) {
	byName := make(map[string]string, len(columns))
	for _, c := range columns {
		n := normalizeName(c)
		if _, dup := byName[n]; !dup {
			byName[n] = c
		}
	}

	if explicit != "" {
		if c, ok := byName[normalizeName(explicit)]; ok {
			return c, nil
		}
		return "", fmt.Errorf("%w: %q (available: %s)", ErrColumnNotFound, explicit, strings.Join(columns, ", "))
	}

	for _, alias := range aliases {
		if c, ok := byName[alias]; ok {
			return c, nil
		}
	}
	if len(columns) == 0 {
		return aliases[0], nil
	}
	return "", fmt.Errorf("%w: none of %s (available: %s)", ErrColumnNotFound,
		strings.Join(aliases, ", "), strings.Join(columns, ", "))
}

// normalizeName lowercases a header and joins words with underscores, so
// "Search Volume" and "search-volume" both match "search_volume".
func normalizeName(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '.' || r == '\t'
	})
	return strings.Join(fields, "_")
}

// volumeValue returns the volume to emit for a cell. Missing and blank cells
// are left out so validation reports the field as missing.
func volumeValue(v any) (any, bool) {
	switch val := v.(type) {
	case nil:
		return nil, false
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return nil, false
		}
		return parseVolume(s), true
	default:
		return v, true
	}
}

// groupedNumber matches numbers whose integer part is split into groups of
// three digits, such as "12,500" or "1 250 000.5".
var groupedNumber = regexp.MustCompile(`^[+-]?\d{1,3}(?:[, _\x{00a0}]\d{3})+(?:\.\d+)?$`)

var groupSeparators = strings.NewReplacer(",", "", " ", "", "_", "", "\u00a0", "")

// parseVolume reads a number written with optional thousands separators
// ("12,500", "12 500"). Separators anywhere else ("1,5") make the text
// ambiguous, so it is returned unchanged like any other text that does not
// parse.
func parseVolume(s string) any {
	cleaned := s
	if strings.ContainsAny(s, ", _\u00a0") {
		if !groupedNumber.MatchString(s) {
			return s
		}
		cleaned = groupSeparators.Replace(s)
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	return f
}
