package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xmlquery"
)

const (
	defaultHTMLRowSelector = "tr"
	defaultXMLRowSelector  = "/*/*"
)

// isXPath reports whether an HTML row selector should be run as XPath.
func isXPath(selector string) bool {
	return strings.HasPrefix(selector, "/") || strings.HasPrefix(selector, "(")
}

// readHTML reads table-like rows from HTML. The first row that has cells is
// the header; later rows map their cells onto it by position.
func readHTML(data []byte, selector string) (*table, error) {
	if selector == "" {
		selector = defaultHTMLRowSelector
	}

	var rows [][]string
	if isXPath(selector) {
		doc, err := htmlquery.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse HTML: %w", err)
		}
		nodes, err := htmlquery.QueryAll(doc, selector)
		if err != nil {
			return nil, fmt.Errorf("invalid XPath expression: %w", err)
		}
		for _, node := range nodes {
			cells, err := htmlquery.QueryAll(node, "./*[self::td or self::th]")
			if err != nil {
				return nil, fmt.Errorf("reading cells: %w", err)
			}
			row := make([]string, len(cells))
			for i, cell := range cells {
				row[i] = strings.TrimSpace(htmlquery.InnerText(cell))
			}
			rows = append(rows, row)
		}
	} else {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse HTML: %w", err)
		}
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			cells := s.ChildrenFiltered("td, th")
			row := make([]string, 0, cells.Length())
			cells.Each(func(_ int, c *goquery.Selection) {
				row = append(row, strings.TrimSpace(c.Text()))
			})
			rows = append(rows, row)
		})
	}

	return rowsToTable(rows)
}

// rowsToTable applies the header-then-data convention to positional rows.
func rowsToTable(rows [][]string) (*table, error) {
	t := &table{items: []any{}}
	var header []string
	for _, row := range rows {
		if isBlankRecord(row) {
			if header != nil {
				t.skipped++
			}
			continue
		}
		if header == nil {
			header = row
			seen := make(map[string]bool, len(row))
			for _, name := range row {
				t.addColumn(seen, name)
			}
			continue
		}

		item := make(map[string]any, len(header))
		for i, cell := range row {
			if i < len(header) && header[i] != "" {
				item[header[i]] = cell
			}
		}
		t.items = append(t.items, item)
	}

	if header == nil {
		return nil, ErrNoRows
	}
	return t, nil
}

// readXML reads one row per selected element. Attributes and child elements
// become fields, child elements winning over attributes of the same name.
func readXML(data []byte, selector string) (*table, error) {
	if selector == "" {
		selector = defaultXMLRowSelector
	}

	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	nodes, err := xmlquery.QueryAll(doc, selector)
	if err != nil {
		return nil, fmt.Errorf("invalid XPath expression: %w", err)
	}
	if len(nodes) == 0 {
		return nil, ErrNoRows
	}

	t := &table{items: make([]any, 0, len(nodes))}
	seen := make(map[string]bool)
	for _, node := range nodes {
		item := make(map[string]any)
		for _, attr := range node.Attr {
			t.addColumn(seen, attr.Name.Local)
			item[attr.Name.Local] = strings.TrimSpace(attr.Value)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != xmlquery.ElementNode {
				continue
			}
			t.addColumn(seen, child.Data)
			item[child.Data] = strings.TrimSpace(child.InnerText())
		}
		if len(item) == 0 {
			t.skipped++
			continue
		}
		t.items = append(t.items, item)
	}
	return t, nil
}
