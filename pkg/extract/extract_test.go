package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/keywordcsv-mcp/internal/query"
	"github.com/usestring/keywordcsv-mcp/pkg/contenttype"
	"github.com/usestring/keywordcsv-mcp/pkg/keywords"
)

func extractJSON(t *testing.T, data string, opts Options) (*Result, string) {
	t.Helper()
	res, err := NewEngine(query.NewEngine()).Extract([]byte(data), opts)
	require.NoError(t, err)
	out, err := res.JSON()
	require.NoError(t, err)
	return res, out
}

func TestExtract_CSV(t *testing.T) {
	data := "\xef\xbb\xbfKeyword,Search Volume,CPC\n" +
		"react tutorial,\"1,500\",0.4\n" +
		",,\n" +
		"\"say \"\"hi\"\"\",2300,1.2\n"

	res, out := extractJSON(t, data, Options{})
	assert.Equal(t, contenttype.CSV, res.Format)
	assert.Equal(t, []string{"Keyword", "Search Volume", "CPC"}, res.Columns)
	assert.Equal(t, "Keyword", res.KeywordColumn)
	assert.Equal(t, "Search Volume", res.VolumeColumn)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, `[{"keyword":"react tutorial","search_volume":1500},{"keyword":"say \"hi\"","search_volume":2300}]`, out)

	set, err := keywords.Parse(out)
	require.NoError(t, err)
	assert.Len(t, set, 2)
}

func TestExtract_OwnCSVRoundTrips(t *testing.T) {
	csvDoc, err := keywords.Convert(keywords.SampleInput)
	require.NoError(t, err)

	_, out := extractJSON(t, csvDoc, Options{Format: contenttype.CSV})
	got, err := keywords.Convert(out)
	require.NoError(t, err)
	assert.Equal(t, csvDoc, got)
}

func TestExtract_TSVAndExplicitColumns(t *testing.T) {
	data := "term\tclicks\tvolume\nseo\t10\t900\n"

	res, out := extractJSON(t, data, Options{KeywordField: "term", VolumeField: "clicks"})
	assert.Equal(t, contenttype.TSV, res.Format)
	assert.Equal(t, `[{"keyword":"seo","search_volume":10}]`, out)
}

func TestExtract_UnparseableVolumeKeptAsText(t *testing.T) {
	_, out := extractJSON(t, "keyword,volume\na,n/a\nb,\n", Options{})
	assert.Equal(t, `[{"keyword":"a","search_volume":"n/a"},{"keyword":"b"}]`, out)

	_, err := keywords.Parse(out)
	var vErr *keywords.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, keywords.KindFieldType, vErr.Kind)
	assert.Equal(t, 0, vErr.Index)
}

func TestExtract_MissingColumn(t *testing.T) {
	_, err := NewEngine(query.NewEngine()).Extract([]byte("name,count\na,1\n"), Options{Format: contenttype.CSV})
	require.ErrorIs(t, err, ErrColumnNotFound)
	assert.Contains(t, err.Error(), "name, count")

	_, err = NewEngine(query.NewEngine()).Extract([]byte("keyword,volume\na,1\n"), Options{VolumeField: "clicks"})
	require.ErrorIs(t, err, ErrColumnNotFound)
}

func TestExtract_HTML(t *testing.T) {
	data := `<!DOCTYPE html><html><body>
	<table id="kw">
		<thead><tr><th>Kata Pencarian</th><th>Jumlah Pencarian</th></tr></thead>
		<tbody>
			<tr><td> react tutorial </td><td>1,500</td></tr>
			<tr><td>web development</td><td>1800</td></tr>
		</tbody>
	</table>
	</body></html>`

	t.Run("css", func(t *testing.T) {
		res, out := extractJSON(t, data, Options{RowSelector: "#kw tr"})
		assert.Equal(t, contenttype.HTML, res.Format)
		assert.Equal(t, "Kata Pencarian", res.KeywordColumn)
		assert.Equal(t, `[{"keyword":"react tutorial","search_volume":1500},{"keyword":"web development","search_volume":1800}]`, out)
	})

	t.Run("xpath", func(t *testing.T) {
		_, out := extractJSON(t, data, Options{RowSelector: "//table[@id='kw']//tr"})
		assert.Equal(t, `[{"keyword":"react tutorial","search_volume":1500},{"keyword":"web development","search_volume":1800}]`, out)
	})

	t.Run("no rows", func(t *testing.T) {
		_, err := NewEngine(query.NewEngine()).Extract([]byte(data), Options{RowSelector: ".missing"})
		assert.ErrorIs(t, err, ErrNoRows)
	})

	t.Run("bad xpath", func(t *testing.T) {
		_, err := NewEngine(query.NewEngine()).Extract([]byte(data), Options{Format: contenttype.HTML, RowSelector: "//tr["})
		assert.Error(t, err)
	})
}

func TestExtract_XML(t *testing.T) {
	data := `<?xml version="1.0"?>
	<keywords>
		<item volume="1500"><term>react tutorial</term></item>
		<item volume="2300"><term>javascript basics</term></item>
		<item/>
	</keywords>`

	res, out := extractJSON(t, data, Options{})
	assert.Equal(t, contenttype.XML, res.Format)
	assert.Equal(t, []string{"volume", "term"}, res.Columns)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, `[{"keyword":"react tutorial","search_volume":1500},{"keyword":"javascript basics","search_volume":2300}]`, out)

	_, err := NewEngine(query.NewEngine()).Extract([]byte(data), Options{RowSelector: "//nothing"})
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestExtract_YAML(t *testing.T) {
	data := "data:\n  - keyword: seo\n    search_volume: 100\n  - keyword: sem\n    search_volume: 2.5\n"

	res, out := extractJSON(t, data, Options{Format: contenttype.YAML, RowSelector: ".data"})
	assert.Equal(t, contenttype.YAML, res.Format)
	assert.Equal(t, `[{"keyword":"seo","search_volume":100},{"keyword":"sem","search_volume":2.5}]`, out)

	_, err := NewEngine(query.NewEngine()).Extract([]byte(data), Options{Format: contenttype.YAML})
	require.ErrorIs(t, err, ErrNoRows)
	assert.Contains(t, err.Error(), "got an object")
}

func TestExtract_JSONRenamesFields(t *testing.T) {
	data := `{"rows":[{"term":"seo","volume":"12,000"},null,{"term":"sem","volume":40}]}`

	res, out := extractJSON(t, data, Options{RowSelector: ".rows"})
	assert.Equal(t, contenttype.JSON, res.Format)
	assert.Equal(t, []string{"term", "volume"}, res.Columns)
	assert.Equal(t, `[{"keyword":"seo","search_volume":12000},null,{"keyword":"sem","search_volume":40}]`, out)

	_, err := keywords.Parse(out)
	var vErr *keywords.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, keywords.KindElementType, vErr.Kind)
	assert.Equal(t, 1, vErr.Index)
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	_, err := NewEngine(query.NewEngine()).Extract([]byte("   "), Options{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "search_volume", normalizeName("Search Volume"))
	assert.Equal(t, "search_volume", normalizeName(" search-volume "))
	assert.Equal(t, "avg_monthly_searches", normalizeName("Avg. Monthly Searches"))
}

func TestParseVolume(t *testing.T) {
	assert.Equal(t, 12500.0, parseVolume("12,500"))
	assert.Equal(t, 12500.0, parseVolume("12 500"))
	assert.Equal(t, 0.5, parseVolume("0.5"))
	assert.Equal(t, "Inf", parseVolume("Inf"))
	assert.Equal(t, "lots", parseVolume("lots"))
	assert.Equal(t, 1250000.5, parseVolume("1,250,000.5"))
	assert.Equal(t, 1500.0, parseVolume("1\u00a0500"))
	assert.Equal(t, "1,5", parseVolume("1,5"))
	assert.Equal(t, "12,50", parseVolume("12,50"))
	assert.Equal(t, "1,5000", parseVolume("1,5000"))
}
