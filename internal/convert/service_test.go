package convert

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/keywordcsv-mcp/internal/cache"
	"github.com/usestring/keywordcsv-mcp/internal/config"
	"github.com/usestring/keywordcsv-mcp/internal/export"
	"github.com/usestring/keywordcsv-mcp/internal/query"
	"github.com/usestring/keywordcsv-mcp/pkg/keywords"
)

func newTestService(t *testing.T, saver keywords.Saver) *Service {
	t.Helper()
	cfg := &config.Config{
		DefaultFileName:      "keywords",
		CacheMaxItems:        4,
		MaxInputBytes:        1 << 16,
		PreviewMaxArrayItems: 2,
		PreviewMaxStringLen:  8,
	}
	c, err := cache.NewConversionCache(cfg.CacheMaxItems)
	require.NoError(t, err)

	svc := NewService(c, query.NewEngine(), saver, cfg)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestService_Convert(t *testing.T) {
	svc := newTestService(t, export.NewMemorySaver())

	res, err := svc.Convert(Request{Input: keywords.SampleInput})
	require.NoError(t, err)
	require.Nil(t, res.Failure)
	require.NotNil(t, res.Conversion)

	conv := res.Conversion
	assert.Len(t, conv.ID, 12)
	assert.Equal(t, "keywords.csv", conv.FileName)
	assert.True(t, strings.HasPrefix(conv.CSV, keywords.Header+"\n"))
	assert.Equal(t, 3, conv.Summary.RowCount)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), conv.CreatedAt)

	latest, ok := svc.Latest()
	require.True(t, ok)
	assert.Equal(t, conv.ID, latest.ID)
}

func TestService_Convert_StableID(t *testing.T) {
	svc := newTestService(t, export.NewMemorySaver())

	a, err := svc.Convert(Request{Input: keywords.SampleInput})
	require.NoError(t, err)
	again, err := svc.Convert(Request{Input: keywords.SampleInput, FileName: "keywords.csv"})
	require.NoError(t, err)
	c, err := svc.Convert(Request{Input: keywords.SampleInput, Filter: "."})
	require.NoError(t, err)

	assert.Equal(t, a.Conversion.ID, again.Conversion.ID)
	assert.NotEqual(t, a.Conversion.ID, c.Conversion.ID)
}

func TestService_Convert_RenameKeepsEarlierID(t *testing.T) {
	svc := newTestService(t, export.NewMemorySaver())

	first, err := svc.Convert(Request{Input: keywords.SampleInput, FileName: "riset"})
	require.NoError(t, err)
	second, err := svc.Convert(Request{Input: keywords.SampleInput, FileName: "laporan"})
	require.NoError(t, err)
	require.NotEqual(t, first.Conversion.ID, second.Conversion.ID)

	dl, err := svc.Download(context.Background(), first.Conversion.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "riset.csv", dl.FileName)

	latest, ok := svc.Latest()
	require.True(t, ok)
	assert.Equal(t, "laporan.csv", latest.FileName)
}

func TestService_Latest_DoesNotTouchRecency(t *testing.T) {
	svc := newTestService(t, export.NewMemorySaver())

	var ids []string
	for _, name := range []string{"a", "b", "c", "d"} {
		res, err := svc.Convert(Request{Input: keywords.SampleInput, FileName: name})
		require.NoError(t, err)
		ids = append(ids, res.Conversion.ID)
	}

	// Make "d" (the latest) the least recently used entry.
	for _, id := range ids[:3] {
		_, ok := svc.Get(id)
		require.True(t, ok)
	}
	latest, ok := svc.Latest()
	require.True(t, ok)
	assert.Equal(t, ids[3], latest.ID)

	_, err := svc.Convert(Request{Input: keywords.SampleInput, FileName: "e"})
	require.NoError(t, err)

	_, ok = svc.Get(ids[3])
	assert.False(t, ok, "latest read must not keep the entry alive")
	_, ok = svc.Get(ids[0])
	assert.True(t, ok)
}

func TestService_Recent(t *testing.T) {
	svc := newTestService(t, export.NewMemorySaver())
	assert.Empty(t, svc.Recent())

	a, err := svc.Convert(Request{Input: keywords.SampleInput, FileName: "a"})
	require.NoError(t, err)
	b, err := svc.Convert(Request{Input: `[]`, FileName: "b"})
	require.NoError(t, err)

	recent := svc.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, b.Conversion.ID, recent[0].ID)
	assert.Equal(t, a.Conversion.ID, recent[1].ID)
}

func TestService_Convert_ConcurrentLatest(t *testing.T) {
	svc := newTestService(t, export.NewMemorySaver())

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Convert(Request{Input: keywords.SampleInput, FileName: fmt.Sprintf("run-%d", i)})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	latest, ok := svc.Latest()
	require.True(t, ok)
	recent := svc.Recent()
	require.NotEmpty(t, recent)
	assert.Equal(t, recent[0].ID, latest.ID)
}

func TestService_Convert_FailureKeepsPreviousState(t *testing.T) {
	svc := newTestService(t, export.NewMemorySaver())

	ok, err := svc.Convert(Request{Input: keywords.SampleInput})
	require.NoError(t, err)

	res, err := svc.Convert(Request{Input: `[{"keyword":"a","search_volume":1},{"keyword":"a very long keyword","tags":[1,2,3,4]}]`})
	require.NoError(t, err)
	require.Nil(t, res.Conversion)
	require.NotNil(t, res.Failure)

	assert.Equal(t, keywords.KindFieldType, res.Failure.Kind)
	assert.Equal(t, 1, res.Failure.Index)
	assert.Equal(t, "search_volume", res.Failure.Field)
	assert.JSONEq(t, `{"keyword":"a very l... (11 more chars)","tags":[1,2,"... (2 more items)"]}`, res.Preview)

	latest, found := svc.Latest()
	require.True(t, found)
	assert.Equal(t, ok.Conversion.ID, latest.ID)
}

func TestService_Convert_SyntaxErrorHasNoPreview(t *testing.T) {
	svc := newTestService(t, export.NewMemorySaver())

	res, err := svc.Convert(Request{Input: `[{`})
	require.NoError(t, err)
	require.NotNil(t, res.Failure)
	assert.Equal(t, keywords.KindSyntax, res.Failure.Kind)
	assert.Empty(t, res.Preview)
}

func TestService_Convert_EmptyArray(t *testing.T) {
	svc := newTestService(t, export.NewMemorySaver())

	res, err := svc.Convert(Request{Input: `[]`})
	require.NoError(t, err)
	require.NotNil(t, res.Conversion)
	assert.Empty(t, res.Conversion.CSV)
	assert.Equal(t, 0, res.Conversion.Summary.RowCount)
}

func TestService_Convert_Filter(t *testing.T) {
	svc := newTestService(t, export.NewMemorySaver())

	res, err := svc.Convert(Request{
		Input:  keywords.SampleInput,
		Filter: `map(select(.search_volume > 10000))`,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Conversion)

	assert.Equal(t, "kata_pencarian,jumlah_pencarian\n\"react tutorial\",12500\n\"web development\",15600", res.Conversion.CSV)
}

func TestService_Convert_FilterOutputValidated(t *testing.T) {
	svc := newTestService(t, export.NewMemorySaver())

	res, err := svc.Convert(Request{Input: keywords.SampleInput, Filter: `map(.keyword)`})
	require.NoError(t, err)
	require.NotNil(t, res.Failure)
	assert.Equal(t, keywords.KindElementType, res.Failure.Kind)
	assert.Equal(t, `"react tu... (6 more chars)"`, res.Preview)
}

func TestService_Convert_BadFilter(t *testing.T) {
	svc := newTestService(t, export.NewMemorySaver())

	_, err := svc.Convert(Request{Input: keywords.SampleInput, Filter: `map(`})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestService_Convert_BadFilterCheckedBeforeInput(t *testing.T) {
	svc := newTestService(t, export.NewMemorySaver())

	res, err := svc.Convert(Request{Input: "  ", Filter: `map(`})
	assert.ErrorIs(t, err, ErrInvalidFilter)
	assert.Nil(t, res)
}

func TestService_Convert_InputTooLarge(t *testing.T) {
	svc := newTestService(t, export.NewMemorySaver())

	_, err := svc.Convert(Request{Input: "[" + strings.Repeat(" ", 1<<16) + "]"})
	assert.ErrorIs(t, err, ErrInputTooLarge)
}

func TestService_Download(t *testing.T) {
	saver := export.NewMemorySaver()
	svc := newTestService(t, saver)

	res, err := svc.Convert(Request{Input: keywords.SampleInput, FileName: "laporan"})
	require.NoError(t, err)

	dl, err := svc.Download(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, res.Conversion.ID, dl.ConversionID)
	assert.Equal(t, "laporan.csv", dl.FileName)
	assert.Equal(t, "laporan.csv", dl.Location)
	assert.Equal(t, keywords.MIMEType, dl.MIMEType)
	assert.Equal(t, len(res.Conversion.CSV), dl.Bytes)

	f, ok := saver.Get("laporan.csv")
	require.True(t, ok)
	assert.Equal(t, res.Conversion.CSV, string(f.Content))

	renamed, err := svc.Download(context.Background(), res.Conversion.ID, "final")
	require.NoError(t, err)
	assert.Equal(t, "final.csv", renamed.FileName)
}

func TestService_Download_DirSaverLocation(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(t, export.NewDirSaver(dir))

	_, err := svc.Convert(Request{Input: keywords.SampleInput})
	require.NoError(t, err)

	dl, err := svc.Download(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, export.NewDirSaver(dir).Path("keywords.csv"), dl.Location)
}

func TestService_Download_Errors(t *testing.T) {
	svc := newTestService(t, export.NewMemorySaver())
	ctx := context.Background()

	_, err := svc.Download(ctx, "", "")
	assert.ErrorIs(t, err, ErrNoConversion)

	_, err = svc.Download(ctx, "deadbeef0000", "")
	assert.ErrorIs(t, err, ErrUnknownConversion)

	res, err := svc.Convert(Request{Input: `[]`})
	require.NoError(t, err)
	_, err = svc.Download(ctx, res.Conversion.ID, "")
	assert.ErrorIs(t, err, keywords.ErrNothingToExport)

	_, err = svc.Download(ctx, "", "../escape")
	assert.ErrorIs(t, err, keywords.ErrNothingToExport)
}

func TestService_Download_InvalidName(t *testing.T) {
	svc := newTestService(t, export.NewMemorySaver())

	_, err := svc.Convert(Request{Input: keywords.SampleInput})
	require.NoError(t, err)

	_, err = svc.Download(context.Background(), "", "../escape")
	assert.ErrorIs(t, err, export.ErrInvalidName)
}
