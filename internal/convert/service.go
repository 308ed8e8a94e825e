// Package convert runs keyword conversions for the MCP tools: it validates
// input, optionally reshapes it with a jq filter, renders CSV, remembers
// successful conversions and exports them on request.
package convert

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/usestring/keywordcsv-mcp/internal/cache"
	"github.com/usestring/keywordcsv-mcp/internal/config"
	"github.com/usestring/keywordcsv-mcp/internal/query"
	"github.com/usestring/keywordcsv-mcp/pkg/jsoncompact"
	"github.com/usestring/keywordcsv-mcp/pkg/keywords"
	"github.com/usestring/keywordcsv-mcp/pkg/types"
)

// Errors returned by Service.
var (
	ErrInputTooLarge     = errors.New("input too large")
	ErrInvalidFilter     = errors.New("invalid filter")
	ErrNoConversion      = errors.New("no conversion yet")
	ErrUnknownConversion = errors.New("conversion not found")
)

// Request is a single "convert" action.
type Request struct {
	Input    string
	FileName string
	Filter   string
}

// Result holds either a successful conversion or the validation failure.
// Preview is a compacted rendering of the offending element, if any.
type Result struct {
	Conversion *types.Conversion
	Failure    *keywords.ValidationError
	Preview    string
}

// Download describes a saved export.
type Download struct {
	ConversionID string
	FileName     string
	Location     string
	Bytes        int
	MIMEType     string
}

// Service converts keyword input and keeps recent results for download.
type Service struct {
	cache   *cache.ConversionCache
	query   *query.Engine
	saver   keywords.Saver
	cfg     *config.Config
	preview *jsoncompact.Options

	mu       sync.Mutex
	latestID string

	now func() time.Time
}

// NewService creates a conversion service.
func NewService(c *cache.ConversionCache, q *query.Engine, saver keywords.Saver, cfg *config.Config) *Service {
	return &Service{
		cache: c,
		query: q,
		saver: saver,
		cfg:   cfg,
		preview: &jsoncompact.Options{
			MaxArrayItems: cfg.PreviewMaxArrayItems,
			MaxStringLen:  cfg.PreviewMaxStringLen,
			MaxDepth:      jsoncompact.DefaultMaxDepth,
		},
		now: time.Now,
	}
}

// Convert validates and converts req.Input. Validation failures are reported
// in Result.Failure and leave previously stored conversions untouched; the
// returned error covers oversized input and bad filters.
func (s *Service) Convert(req Request) (*Result, error) {
	if s.cfg.MaxInputBytes > 0 && len(req.Input) > s.cfg.MaxInputBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrInputTooLarge, len(req.Input), s.cfg.MaxInputBytes)
	}
	if req.Filter != "" {
		if err := s.query.ValidateExpression(req.Filter); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
	}

	value, err := keywords.Decode(req.Input)
	if err != nil {
		return s.rejected(err, nil)
	}

	if req.Filter != "" {
		value, err = s.query.Apply(value, req.Filter)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
	}

	set, err := keywords.Validate(value)
	if err != nil {
		return s.rejected(err, value)
	}

	base := req.FileName
	if strings.TrimSpace(base) == "" {
		base = s.cfg.DefaultFileName
	}

	fileName := keywords.FileName(base)
	conv := &types.Conversion{
		ID:        conversionID(req.Input, req.Filter, fileName),
		FileName:  fileName,
		CSV:       keywords.ToCSV(set),
		Records:   set,
		Summary:   Summarize(set),
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.cache.Put(conv)
	s.latestID = conv.ID
	s.mu.Unlock()

	slog.Debug("conversion completed",
		slog.String("conversion_id", conv.ID),
		slog.Int("rows", len(set)),
	)

	return &Result{Conversion: conv}, nil
}

// rejected turns a core validation error into a Result. value is the decoded
// input (after filtering) used to preview the offending element.
func (s *Service) rejected(err error, value any) (*Result, error) {
	var vErr *keywords.ValidationError
	if !errors.As(err, &vErr) {
		return nil, err
	}

	result := &Result{Failure: vErr}
	if items, ok := value.([]any); ok && vErr.HasIndex() && vErr.Index < len(items) {
		result.Preview = jsoncompact.Preview(items[vErr.Index], s.preview)
	}

	slog.Info("conversion rejected",
		slog.String("kind", string(vErr.Kind)),
		slog.Int("index", vErr.Index),
		slog.String("field", vErr.Field),
	)
	return result, nil
}

// Get returns a stored conversion by ID.
func (s *Service) Get(id string) (*types.Conversion, bool) {
	return s.cache.Get(id)
}

// Latest returns the most recent successful conversion, if it is still cached.
// Reading it does not change which conversions are evicted first.
func (s *Service) Latest() (*types.Conversion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latestID == "" {
		return nil, false
	}
	return s.cache.Peek(s.latestID)
}

// Recent lists the cached conversions, most recently used first.
func (s *Service) Recent() []*types.Conversion {
	keys := s.cache.Keys()
	out := make([]*types.Conversion, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		if conv, ok := s.cache.Peek(keys[i]); ok {
			out = append(out, conv)
		}
	}
	return out
}

// Download exports a stored conversion through the configured saver. An
// empty id selects the latest conversion and an empty fileName reuses the
// name chosen at conversion time.
func (s *Service) Download(ctx context.Context, id, fileName string) (*Download, error) {
	conv, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	base := fileName
	if strings.TrimSpace(base) == "" {
		base = conv.FileName
	}

	name, err := keywords.Export(ctx, s.saver, conv.CSV, base)
	if err != nil {
		return nil, err
	}

	return &Download{
		ConversionID: conv.ID,
		FileName:     name,
		Location:     s.location(name),
		Bytes:        len(conv.CSV),
		MIMEType:     keywords.MIMEType,
	}, nil
}

func (s *Service) lookup(id string) (*types.Conversion, error) {
	if id == "" {
		conv, ok := s.Latest()
		if !ok {
			return nil, ErrNoConversion
		}
		return conv, nil
	}

	conv, ok := s.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownConversion, id)
	}
	return conv, nil
}

// location reports where name ends up when the saver knows its own paths.
func (s *Service) location(name string) string {
	if p, ok := s.saver.(interface{ Path(string) string }); ok {
		return p.Path(name)
	}
	return name
}

// conversionID derives a stable ID from the input, filter and file name, so
// renaming a conversion never rewrites an ID handed out earlier.
func conversionID(input, filter, fileName string) string {
	h := sha256.New()
	h.Write([]byte(fileName))
	h.Write([]byte{0})
	h.Write([]byte(filter))
	h.Write([]byte{0})
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))[:12]
}
