package types

import (
	"time"

	"github.com/usestring/keywordcsv-mcp/pkg/keywords"
)

// Conversion is a successful keyword-to-CSV conversion kept for download.
type Conversion struct {
	ID        string       `json:"conversion_id"`
	FileName  string       `json:"file_name"`
	CSV       string       `json:"csv"`
	Records   keywords.Set `json:"records,omitzero"`
	Summary   Summary      `json:"summary"`
	CreatedAt time.Time    `json:"created_at"`
}

// Summary describes the rows of a converted keyword set.
// Row indices are zero-based positions in the input array.
type Summary struct {
	RowCount       int      `json:"row_count"`
	UniqueKeywords int      `json:"unique_keywords"`
	DuplicateRows  []uint32 `json:"duplicate_rows,omitzero"`
	ZeroVolumeRows []uint32 `json:"zero_volume_rows,omitzero"`
	TotalVolume    float64  `json:"total_volume"`
	MinVolume      float64  `json:"min_volume"`
	MaxVolume      float64  `json:"max_volume"`
}
