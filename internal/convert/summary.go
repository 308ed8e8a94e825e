package convert

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/keywordcsv-mcp/pkg/keywords"
	"github.com/usestring/keywordcsv-mcp/pkg/types"
)

// Summarize computes row statistics for set. A row is a duplicate when its
// keyword (compared exactly) already appeared at a lower index.
func Summarize(set keywords.Set) types.Summary {
	summary := types.Summary{RowCount: len(set)}
	if len(set) == 0 {
		return summary
	}

	duplicates := roaring.New()
	zeroVolume := roaring.New()
	seen := make(map[string]struct{}, len(set))

	summary.MinVolume = set[0].SearchVolume
	summary.MaxVolume = set[0].SearchVolume

	for i, r := range set {
		row := uint32(i)
		if _, ok := seen[r.Keyword]; ok {
			duplicates.Add(row)
		} else {
			seen[r.Keyword] = struct{}{}
		}
		if r.SearchVolume == 0 {
			zeroVolume.Add(row)
		}

		summary.TotalVolume += r.SearchVolume
		summary.MinVolume = min(summary.MinVolume, r.SearchVolume)
		summary.MaxVolume = max(summary.MaxVolume, r.SearchVolume)
	}

	summary.UniqueKeywords = len(seen)
	if !duplicates.IsEmpty() {
		summary.DuplicateRows = duplicates.ToArray()
	}
	if !zeroVolume.IsEmpty() {
		summary.ZeroVolumeRows = zeroVolume.ToArray()
	}
	return summary
}
