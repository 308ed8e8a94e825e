// Package keywords validates JSON arrays of keyword-frequency records and
// serializes them to CSV.
package keywords

// Record is a single search keyword with its monthly search volume.
type Record struct {
	Keyword      string  `json:"keyword" jsonschema_description:"Search keyword"`
	SearchVolume float64 `json:"search_volume" jsonschema_description:"Search volume for the keyword"`
}

// Set is an ordered list of records. Order matches the input array and
// duplicate keywords are allowed.
type Set []Record

// SampleInput is a small valid input document.
const SampleInput = `[
  {"keyword": "react tutorial", "search_volume": 12500},
  {"keyword": "javascript basics", "search_volume": 8900},
  {"keyword": "web development", "search_volume": 15600}
]`
