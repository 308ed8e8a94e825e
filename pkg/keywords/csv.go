package keywords

import (
	"math"
	"strconv"
	"strings"
)

// Header is the first line of every non-empty CSV document.
const Header = "kata_pencarian,jumlah_pencarian"

// ToCSV renders set as CSV. The keyword column is always quoted with embedded
// quotes doubled; the volume column is never quoted. Rows are joined with
// "\n" and there is no trailing newline. An empty set renders as "" with no
// header.
func ToCSV(set Set) string {
	if len(set) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(Header)
	for _, r := range set {
		sb.WriteByte('\n')
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(r.Keyword, `"`, `""`))
		sb.WriteString(`",`)
		sb.WriteString(FormatVolume(r.SearchVolume))
	}
	return sb.String()
}

// Convert parses raw and renders the result as CSV.
func Convert(raw string) (string, error) {
	set, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return ToCSV(set), nil
}

// FormatVolume formats v the way ECMAScript's Number#toString does: shortest
// round-trip digits, fixed notation for magnitudes in [1e-6, 1e21) and
// exponential notation ("1e+21", "1.5e-7") outside it.
func FormatVolume(v float64) string {
	if v == 0 {
		return "0" // also covers -0
	}

	abs := math.Abs(v)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}
