// Package normalize implements the field normalizers: rating, duration,
// directory name and ingredient flattening. All functions are pure and
// never fail past the value they are given — unparseable input degrades
// to an explicit "not ok" result.
package normalize

import (
	"math"
	"strconv"
	"strings"
)

// Rating is a parsed recipe rating. Value is the numerator of the source
// text ("7/10" → 7), Scale its denominator (→ 10).
type Rating struct {
	Value float64
	Scale float64
}

// ParseRating parses rating text of the shape "N/M". The numerator must be
// numeric; a missing, non-numeric or zero denominator falls back to 10.
// Returns ok=false when the numerator cannot be parsed.
func ParseRating(raw string) (Rating, bool) {
	num, denom, _ := strings.Cut(strings.TrimSpace(raw), "/")

	value, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return Rating{}, false
	}

	scale, err := strconv.ParseFloat(strings.TrimSpace(denom), 64)
	if err != nil || scale <= 0 {
		scale = 10
	}
	return Rating{Value: value, Scale: scale}, true
}

// Score returns the rating on a 0–10 scale, using the actual denominator
// from the source text.
func (r Rating) Score() float64 {
	return r.Value / r.Scale * 10
}

// Stars renders the rating as star glyphs: one full star per whole point
// of the numerator, plus a half star when the value is non-integral.
// Uses cp1252-safe characters so the core PDF fonts can draw them.
func (r Rating) Stars() string {
	full := int(math.Floor(r.Value))
	if full < 0 {
		full = 0
	}
	s := strings.Repeat("*", full)
	if r.Value != math.Floor(r.Value) {
		s += "½"
	}
	return s
}
