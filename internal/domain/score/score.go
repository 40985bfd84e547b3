// Package score converts performance strings such as "1:28.37", "2:17:23",
// "6m 26.5s" or "4.85" into numbers, and formats numbers back for display.
package score

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const invalidMarker = "invalid"

// Result is a normalized performance.
type Result struct {
	// Value is seconds for timed events, metres for distances, points otherwise.
	Value float64
	// DecimalPlaces is the precision present in the source string.
	DecimalPlaces int
	// OriginalSpecial holds the performance text verbatim when it carries a
	// non-numeric annotation (e.g. wind assistance). Empty otherwise.
	OriginalSpecial string
	// Invalid is set when the string carried an explicit "invalid" marker.
	Invalid bool
}

var (
	sixty        = decimal.NewFromInt(60)
	informalTime = regexp.MustCompile(`^(\d+)(?:min|m)(\d+(?:\.\d*)?)s?$`)
)

// Normalize parses raw into a Result. A string whose numeric prefix cannot
// be parsed yields an error wrapping ErrUnparseableScore.
func Normalize(raw string) (Result, error) {
	var res Result

	text := strings.TrimSpace(raw)
	if idx := indexFold(text, invalidMarker); idx >= 0 {
		res.Invalid = true
		text = strings.TrimSpace(text[:idx] + text[idx+len(invalidMarker):])
	}
	lower := strings.ToLower(text)

	compact := strings.TrimSuffix(lower, "pts")
	compact = strings.Join(strings.Fields(compact), "")
	compact = strings.ReplaceAll(compact, ";", ":")
	compact = informalTime.ReplaceAllString(compact, "$1:$2")

	numeric := compact
	for i, c := range compact {
		if (c < '0' || c > '9') && c != '.' && c != ':' {
			numeric = compact[:i]
			res.OriginalSpecial = text
			break
		}
	}

	value, places, err := sexagesimal(numeric)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %q: %w", ErrUnparseableScore, raw, err)
	}
	res.Value = value
	res.DecimalPlaces = places
	return res, nil
}

// indexFold returns the byte offset in s of the first case-insensitive match
// of the ASCII word, or -1.
func indexFold(s, word string) int {
	for i := range s {
		if len(s)-i < len(word) {
			break
		}
		if strings.EqualFold(s[i:i+len(word)], word) {
			return i
		}
	}
	return -1
}

// sexagesimal accumulates "H:M:S", "M:S" or "S" into a single value.
// Decimal arithmetic keeps "1:28.37" and "88.37" on the same float64.
func sexagesimal(numeric string) (float64, int, error) {
	if numeric == "" {
		return 0, 0, errEmpty
	}
	if strings.Count(numeric, ".") > 1 {
		return 0, 0, errDecimalPoints
	}

	parts := strings.Split(numeric, ":")
	total := decimal.Zero
	multiplier := decimal.NewFromInt(1)
	for i := len(parts) - 1; i >= 0; i-- {
		part := parts[i]
		if part == "" || part == "." {
			return 0, 0, errEmptyComponent
		}
		d, err := decimal.NewFromString(part)
		if err != nil {
			return 0, 0, err
		}
		total = total.Add(d.Mul(multiplier))
		multiplier = multiplier.Mul(sixty)
	}

	places := 0
	if _, frac, ok := strings.Cut(numeric, "."); ok {
		places = len(frac)
	}
	return total.InexactFloat64(), places, nil
}

// Format renders value as sexagesimal text with components numbers
// (1: "SS.s", 2: "M:SS.ss", 3: "H:MM:SS.sss") and decimalPlaces digits
// after the point (capped at 3).
func Format(value float64, components, decimalPlaces int) string {
	components = max(components, 1)
	decimalPlaces = min(max(decimalPlaces, 0), 3)

	// Round first so 59.999 at two places carries into the minutes.
	rest := decimal.NewFromFloat(value).Round(int32(decimalPlaces))
	divisor := decimal.NewFromInt(1)
	for i := 1; i < components; i++ {
		divisor = divisor.Mul(sixty)
	}

	var b strings.Builder
	for i := 0; i < components-1; i++ {
		quotient := rest.Div(divisor).Floor()
		if i == 0 {
			b.WriteString(quotient.String())
		} else {
			b.WriteString(zeroPad(quotient.String(), 2))
		}
		b.WriteByte(':')
		rest = rest.Sub(quotient.Mul(divisor))
		divisor = divisor.Div(sixty)
	}

	seconds := rest.StringFixed(int32(decimalPlaces))
	if components > 1 {
		width := 2
		if decimalPlaces > 0 {
			width += 1 + decimalPlaces
		}
		seconds = zeroPad(seconds, width)
	}
	b.WriteString(seconds)
	return b.String()
}

func zeroPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
