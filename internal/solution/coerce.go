package solution

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// objectText is what the browser client has always displayed for an object
// element, so lists keep one entry per element whatever its type.
const objectText = "[object Object]"

// maxNesting bounds how many nested array levels are joined. Each level
// re-scans its own raw text, so deeper arrays are kept as raw JSON instead.
const maxNesting = 32

func coerceElements(array gjson.Result) []string {
	elements := array.Array()
	out := make([]string, 0, len(elements))
	for _, element := range elements {
		out = append(out, coerce(element, 1))
	}
	return out
}

func coerce(value gjson.Result, depth int) string {
	switch value.Type {
	case gjson.String:
		return value.Str
	case gjson.Number:
		return formatNumber(value.Num)
	case gjson.True:
		return "true"
	case gjson.False:
		return "false"
	case gjson.Null:
		return "null"
	}
	if value.IsArray() {
		if depth > maxNesting {
			return value.Raw
		}
		return joinElements(value, depth)
	}
	return objectText
}

// joinElements renders a nested array as its comma-joined elements, with null
// elements left blank.
func joinElements(array gjson.Result, depth int) string {
	elements := array.Array()
	parts := make([]string, len(elements))
	for i, element := range elements {
		if element.Type == gjson.Null {
			continue
		}
		parts[i] = coerce(element, depth+1)
	}
	return strings.Join(parts, ",")
}

// formatNumber prints a float in the shortest form that round-trips, using
// exponent notation outside [1e-6, 1e21).
func formatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return trimExponent(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// trimExponent rewrites Go's two-digit exponent ("1e-07") to the minimal form
// ("1e-7").
func trimExponent(s string) string {
	idx := strings.IndexByte(s, 'e')
	if idx < 0 || idx+2 >= len(s) {
		return s
	}
	mantissa, sign, digits := s[:idx], s[idx+1:idx+2], strings.TrimLeft(s[idx+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}
