package solution

import (
	"strings"
	"unicode"

	"github.com/tidwall/gjson"
)

// Normalize reduces a Result to the ordered list of expressions it carries.
// The returned slice is never nil.
//
// A raw string is trimmed and, when it holds a JSON array, expanded into that
// array's elements. Any other raw string, including one that parses as a JSON
// number, object or boolean, becomes a single entry holding the trimmed text
// exactly as received.
func Normalize(r Result) []string {
	switch r.Kind {
	case KindList:
		out := make([]string, len(r.Items))
		copy(out, r.Items)
		return out
	case KindRaw:
		return normalizeRaw(r.Text)
	default:
		return []string{}
	}
}

func normalizeRaw(text string) []string {
	trimmed := strings.TrimFunc(text, isTrimmable)
	if trimmed == "" {
		return []string{}
	}
	if !gjson.Valid(trimmed) {
		return []string{trimmed}
	}
	parsed := gjson.Parse(trimmed)
	if !parsed.IsArray() {
		return []string{trimmed}
	}
	return coerceElements(parsed)
}

// isTrimmable matches Unicode white space plus the byte order mark, which
// editors and proxies occasionally leave in front of a payload.
func isTrimmable(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
