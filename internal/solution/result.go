// Package solution models the solving service's response payload and reduces
// it to an ordered list of expression strings.
//
// The service's `result` field arrives in one of three legal encodings: a JSON
// array of strings, a plain string, or a string that itself holds a JSON
// array. DecodeAPIResult resolves the encoding once into a Result; Normalize
// turns that Result into the canonical expression list.
package solution

import (
	"github.com/tidwall/gjson"
)

// Kind discriminates the legal encodings of the result field.
type Kind int

const (
	// KindEmpty means the field was absent or had an unsupported shape.
	KindEmpty Kind = iota
	// KindList means the field was an array; Items holds its coerced elements.
	KindList
	// KindRaw means the field was a string; Text holds it untouched.
	KindRaw
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindRaw:
		return "raw"
	default:
		return "empty"
	}
}

// Result is the validated form of the result field.
type Result struct {
	Kind  Kind
	Items []string
	Text  string
}

// Empty returns a result with no expressions.
func Empty() Result {
	return Result{Kind: KindEmpty}
}

// List returns a result holding already-separated expressions.
func List(items ...string) Result {
	copied := make([]string, len(items))
	copy(copied, items)
	return Result{Kind: KindList, Items: copied}
}

// Raw returns a result holding the string form of the field.
func Raw(text string) Result {
	return Result{Kind: KindRaw, Text: text}
}

// APIResult is the response body of the solving service.
type APIResult struct {
	Result Result
	Error  string
	// FigureURL points at a plot of the solved function when the service
	// produced one. It is relative to the service base URL.
	FigureURL string
}

// DecodeAPIResult validates a response body into an APIResult. It never fails:
// invalid JSON, non-object bodies and unsupported field shapes all decode to
// the zero-information value for the affected field.
func DecodeAPIResult(body []byte) APIResult {
	if !gjson.ValidBytes(body) {
		return APIResult{Result: Empty()}
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return APIResult{Result: Empty()}
	}
	return APIResult{
		Result:    decodeResult(root.Get("result")),
		Error:     optionalString(root.Get("error")),
		FigureURL: optionalString(root.Get("figure_url")),
	}
}

func decodeResult(field gjson.Result) Result {
	switch {
	case !field.Exists():
		return Empty()
	case field.Type == gjson.String:
		return Raw(field.Str)
	case field.IsArray():
		return Result{Kind: KindList, Items: coerceElements(field)}
	default:
		return Empty()
	}
}

func optionalString(field gjson.Result) string {
	if field.Type != gjson.String {
		return ""
	}
	return field.Str
}
