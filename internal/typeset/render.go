// Package typeset renders TeX math expressions to MathML markup.
//
// It understands the subset of TeX a symbolic solver emits: numbers,
// identifiers, operators, scripts, fractions, roots, delimiters, fonts,
// accents, text and matrix-like environments. Input outside that subset is
// reported as a parse error, or rendered as an error span when ThrowOnError is
// off.
package typeset

import (
	"errors"
	"html"
	"log"
	"strings"
)

// Variable is the left-hand side every solution is rendered against.
const Variable = "x"

const errorColor = "#cc0000"

// Options controls RenderToString.
type Options struct {
	// ThrowOnError returns parse errors instead of an error span.
	ThrowOnError bool
}

// RenderToString converts tex to MathML wrapped in a katex span. With
// ThrowOnError unset, parse failures produce an error span and a nil error.
func RenderToString(tex string, opts Options) (string, error) {
	nodes, err := parse(tex)
	if err != nil {
		var perr *ParseError
		if opts.ThrowOnError || !errors.As(err, &perr) {
			return "", err
		}
		return errorSpan(tex, perr), nil
	}

	var b strings.Builder
	b.WriteString(`<span class="katex"><math xmlns="http://www.w3.org/1998/Math/MathML"><semantics>`)
	rowNode{children: nodes}.write(&b, "")
	b.WriteString(`<annotation encoding="application/x-tex">`)
	b.WriteString(html.EscapeString(tex))
	b.WriteString("</annotation></semantics></math></span>")
	return b.String(), nil
}

func errorSpan(tex string, perr *ParseError) string {
	var b strings.Builder
	b.WriteString(`<span class="katex-error" title="`)
	b.WriteString(html.EscapeString("ParseError: KaTeX " + perr.Error()))
	b.WriteString(`" style="color:`)
	b.WriteString(errorColor)
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(tex))
	b.WriteString("</span>")
	return b.String()
}

// Outcome is the result of typesetting one solution expression. Markup is
// escaped MathML that is safe to embed in a page verbatim; it is empty when
// OK is false.
type Outcome struct {
	OK     bool   `json:"ok"`
	Markup string `json:"markup,omitempty"`
}

type renderFunc func(tex string, opts Options) (string, error)

// Render typesets "x = expr" inline. Any failure, including a panic in the
// renderer or empty output, yields a failed Outcome rather than an error.
func Render(expr string) Outcome {
	return renderWith(expr, RenderToString)
}

func renderWith(expr string, fn renderFunc) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("typeset: render %q panicked: %v", expr, r)
			out = Outcome{}
		}
	}()

	markup, err := fn(Variable+" = "+strings.TrimSpace(expr), Options{})
	if err != nil || markup == "" {
		return Outcome{}
	}
	return Outcome{OK: true, Markup: markup}
}

// RenderAll renders each expression independently, in order. A failure in
// one entry never affects another. Repeated expressions are rendered once.
func RenderAll(exprs []string) []Outcome {
	outcomes := make([]Outcome, len(exprs))
	seen := make(map[string]Outcome, len(exprs))
	for i, expr := range exprs {
		if out, ok := seen[expr]; ok {
			outcomes[i] = out
			continue
		}
		out := Render(expr)
		seen[expr] = out
		outcomes[i] = out
	}
	return outcomes
}
