package typeset

import (
	"html"
	"strings"
)

// applyFunction is the invisible U+2061 FUNCTION APPLICATION operator.
const applyFunction = "⁡"

// node is one element of the parsed math tree. variant carries the
// mathvariant inherited from an enclosing font command.
type node interface {
	write(b *strings.Builder, variant string)
}

type identNode struct {
	text    string
	variant string
}

func (n identNode) write(b *strings.Builder, variant string) {
	v := n.variant
	if variant != "" {
		v = variant
	}
	if v == "italic" && isSingleRune(n.text) {
		v = ""
	}
	writeToken(b, "mi", n.text, variantAttr(v))
}

type numberNode struct {
	text string
}

func (n numberNode) write(b *strings.Builder, variant string) {
	if variant == "normal" || variant == "italic" {
		variant = ""
	}
	writeToken(b, "mn", n.text, variantAttr(variant))
}

type opNode struct {
	text     string
	fence    bool
	stretchy bool
	// largeop marks sums and products whose limits sit above and below in
	// display style.
	largeop bool
}

func (n opNode) write(b *strings.Builder, _ string) {
	attrs := ""
	switch {
	case n.fence:
		attrs = ` fence="true"`
		if !n.stretchy {
			attrs += ` stretchy="false"`
		}
	case n.stretchy:
		attrs = ` stretchy="true"`
	case n.largeop:
		attrs = ` largeop="true" movablelimits="true"`
	}
	writeToken(b, "mo", n.text, attrs)
}

type textNode struct {
	text    string
	variant string
}

func (n textNode) write(b *strings.Builder, _ string) {
	writeToken(b, "mtext", n.text, variantAttr(n.variant))
}

type spaceNode struct {
	width   string
	newline bool
}

func (n spaceNode) write(b *strings.Builder, _ string) {
	if n.newline {
		b.WriteString(`<mspace linebreak="newline"></mspace>`)
		return
	}
	b.WriteString(`<mspace width="`)
	b.WriteString(n.width)
	b.WriteString(`"></mspace>`)
}

type rowNode struct {
	children []node
}

func (n rowNode) write(b *strings.Builder, variant string) {
	b.WriteString("<mrow>")
	for _, child := range n.children {
		child.write(b, variant)
	}
	b.WriteString("</mrow>")
}

type scriptNode struct {
	base node
	sup  node
	sub  node
}

func (n scriptNode) write(b *strings.Builder, variant string) {
	switch {
	case n.sup != nil && n.sub != nil:
		writeLayout(b, "msubsup", variant, n.base, n.sub, n.sup)
	case n.sup != nil:
		writeLayout(b, "msup", variant, n.base, n.sup)
	case n.sub != nil:
		writeLayout(b, "msub", variant, n.base, n.sub)
	default:
		n.base.write(b, variant)
	}
}

type fracNode struct {
	num  node
	den  node
	bare bool
}

func (n fracNode) write(b *strings.Builder, variant string) {
	if n.bare {
		b.WriteString(`<mfrac linethickness="0px">`)
		n.num.write(b, variant)
		n.den.write(b, variant)
		b.WriteString("</mfrac>")
		return
	}
	writeLayout(b, "mfrac", variant, n.num, n.den)
}

type sqrtNode struct {
	body  node
	index node
}

func (n sqrtNode) write(b *strings.Builder, variant string) {
	if n.index != nil {
		writeLayout(b, "mroot", variant, n.body, n.index)
		return
	}
	writeLayout(b, "msqrt", variant, n.body)
}

type accentNode struct {
	body node
	accent
}

func (n accentNode) write(b *strings.Builder, variant string) {
	tag, attr := "mover", ` accent="true"`
	if n.under {
		tag, attr = "munder", ` accentunder="true"`
	}
	b.WriteString("<" + tag + attr + ">")
	n.body.write(b, variant)
	opNode{text: n.mark, stretchy: n.stretchy}.write(b, variant)
	b.WriteString("</" + tag + ">")
}

type styledNode struct {
	variant string
	body    node
}

func (n styledNode) write(b *strings.Builder, _ string) {
	n.body.write(b, n.variant)
}

type tableNode struct {
	rows [][]node
	fence
}

func (n tableNode) write(b *strings.Builder, variant string) {
	b.WriteString("<mrow>")
	if n.open != "" {
		opNode{text: n.open, fence: true, stretchy: true}.write(b, variant)
	}
	b.WriteString(`<mtable rowspacing="0.16em" columnspacing="1em">`)
	for _, row := range n.rows {
		b.WriteString("<mtr>")
		for _, cell := range row {
			b.WriteString("<mtd>")
			cell.write(b, variant)
			b.WriteString("</mtd>")
		}
		b.WriteString("</mtr>")
	}
	b.WriteString("</mtable>")
	if n.close != "" {
		opNode{text: n.close, fence: true, stretchy: true}.write(b, variant)
	}
	b.WriteString("</mrow>")
}

func writeLayout(b *strings.Builder, tag, variant string, children ...node) {
	b.WriteString("<" + tag + ">")
	for _, child := range children {
		child.write(b, variant)
	}
	b.WriteString("</" + tag + ">")
}

func writeToken(b *strings.Builder, tag, text, attrs string) {
	b.WriteString("<" + tag + attrs + ">")
	b.WriteString(html.EscapeString(text))
	b.WriteString("</" + tag + ">")
}

func variantAttr(variant string) string {
	if variant == "" {
		return ""
	}
	return ` mathvariant="` + variant + `"`
}

func isSingleRune(s string) bool {
	n := 0
	for range s {
		n++
		if n > 1 {
			return false
		}
	}
	return n == 1
}
