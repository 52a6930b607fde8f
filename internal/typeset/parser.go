package typeset

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-latex/latex/mtex/symbols"
)

// maxDepth bounds group nesting so hostile input cannot exhaust the stack.
const maxDepth = 128

// ParseError reports TeX the typesetter could not parse.
type ParseError struct {
	Message  string
	Position int
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e == nil {
		return "parse error"
	}
	if e.Position < 0 {
		return "parse error: " + e.Message
	}
	return fmt.Sprintf("parse error: %s at position %d", e.Message, e.Position+1)
}

type parser struct {
	toks  []token
	pos   int
	depth int
}

type stopFunc func(token) bool

func parse(src string) ([]node, error) {
	p := &parser{toks: lex(src)}
	nodes, err := p.parseExpression(nil)
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorf(tok, "Expected 'EOF', got '%s'", describe(tok))
	}
	return nodes, nil
}

// peek returns the next significant token; spaces are insignificant in math
// mode.
func (p *parser) peek() token {
	for p.toks[p.pos].kind == tokSpace {
		p.pos++
	}
	return p.toks[p.pos]
}

func (p *parser) next() token {
	tok := p.peek()
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

// raw returns the next token including spaces.
func (p *parser) raw() token {
	return p.toks[p.pos]
}

func (p *parser) advance() {
	if p.toks[p.pos].kind != tokEOF {
		p.pos++
	}
}

func (p *parser) errorf(tok token, format string, args ...any) error {
	return &ParseError{Message: fmt.Sprintf(format, args...), Position: tok.pos}
}

func (p *parser) enter(tok token) error {
	p.depth++
	if p.depth > maxDepth {
		return p.errorf(tok, "Too many nested groups")
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

// parseExpression reads atoms until EOF, a closing brace, \right, \end, or a
// token accepted by stop.
func (p *parser) parseExpression(stop stopFunc) ([]node, error) {
	var nodes []node
	for {
		tok := p.peek()
		if tok.kind == tokEOF || tok.kind == tokClose {
			return nodes, nil
		}
		if tok.kind == tokCommand && (tok.text == "right" || tok.text == "end") {
			return nodes, nil
		}
		if stop != nil && stop(tok) {
			return nodes, nil
		}
		atom, apply, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if atom != nil {
			nodes = append(nodes, atom)
		}
		if apply {
			nodes = append(nodes, opNode{text: applyFunction})
		}
	}
}

// parseAtom reads a base with its scripts. apply reports whether the base was
// a function name that needs a function application mark after it.
func (p *parser) parseAtom() (node, bool, error) {
	base, apply, err := p.parseBase()
	if err != nil {
		return nil, false, err
	}
	if base == nil {
		return nil, false, nil
	}
	var sup, sub node
	for {
		tok := p.peek()
		switch {
		case tok.kind == tokSup:
			if sup != nil {
				return nil, false, p.errorf(tok, "Double superscript")
			}
			p.next()
			if sup, err = p.parseArgument("^"); err != nil {
				return nil, false, err
			}
		case tok.kind == tokSub:
			if sub != nil {
				return nil, false, p.errorf(tok, "Double subscript")
			}
			p.next()
			if sub, err = p.parseArgument("_"); err != nil {
				return nil, false, err
			}
		case tok.kind == tokChar && tok.text == "'":
			if sup != nil {
				return nil, false, p.errorf(tok, "Double superscript")
			}
			if sup, err = p.parsePrimes(); err != nil {
				return nil, false, err
			}
		default:
			if sup == nil && sub == nil {
				return base, apply, nil
			}
			return scriptNode{base: base, sup: sup, sub: sub}, apply, nil
		}
	}
}

// parsePrimes collects x'' and x'^2 into one superscript.
func (p *parser) parsePrimes() (node, error) {
	var primes []node
	for {
		tok := p.peek()
		if tok.kind != tokChar || tok.text != "'" {
			break
		}
		p.next()
		primes = append(primes, opNode{text: "′"})
	}
	if p.peek().kind == tokSup {
		p.next()
		arg, err := p.parseArgument("^")
		if err != nil {
			return nil, err
		}
		primes = append(primes, arg)
	}
	if len(primes) == 1 {
		return primes[0], nil
	}
	return rowNode{children: primes}, nil
}

func (p *parser) parseBase() (node, bool, error) {
	tok := p.peek()
	switch tok.kind {
	case tokOpen:
		n, err := p.parseGroup()
		return n, false, err
	case tokSup, tokSub:
		return rowNode{}, false, nil
	case tokAmp:
		return nil, false, p.errorf(tok, "Unexpected '&'")
	case tokCommand:
		p.next()
		return p.parseCommand(tok)
	case tokChar:
		p.next()
		return p.parseChar(tok), false, nil
	}
	return nil, false, p.errorf(tok, "Unexpected '%s'", describe(tok))
}

// parseArgument reads one argument for a command or script: a braced group or
// a single token.
func (p *parser) parseArgument(owner string) (node, error) {
	tok := p.peek()
	if err := p.enter(tok); err != nil {
		return nil, err
	}
	defer p.leave()
	switch tok.kind {
	case tokOpen:
		return p.parseGroup()
	case tokChar:
		p.next()
		return p.parseSingleChar(tok), nil
	case tokCommand:
		if tok.text == "right" || tok.text == "end" {
			break
		}
		p.next()
		n, _, err := p.parseCommand(tok)
		if err != nil {
			return nil, err
		}
		if n == nil {
			return rowNode{}, nil
		}
		return n, nil
	}
	return nil, p.errorf(tok, "Expected group after '%s'", owner)
}

func (p *parser) parseGroup() (node, error) {
	open := p.next()
	if err := p.enter(open); err != nil {
		return nil, err
	}
	defer p.leave()
	children, err := p.parseExpression(nil)
	if err != nil {
		return nil, err
	}
	if tok := p.next(); tok.kind != tokClose {
		return nil, p.errorf(tok, "Expected '}', got '%s'", describe(tok))
	}
	return rowNode{children: children}, nil
}

// parseChar handles a character in base position, merging digit runs into
// one number.
func (p *parser) parseChar(tok token) node {
	if !isDigit(tok.text) && !(tok.text == "." && isDigit(p.raw().text) && p.raw().kind == tokChar) {
		return p.parseSingleChar(tok)
	}
	var b strings.Builder
	b.WriteString(tok.text)
	for {
		next := p.raw()
		if next.kind != tokChar {
			break
		}
		if isDigit(next.text) {
			b.WriteString(next.text)
			p.advance()
			continue
		}
		if next.text == "." && p.pos+1 < len(p.toks) && p.toks[p.pos+1].kind == tokChar && isDigit(p.toks[p.pos+1].text) {
			b.WriteString(next.text)
			p.advance()
			continue
		}
		break
	}
	return numberNode{text: b.String()}
}

func (p *parser) parseSingleChar(tok token) node {
	r, _ := utf8.DecodeRuneInString(tok.text)
	switch {
	case isDigit(tok.text):
		return numberNode{text: tok.text}
	case unicode.IsLetter(r):
		return identNode{text: tok.text}
	case tok.text == "~":
		return spaceNode{width: "0.3333em"}
	}
	if op, ok := charOperators[tok.text]; ok {
		return opNode{text: op, fence: isFenceChar(tok.text)}
	}
	return opNode{text: tok.text}
}

func (p *parser) parseCommand(tok token) (node, bool, error) {
	name := tok.text
	if sym, ok := letters[name]; ok {
		return identNode{text: sym}, false, nil
	}
	if sym, ok := uprightLetters[name]; ok {
		return identNode{text: sym, variant: "normal"}, false, nil
	}
	if sym, ok := operators[name]; ok {
		return opNode{text: sym, largeop: symbols.OverUnderSymbols.Has(`\`+name)}, false, nil
	}
	if symbols.FunctionNames.Has(name) {
		return identNode{text: name}, true, nil
	}
	if width, ok := spaces[name]; ok {
		return spaceNode{width: width}, false, nil
	}
	if ignored[name] {
		return nil, false, nil
	}
	if variant, ok := fonts[name]; ok {
		body, err := p.parseArgument("\\" + name)
		if err != nil {
			return nil, false, err
		}
		return styledNode{variant: variant, body: body}, false, nil
	}
	if variant, ok := textFonts[name]; ok {
		text, err := p.parseText("\\" + name)
		if err != nil {
			return nil, false, err
		}
		return textNode{text: text, variant: variant}, false, nil
	}
	if a, ok := accents[name]; ok {
		body, err := p.parseArgument("\\" + name)
		if err != nil {
			return nil, false, err
		}
		return accentNode{body: body, accent: a}, false, nil
	}
	if sizedDelimiters[name] {
		delim, err := p.parseDelimiter(name)
		if err != nil {
			return nil, false, err
		}
		return opNode{text: delim, fence: true, stretchy: true}, false, nil
	}

	switch name {
	case "frac", "dfrac", "tfrac", "cfrac":
		return p.parseFrac(name, false)
	case "binom", "dbinom", "tbinom":
		frac, _, err := p.parseFrac(name, true)
		if err != nil {
			return nil, false, err
		}
		return rowNode{children: []node{
			opNode{text: "(", fence: true, stretchy: true},
			frac,
			opNode{text: ")", fence: true, stretchy: true},
		}}, false, nil
	case "sqrt":
		n, err := p.parseSqrt()
		return n, false, err
	case "left":
		n, err := p.parseLeftRight(tok)
		return n, false, err
	case "begin":
		n, err := p.parseEnvironment(tok)
		return n, false, err
	case "operatorname":
		if next := p.raw(); next.kind == tokChar && next.text == "*" {
			p.advance()
		}
		text, err := p.parseText("\\operatorname")
		if err != nil {
			return nil, false, err
		}
		return identNode{text: text, variant: "normal"}, true, nil
	case "\\", "newline", "cr":
		return spaceNode{newline: true}, false, nil
	case "not":
		operand, err := p.parseArgument("\\not")
		if err != nil {
			return nil, false, err
		}
		return rowNode{children: []node{operand, opNode{text: "̸"}}}, false, nil
	}
	return nil, false, p.errorf(tok, "Undefined control sequence: \\%s", name)
}

func (p *parser) parseFrac(name string, bare bool) (node, bool, error) {
	owner := "\\" + name
	num, err := p.parseArgument(owner)
	if err != nil {
		return nil, false, err
	}
	den, err := p.parseArgument(owner)
	if err != nil {
		return nil, false, err
	}
	return fracNode{num: num, den: den, bare: bare}, false, nil
}

func (p *parser) parseSqrt() (node, error) {
	var index node
	if tok := p.peek(); tok.kind == tokChar && tok.text == "[" {
		p.next()
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		children, err := p.parseExpression(func(t token) bool {
			return t.kind == tokChar && t.text == "]"
		})
		p.leave()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokChar || closing.text != "]" {
			return nil, p.errorf(closing, "Expected ']', got '%s'", describe(closing))
		}
		index = rowNode{children: children}
	}
	body, err := p.parseArgument("\\sqrt")
	if err != nil {
		return nil, err
	}
	return sqrtNode{body: body, index: index}, nil
}

func (p *parser) parseDelimiter(owner string) (string, error) {
	tok := p.next()
	switch tok.kind {
	case tokChar:
		if delim, ok := delimiterChars[tok.text]; ok {
			return delim, nil
		}
	case tokCommand:
		if delim, ok := delimiterCommands[tok.text]; ok {
			return delim, nil
		}
	}
	return "", p.errorf(tok, "Invalid delimiter '%s' after '\\%s'", describe(tok), owner)
}

func (p *parser) parseLeftRight(left token) (node, error) {
	open, err := p.parseDelimiter("left")
	if err != nil {
		return nil, err
	}
	if err := p.enter(left); err != nil {
		return nil, err
	}
	body, err := p.parseExpression(nil)
	p.leave()
	if err != nil {
		return nil, err
	}
	if tok := p.next(); tok.kind != tokCommand || tok.text != "right" {
		return nil, p.errorf(tok, "Expected '\\right', got '%s'", describe(tok))
	}
	closing, err := p.parseDelimiter("right")
	if err != nil {
		return nil, err
	}
	children := make([]node, 0, len(body)+2)
	if open != "" {
		children = append(children, opNode{text: open, fence: true, stretchy: true})
	}
	children = append(children, body...)
	if closing != "" {
		children = append(children, opNode{text: closing, fence: true, stretchy: true})
	}
	return rowNode{children: children}, nil
}

func (p *parser) parseEnvironment(begin token) (node, error) {
	name, err := p.parseText("\\begin")
	if err != nil {
		return nil, err
	}
	env, ok := environments[name]
	if !ok {
		return nil, p.errorf(begin, "No such environment: %s", name)
	}
	if name == "array" {
		if _, err := p.parseText("\\begin{array}"); err != nil {
			return nil, err
		}
	}
	if err := p.enter(begin); err != nil {
		return nil, err
	}
	defer p.leave()

	endOfCell := func(t token) bool {
		return t.kind == tokAmp || (t.kind == tokCommand && t.text == "\\")
	}
	var rows [][]node
	var row []node
	for {
		cell, err := p.parseExpression(endOfCell)
		if err != nil {
			return nil, err
		}
		row = append(row, rowNode{children: cell})
		tok := p.next()
		switch {
		case tok.kind == tokAmp:
			continue
		case tok.kind == tokCommand && tok.text == "\\":
			rows = append(rows, row)
			row = nil
			continue
		case tok.kind == tokCommand && tok.text == "end":
			closing, err := p.parseText("\\end")
			if err != nil {
				return nil, err
			}
			if closing != name {
				return nil, p.errorf(tok, "Mismatched environment: \\begin{%s} ended by \\end{%s}", name, closing)
			}
			if !isEmptyRow(row) || len(rows) == 0 {
				rows = append(rows, row)
			}
			return tableNode{rows: rows, fence: env}, nil
		default:
			return nil, p.errorf(tok, "Expected '\\end{%s}', got '%s'", name, describe(tok))
		}
	}
}

// parseText reads a braced argument verbatim, as used by \text and
// environment names.
func (p *parser) parseText(owner string) (string, error) {
	open := p.peek()
	if open.kind != tokOpen {
		return "", p.errorf(open, "Expected group after '%s'", owner)
	}
	p.next()
	var b strings.Builder
	depth := 0
	for {
		tok := p.raw()
		p.advance()
		switch tok.kind {
		case tokEOF:
			return "", p.errorf(tok, "Expected '}', got 'EOF'")
		case tokOpen:
			depth++
		case tokClose:
			if depth == 0 {
				return b.String(), nil
			}
			depth--
		case tokCommand:
			if width, ok := spaces[tok.text]; ok && width != "" && tok.text != "!" {
				b.WriteByte(' ')
				continue
			}
			if sym, ok := uprightLetters[tok.text]; ok && len(tok.text) == 1 {
				b.WriteString(sym)
				continue
			}
			if tok.text == "{" || tok.text == "}" || tok.text == "\\" {
				b.WriteString(tok.text)
				continue
			}
			return "", p.errorf(tok, "Undefined control sequence: \\%s", tok.text)
		default:
			b.WriteString(tok.text)
		}
	}
}

func isEmptyRow(row []node) bool {
	if len(row) != 1 {
		return len(row) == 0
	}
	r, ok := row[0].(rowNode)
	return ok && len(r.children) == 0
}

func isDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}

func isFenceChar(s string) bool {
	switch s {
	case "(", ")", "[", "]", "|":
		return true
	}
	return false
}

func describe(tok token) string {
	switch tok.kind {
	case tokEOF:
		return "EOF"
	case tokCommand:
		return "\\" + tok.text
	}
	return tok.text
}
