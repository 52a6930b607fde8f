package typeset

import (
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokChar
	tokCommand
	tokOpen
	tokClose
	tokSup
	tokSub
	tokAmp
	tokSpace
)

// token is one lexical unit. For commands, text holds the name without the
// leading backslash ("frac", ",", "\\").
type token struct {
	kind tokenKind
	text string
	pos  int
}

func lex(src string) []token {
	toks := make([]token, 0, len(src)+1)
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		start := i
		i += size
		switch {
		case r == '\\':
			name, n := scanCommand(src[i:])
			i += n
			toks = append(toks, token{kind: tokCommand, text: name, pos: start})
		case r == '%':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case r == '{':
			toks = append(toks, token{kind: tokOpen, text: "{", pos: start})
		case r == '}':
			toks = append(toks, token{kind: tokClose, text: "}", pos: start})
		case r == '^':
			toks = append(toks, token{kind: tokSup, text: "^", pos: start})
		case r == '_':
			toks = append(toks, token{kind: tokSub, text: "_", pos: start})
		case r == '&':
			toks = append(toks, token{kind: tokAmp, text: "&", pos: start})
		case unicode.IsSpace(r):
			for i < len(src) {
				next, n := utf8.DecodeRuneInString(src[i:])
				if !unicode.IsSpace(next) {
					break
				}
				i += n
			}
			toks = append(toks, token{kind: tokSpace, text: " ", pos: start})
		case r == utf8.RuneError && size == 1:
			toks = append(toks, token{kind: tokChar, text: "�", pos: start})
		default:
			toks = append(toks, token{kind: tokChar, text: src[start:i], pos: start})
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(src)})
}

// scanCommand reads a control sequence name following a backslash: a run of
// ASCII letters, or a single non-letter character. A trailing backslash yields
// an empty name.
func scanCommand(rest string) (string, int) {
	n := 0
	for n < len(rest) && isASCIILetter(rest[n]) {
		n++
	}
	if n > 0 {
		return rest[:n], n
	}
	if rest == "" {
		return "", 0
	}
	_, size := utf8.DecodeRuneInString(rest)
	return rest[:size], size
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
