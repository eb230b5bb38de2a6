// Package pyparse parses the Python stub dialect used by the array-API
// corpus into pyast trees.
//
// The grammar is deliberately narrow: decorated functions and classes,
// assignments, imports, and bare expressions: the declaration shapes that
// actually occur in stub files. Statement forms outside the dialect are
// captured as pyast.BadStmt rather than failing the parse, so the engine's
// skip-and-diagnose policy has something to report.
package pyparse

import (
	"strings"

	"github.com/dataapis/protogen/errors"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokName
	tokNumber
	tokString
	tokOp
	tokNewline
	tokIndent
	tokDedent
)

type token struct {
	kind tokenKind
	text string // decoded content for strings, raw text otherwise
	line int
}

// multi-character operators, longest first
var operators = []string{
	"**=", "//=", ">>=", "<<=", "...",
	"->", "**", "//", ">>", "<<", "<=", ">=", "==", "!=", ":=",
	"+=", "-=", "*=", "/=", "|=", "&=", "^=", "%=", "@=",
}

type lexError struct {
	msg  string
	line int
}

func lex(src []byte) ([]token, error) {
	var toks []token
	indents := []int{0}
	i, line := 0, 1
	depth := 0        // bracket nesting; newlines inside brackets are joins
	atLineStart := true

	emit := func(kind tokenKind, text string) {
		toks = append(toks, token{kind: kind, text: text, line: line})
	}

	for i < len(src) {
		if atLineStart && depth == 0 {
			col := 0
			for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
				if src[i] == '\t' {
					col += 8 - col%8
				} else {
					col++
				}
				i++
			}
			if i >= len(src) {
				break
			}
			if src[i] == '\n' {
				i++
				line++
				continue
			}
			if src[i] == '#' {
				for i < len(src) && src[i] != '\n' {
					i++
				}
				continue
			}
			top := indents[len(indents)-1]
			switch {
			case col > top:
				indents = append(indents, col)
				emit(tokIndent, "")
			case col < top:
				for len(indents) > 1 && indents[len(indents)-1] > col {
					indents = indents[:len(indents)-1]
					emit(tokDedent, "")
				}
				if indents[len(indents)-1] != col {
					return nil, errors.Wrapf(errors.ErrParse,
						"line %d: inconsistent indentation", line)
				}
			}
			atLineStart = false
			continue
		}

		c := src[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '#':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '\n':
			i++
			line++
			if depth == 0 {
				emit(tokNewline, "")
				atLineStart = true
			}
		case c == '\\' && i+1 < len(src) && src[i+1] == '\n':
			i += 2
			line++
		case isNameStart(c):
			start := i
			for i < len(src) && isNameCont(src[i]) {
				i++
			}
			word := string(src[start:i])
			if isStringPrefix(word) && i < len(src) && (src[i] == '\'' || src[i] == '"') {
				raw := strings.ContainsAny(strings.ToLower(word), "r")
				s, n, lines, err := scanString(src[i:], raw)
				if err != nil {
					return nil, errors.Wrapf(err, "line %d", line)
				}
				emit(tokString, s)
				i += n
				line += lines
				continue
			}
			emit(tokName, word)
		case c >= '0' && c <= '9' || c == '.' && i+1 < len(src) && src[i+1] >= '0' && src[i+1] <= '9':
			start := i
			i = scanNumber(src, i)
			emit(tokNumber, string(src[start:i]))
		case c == '\'' || c == '"':
			s, n, lines, err := scanString(src[i:], false)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
			emit(tokString, s)
			i += n
			line += lines
		default:
			if op, n := matchOperator(src[i:]); n > 0 {
				switch op {
				case "(", "[", "{":
					depth++
				case ")", "]", "}":
					if depth > 0 {
						depth--
					}
				}
				emit(tokOp, op)
				i += n
				continue
			}
			return nil, errors.Wrapf(errors.ErrParse,
				"line %d: unexpected character %q", line, c)
		}
	}

	if len(toks) > 0 && toks[len(toks)-1].kind != tokNewline {
		emit(tokNewline, "")
	}
	for len(indents) > 1 {
		indents = indents[:len(indents)-1]
		emit(tokDedent, "")
	}
	emit(tokEOF, "")
	return toks, nil
}

func isNameStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

func isNameCont(c byte) bool {
	return isNameStart(c) || c >= '0' && c <= '9'
}

func isStringPrefix(word string) bool {
	if len(word) > 2 {
		return false
	}
	for _, r := range strings.ToLower(word) {
		switch r {
		case 'r', 'b', 'u', 'f':
		default:
			return false
		}
	}
	return true
}

func scanNumber(src []byte, i int) int {
	for i < len(src) {
		c := src[i]
		switch {
		case c >= '0' && c <= '9' || c == '.' || c == '_' ||
			c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
			// Exponent sign is part of the literal: 1e-5.
			if (c == 'e' || c == 'E') && i+1 < len(src) && (src[i+1] == '+' || src[i+1] == '-') {
				i++
			}
			i++
		default:
			return i
		}
	}
	return i
}

func matchOperator(src []byte) (string, int) {
	for _, op := range operators {
		if len(src) >= len(op) && string(src[:len(op)]) == op {
			return op, len(op)
		}
	}
	switch src[0] {
	case '+', '-', '*', '/', '%', '@', '<', '>', '=', '(', ')', '[', ']',
		'{', '}', ',', ':', '.', ';', '|', '&', '^', '~':
		return string(src[0]), 1
	}
	return "", 0
}

// scanString consumes a string literal starting at the opening quote and
// returns the decoded content, bytes consumed, and newlines crossed.
func scanString(src []byte, raw bool) (string, int, int, error) {
	quote := src[0]
	triple := len(src) >= 3 && src[1] == quote && src[2] == quote

	var sb strings.Builder
	lines := 0
	i := 1
	if triple {
		i = 3
	}
	for i < len(src) {
		c := src[i]
		if c == quote {
			if !triple {
				return sb.String(), i + 1, lines, nil
			}
			if i+2 < len(src) && src[i+1] == quote && src[i+2] == quote {
				return sb.String(), i + 3, lines, nil
			}
			sb.WriteByte(c)
			i++
			continue
		}
		if c == '\n' {
			if !triple {
				return "", 0, 0, errors.Wrap(errors.ErrParse, "unterminated string literal")
			}
			sb.WriteByte(c)
			lines++
			i++
			continue
		}
		if c == '\\' && !raw && i+1 < len(src) {
			esc := src[i+1]
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\', '\'', '"':
				sb.WriteByte(esc)
			case '\n':
				lines++
			default:
				sb.WriteByte('\\')
				sb.WriteByte(esc)
			}
			i += 2
			continue
		}
		sb.WriteByte(c)
		i++
	}
	return "", 0, 0, errors.Wrap(errors.ErrParse, "unterminated string literal")
}
