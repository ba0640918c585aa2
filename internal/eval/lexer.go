// Package eval is a small arithmetic-expression evaluator for calculated
// fields. Expressions reference other fields' keys as bare identifiers plus
// an allow-listed Math function namespace:
//
//	(dose_a + dose_b) / 2
//	Math.sqrt(x) * 100
//
// Author-supplied expressions are evaluated by this closed interpreter,
// never by any host code-execution facility.
package eval

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
	tokComma
	tokDot
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex splits an expression into tokens. Unexpected characters are lexing
// errors; callers treat any error as "invalid expression", never a panic.
func lex(expr string) ([]token, error) {
	var toks []token
	runes := []rune(expr)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r >= '0' && r <= '9' || r == '.' && i+1 < len(runes) && isDigit(runes[i+1]):
			start := i
			seenDot := false
			for i < len(runes) && (isDigit(runes[i]) || runes[i] == '.' && !seenDot) {
				if runes[i] == '.' {
					seenDot = true
				}
				i++
			}
			toks = append(toks, token{kind: tokNumber, text: string(runes[start:i]), pos: start})
		case isIdentStart(r):
			start := i
			for i < len(runes) && isIdentPart(runes[i]) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: string(runes[start:i]), pos: start})
		default:
			kind, ok := operatorKind(r)
			if !ok {
				return nil, fmt.Errorf("unexpected character %q at position %d", r, i)
			}
			toks = append(toks, token{kind: kind, text: string(r), pos: i})
			i++
		}
	}
	return toks, nil
}

func operatorKind(r rune) (tokenKind, bool) {
	switch r {
	case '+':
		return tokPlus, true
	case '-':
		return tokMinus, true
	case '*':
		return tokStar, true
	case '/':
		return tokSlash, true
	case '(':
		return tokLParen, true
	case ')':
		return tokRParen, true
	case ',':
		return tokComma, true
	case '.':
		return tokDot, true
	}
	return 0, false
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

// Sources extracts the field keys an expression reads: every identifier
// token except the Math namespace and anything reached through it
// (Math.sqrt is a function call, not a field reference). Keys are
// de-duplicated preserving first-seen order. A lexing error yields no
// sources; evaluation will report the expression invalid.
func Sources(expr string) []string {
	toks, err := lex(strings.TrimSpace(expr))
	if err != nil {
		return nil
	}
	seen := make(map[string]bool)
	var keys []string
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.kind != tokIdent {
			continue
		}
		if t.text == mathNamespace {
			// Skip the ".member" that follows, if any.
			if i+2 < len(toks) && toks[i+1].kind == tokDot && toks[i+2].kind == tokIdent {
				i += 2
			}
			continue
		}
		if !seen[t.text] {
			seen[t.text] = true
			keys = append(keys, t.text)
		}
	}
	return keys
}
