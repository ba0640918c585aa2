package eval

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// mathNamespace is the reserved identifier for the math function/constant
// namespace; it is never treated as a field key.
const mathNamespace = "Math"

// mathFuncs is the closed set of callable Math members.
var mathFuncs = map[string]func(args []float64) (float64, error){
	"abs":   unary(math.Abs),
	"sqrt":  unary(math.Sqrt),
	"exp":   unary(math.Exp),
	"log":   unary(math.Log),
	"log10": unary(math.Log10),
	"log2":  unary(math.Log2),
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"floor": unary(math.Floor),
	"ceil":  unary(math.Ceil),
	"round": unary(math.Round),
	"trunc": unary(math.Trunc),
	"pow": func(args []float64) (float64, error) {
		if len(args) != 2 {
			return 0, fmt.Errorf("Math.pow expects 2 arguments, got %d", len(args))
		}
		return math.Pow(args[0], args[1]), nil
	},
	"min": variadic(math.Min),
	"max": variadic(math.Max),
}

// mathConsts is the closed set of Math constants.
var mathConsts = map[string]float64{
	"PI": math.Pi,
	"E":  math.E,
}

func unary(fn func(float64) float64) func([]float64) (float64, error) {
	return func(args []float64) (float64, error) {
		if len(args) != 1 {
			return 0, fmt.Errorf("expected 1 argument, got %d", len(args))
		}
		return fn(args[0]), nil
	}
}

func variadic(fn func(float64, float64) float64) func([]float64) (float64, error) {
	return func(args []float64) (float64, error) {
		if len(args) == 0 {
			return 0, fmt.Errorf("expected at least 1 argument")
		}
		acc := args[0]
		for _, a := range args[1:] {
			acc = fn(acc, a)
		}
		return acc, nil
	}
}

// Evaluate computes an arithmetic expression with the given variables bound.
// Supported syntax: numeric literals, +, -, *, /, unary minus, parentheses,
// bare identifiers resolved from vars, and the Math namespace. The result
// may be non-finite (division by zero); callers decide how to surface that.
func Evaluate(expr string, vars map[string]float64) (float64, error) {
	toks, err := lex(strings.TrimSpace(expr))
	if err != nil {
		return 0, err
	}
	if len(toks) == 0 {
		return 0, fmt.Errorf("empty expression")
	}
	p := &parser{toks: toks, vars: vars}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.toks) {
		t := p.toks[p.pos]
		return 0, fmt.Errorf("unexpected %q at position %d", t.text, t.pos)
	}
	return v, nil
}

// Round rounds to the given number of decimal places unless the value is
// already an integer, mirroring how calculated fields display results.
func Round(v float64, precision int) float64 {
	if v == math.Trunc(v) {
		return v
	}
	if precision < 0 {
		precision = 0
	}
	shift := math.Pow(10, float64(precision))
	return math.Round(v*shift) / shift
}

// parser is a recursive-descent evaluator over the token stream.
//
//	expr   = term { ("+" | "-") term }
//	term   = unary { ("*" | "/") unary }
//	unary  = "-" unary | primary
//	primary = NUMBER | IDENT | "Math" "." IDENT [ "(" args ")" ] | "(" expr ")"
type parser struct {
	toks []token
	pos  int
	vars map[string]float64
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokPlus && t.kind != tokMinus {
			return v, nil
		}
		p.pos++
		rhs, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if t.kind == tokPlus {
			v += rhs
		} else {
			v -= rhs
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	v, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokStar && t.kind != tokSlash {
			return v, nil
		}
		p.pos++
		rhs, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if t.kind == tokStar {
			v *= rhs
		} else {
			v /= rhs
		}
	}
}

func (p *parser) parseUnary() (float64, error) {
	if t, ok := p.peek(); ok && t.kind == tokMinus {
		p.pos++
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return -v, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (float64, error) {
	t, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("unexpected end of expression")
	}
	switch t.kind {
	case tokNumber:
		p.pos++
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return 0, fmt.Errorf("bad number %q: %w", t.text, err)
		}
		return v, nil
	case tokLParen:
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if err := p.expect(tokRParen, ")"); err != nil {
			return 0, err
		}
		return v, nil
	case tokIdent:
		if t.text == mathNamespace {
			return p.parseMath()
		}
		p.pos++
		v, ok := p.vars[t.text]
		if !ok {
			return 0, fmt.Errorf("unknown identifier %q", t.text)
		}
		return v, nil
	}
	return 0, fmt.Errorf("unexpected %q at position %d", t.text, t.pos)
}

// parseMath handles Math.NAME constants and Math.name(args) calls.
func (p *parser) parseMath() (float64, error) {
	p.pos++ // Math
	if err := p.expect(tokDot, "."); err != nil {
		return 0, err
	}
	t, ok := p.peek()
	if !ok || t.kind != tokIdent {
		return 0, fmt.Errorf("expected Math member name")
	}
	member := t.text
	p.pos++

	if next, ok := p.peek(); !ok || next.kind != tokLParen {
		if c, ok := mathConsts[member]; ok {
			return c, nil
		}
		return 0, fmt.Errorf("unknown Math constant %q", member)
	}

	fn, ok := mathFuncs[member]
	if !ok {
		return 0, fmt.Errorf("unknown Math function %q", member)
	}
	p.pos++ // (

	var args []float64
	if t, ok := p.peek(); ok && t.kind == tokRParen {
		p.pos++
		return fn(args)
	}
	for {
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		args = append(args, v)
		t, ok := p.peek()
		if !ok {
			return 0, fmt.Errorf("unterminated Math.%s call", member)
		}
		if t.kind == tokComma {
			p.pos++
			continue
		}
		if t.kind == tokRParen {
			p.pos++
			break
		}
		return 0, fmt.Errorf("unexpected %q in Math.%s arguments", t.text, member)
	}
	return fn(args)
}

func (p *parser) expect(kind tokenKind, what string) error {
	t, ok := p.peek()
	if !ok || t.kind != kind {
		return fmt.Errorf("expected %q", what)
	}
	p.pos++
	return nil
}
