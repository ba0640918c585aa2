package markup

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// AttrMap maps attribute names to best-effort typed values: string, float64,
// bool, []any, or map[string]any.
type AttrMap map[string]any

// looseKey rewrites unquoted or single-quoted object keys into strict JSON
// form, so authors can write `{min: 1, max: 2}` without quoting.
var looseKey = regexp.MustCompile(`['"]?([A-Za-z0-9_]+)['"]?:`)

// ParseAttrs parses a raw attribute-list string into typed values.
//
// The grammar is attribute name, optionally followed by `=` and a value that
// is either double-quoted, braced (depth-aware, so nested `{}` do not
// terminate early), or a bare token. A bare attribute with no `=` yields
// boolean true. All three value forms run through the same coercion chain,
// so `pass="{min:1,max:2}"` and `pass={min:1,max:2}` normalize identically.
func ParseAttrs(s string) AttrMap {
	attrs := AttrMap{}
	sc := &attrScanner{src: s}

	for !sc.done() {
		sc.skipSpaces()
		if sc.done() {
			break
		}
		name := sc.readName()
		if name == "" {
			// Not at a name character; step over it so the scan terminates.
			sc.idx++
			continue
		}
		sc.skipSpaces()
		if sc.peek() != '=' {
			attrs[name] = true
			continue
		}
		sc.idx++ // consume '='
		sc.skipSpaces()
		switch sc.peek() {
		case '"':
			attrs[name] = CoerceValue(sc.readQuoted())
		case '{':
			attrs[name] = CoerceValue(sc.readBraced())
		default:
			attrs[name] = CoerceValue(sc.readName())
		}
	}
	return attrs
}

// CoerceValue converts a raw attribute value into its intended type.
// Resolution order, each tried only if the previous fails: strict JSON,
// loose object-literal normalization (when a colon is present), literal
// true/false, number, and finally the raw text unchanged.
func CoerceValue(raw string) any {
	trimmed := strings.TrimSpace(raw)

	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
		return v
	}

	if strings.Contains(trimmed, ":") {
		candidate := trimmed
		if !strings.HasPrefix(candidate, "{") {
			candidate = "{" + candidate + "}"
		}
		normalized := looseKey.ReplaceAllString(candidate, `"$1":`)
		normalized = strings.ReplaceAll(normalized, "'", `"`)
		if err := json.Unmarshal([]byte(normalized), &v); err == nil {
			return v
		}
	}

	switch trimmed {
	case "true":
		return true
	case "false":
		return false
	}

	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return n
	}

	return raw
}

type attrScanner struct {
	src string
	idx int
}

func (sc *attrScanner) done() bool { return sc.idx >= len(sc.src) }

func (sc *attrScanner) peek() byte {
	if sc.done() {
		return 0
	}
	return sc.src[sc.idx]
}

func (sc *attrScanner) skipSpaces() {
	for !sc.done() && isSpace(sc.src[sc.idx]) {
		sc.idx++
	}
}

func (sc *attrScanner) readName() string {
	start := sc.idx
	for !sc.done() && isNameChar(sc.src[sc.idx]) {
		sc.idx++
	}
	return sc.src[start:sc.idx]
}

func (sc *attrScanner) readQuoted() string {
	sc.idx++ // opening "
	start := sc.idx
	for !sc.done() && sc.src[sc.idx] != '"' {
		sc.idx++
	}
	out := sc.src[start:sc.idx]
	if !sc.done() {
		sc.idx++ // closing "
	}
	return out
}

// readBraced extracts a brace-delimited value with depth matching, so nested
// objects like {pass: {min: 1, max: 2}} survive intact.
func (sc *attrScanner) readBraced() string {
	sc.idx++ // opening {
	var out strings.Builder
	depth := 1
	for !sc.done() && depth > 0 {
		ch := sc.src[sc.idx]
		if ch == '{' {
			depth++
		}
		if ch == '}' {
			depth--
		}
		if depth > 0 {
			out.WriteByte(ch)
		}
		sc.idx++
	}
	return out.String()
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isNameChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}
