package markup

import (
	"regexp"
	"strings"
)

// Tag patterns. Self-closing is tried first so that `<Tag ... />` is not
// half-matched by the opening pattern. Both span newlines because attribute
// lists may be buffered across multiple source lines.
var (
	selfClosingTag = regexp.MustCompile(`(?s)<(\w+)(.*?)\s*/>`)
	openingTag     = regexp.MustCompile(`(?s)<(\w+)(.*?)>`)
)

// Tokenize splits a document into an ordered sequence of prose blocks and
// field declarations.
//
// The scan is line-oriented: a line whose trimmed form opens with `<` but
// carries no `>` buffers subsequent lines until one containing `>` is found,
// so attribute lists may span multiple lines. Each (possibly buffered) line
// is matched against the self-closing pattern first, then the opening-tag
// pattern; a match flushes the accumulated prose as one block and emits a
// field declaration. Everything else accumulates into the prose buffer.
//
// Prose that merely looks like a tag (`<word ...>`) is indistinguishable
// from a field declaration and is tokenized as one; that is accepted source
// behavior, not an error. Tokenizing the same text twice yields an identical
// token sequence.
func Tokenize(content string) []Token {
	lines := strings.Split(content, "\n")

	var tokens []Token
	var prose strings.Builder
	proseStart := 1

	flush := func() {
		text := strings.TrimSpace(prose.String())
		if text != "" {
			tokens = append(tokens, Token{Kind: TokenProse, Text: text, Line: proseStart})
		}
		prose.Reset()
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		startLine := i + 1

		// Buffer multi-line tags until the closing ">" shows up.
		if strings.HasPrefix(strings.TrimSpace(line), "<") && !strings.Contains(line, ">") {
			buffered := line
			for i+1 < len(lines) && !strings.Contains(lines[i], ">") {
				i++
				buffered += "\n" + lines[i]
				if strings.Contains(lines[i], ">") {
					break
				}
			}
			line = buffered
		}

		m := selfClosingTag.FindStringSubmatch(line)
		if m == nil {
			m = openingTag.FindStringSubmatch(line)
		}

		if m != nil {
			flush()
			raw := m[2]
			tokens = append(tokens, Token{
				Kind:      TokenField,
				Component: m[1],
				RawAttrs:  raw,
				Attrs:     ParseAttrs(raw),
				Line:      startLine,
			})
			continue
		}

		if prose.Len() == 0 {
			proseStart = startLine
		}
		prose.WriteString(line)
		prose.WriteByte('\n')
	}
	flush()

	return tokens
}
