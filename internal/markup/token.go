// Package markup tokenizes hybrid documents: ordinary markdown prose
// interleaved with inline field tags such as
//
//	<NumberInput id="dose" label="Dose (Gy)" pass={{min:1.9,max:2.1}} />
//
// The tokenizer splits a document into an ordered sequence of prose blocks
// and field declarations; the attribute parser turns each tag's attribute
// text into typed values despite the loose, author-friendly syntax.
package markup

// TokenKind discriminates the two token variants.
type TokenKind int

const (
	// TokenProse is a run of markdown text between field tags.
	TokenProse TokenKind = iota
	// TokenField is a single inline field declaration.
	TokenField
)

// Token is one element of a tokenized document, in document order.
type Token struct {
	Kind TokenKind

	// Text holds the prose content (TokenProse only).
	Text string

	// Component is the tag name as written, e.g. "NumberInput" (TokenField only).
	Component string
	// RawAttrs is the unparsed attribute text between the component name
	// and the closing of the tag (TokenField only).
	RawAttrs string
	// Attrs is the parsed attribute map (TokenField only).
	Attrs AttrMap

	// Line is the 1-based source line the token starts on.
	Line int
}
