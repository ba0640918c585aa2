package field

import (
	"fmt"
	"strings"

	"github.com/jinkoo2/DocuForms/internal/markup"
)

// Registry holds the resolved fields of one document, in declaration order.
// Key resolution is deterministic: re-resolving unchanged source yields
// identical keys, which is what keeps answer maps stable across renders.
type Registry struct {
	fields []*Field
	index  map[string]*Field
}

// Resolve builds a Registry from a token sequence. Duplicate explicit keys
// do not fail resolution — rendering must continue — but they are recorded
// and surfaced by ValidateKeys before a save is allowed to persist.
func Resolve(tokens []markup.Token) *Registry {
	r := &Registry{index: make(map[string]*Field)}
	for ordinal, tok := range tokens {
		if tok.Kind != markup.TokenField {
			continue
		}
		f := fromToken(tok, ordinal)
		r.fields = append(r.fields, f)
		if _, taken := r.index[f.Key]; !taken {
			r.index[f.Key] = f
		}
	}
	return r
}

// Fields returns the resolved fields in declaration order.
func (r *Registry) Fields() []*Field { return r.fields }

// Lookup returns the first field resolved to key, or nil.
func (r *Registry) Lookup(key string) *Field { return r.index[key] }

// RequiredKeys returns, in declaration order, the keys of fields whose
// declaration carried a truthy required attribute.
func (r *Registry) RequiredKeys() []string {
	var keys []string
	for _, f := range r.fields {
		if f.Required {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// DuplicateKeys returns every explicit (id/name) key claimed by more than
// one declaration, each listed once, in first-collision order. Synthetic and
// label-derived keys are exempt.
func (r *Registry) DuplicateKeys() []string {
	seen := make(map[string]int)
	reported := make(map[string]bool)
	var dups []string
	for _, f := range r.fields {
		if !f.Explicit {
			continue
		}
		seen[f.Key]++
		if seen[f.Key] > 1 && !reported[f.Key] {
			reported[f.Key] = true
			dups = append(dups, f.Key)
		}
	}
	return dups
}

// ValidateKeys returns a *DuplicateKeyError listing every duplicated
// explicit key, or nil when keys are unique. Persisting a document with
// duplicate keys must be rejected as a whole.
func (r *Registry) ValidateKeys() error {
	if dups := r.DuplicateKeys(); len(dups) > 0 {
		return &DuplicateKeyError{Keys: dups}
	}
	return nil
}

// DuplicateKeyError reports explicit field keys claimed by more than one
// declaration in the same document.
type DuplicateKeyError struct {
	Keys []string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate field keys: %s", strings.Join(e.Keys, ", "))
}
