// Package field resolves tokenized field declarations into typed field
// definitions, assigns each a stable key in the answer map, and grades
// current values against the configured pass/warn ranges or correct answers.
package field

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jinkoo2/DocuForms/internal/markup"
)

// Kind is the closed set of field behaviors a component name can resolve to.
type Kind string

const (
	KindUnknown   Kind = "unknown"
	KindText      Kind = "text"
	KindNumber    Kind = "number"
	KindDate      Kind = "date"
	KindTime      Kind = "time"
	KindDropdown  Kind = "dropdown"
	KindRadio     Kind = "radio"
	KindMultiple  Kind = "multiple"
	KindCalculate Kind = "calculate"
)

// kindByComponent maps tag names to field kinds. Names not present here
// resolve to KindUnknown and render as an inline error marker; they never
// fail the parse.
var kindByComponent = map[string]Kind{
	"TextInput":      KindText,
	"NumberInput":    KindNumber,
	"DateInput":      KindDate,
	"TimeInput":      KindTime,
	"Dropdown":       KindDropdown,
	"RadioButtons":   KindRadio,
	"MultipleChoice": KindMultiple,
	"Calculate":      KindCalculate,
}

// DefaultPrecision is the rounding precision for calculated fields that do
// not declare one.
const DefaultPrecision = 2

// Field is one resolved field declaration.
type Field struct {
	Kind      Kind
	Component string

	// Key is the answer-map key: id, else name, else label, else a
	// synthetic "{component}-{tokenOrdinal}".
	Key string
	// Explicit reports whether Key came from an id or name attribute.
	// Only explicit keys participate in duplicate detection.
	Explicit bool

	Label    string
	Required bool

	// Text fields.
	Multiline bool
	MinRows   int

	// Choice fields.
	Options    []string
	Correct    string   // dropdown / radio
	CorrectSet []string // multiple choice
	Default    string

	// Graded numeric fields (plain or calculated).
	PassRange *Range
	WarnRange *Range

	// Calculated fields.
	Expression string
	Precision  int

	// Line is the source line of the declaration.
	Line int
}

// Graded reports whether any correctness criteria are configured.
func (f *Field) Graded() bool {
	return f.PassRange != nil || f.WarnRange != nil || f.Correct != "" || len(f.CorrectSet) > 0
}

// fromToken builds a Field from a field-declaration token. ordinal is the
// token's position in the full token sequence and feeds synthetic keys.
func fromToken(tok markup.Token, ordinal int) *Field {
	attrs := tok.Attrs
	f := &Field{
		Kind:      KindUnknown,
		Component: tok.Component,
		Label:     attrString(attrs, "label"),
		Required:  attrBool(attrs, "required"),
		Line:      tok.Line,
	}
	if k, ok := kindByComponent[tok.Component]; ok {
		f.Kind = k
	}

	if id := attrString(attrs, "id"); id != "" {
		f.Key = id
		f.Explicit = true
	} else if name := attrString(attrs, "name"); name != "" {
		f.Key = name
		f.Explicit = true
	} else if f.Label != "" {
		f.Key = f.Label
	} else {
		f.Key = fmt.Sprintf("%s-%d", tok.Component, ordinal)
	}

	switch f.Kind {
	case KindText:
		f.Multiline = attrBool(attrs, "multiline")
		f.MinRows = attrInt(attrs, "minRows", 0)
	case KindNumber:
		f.PassRange = NormalizeRange(attrs["pass"])
		f.WarnRange = NormalizeRange(attrs["warn"])
	case KindDropdown, KindRadio:
		f.Options = attrStrings(attrs, "options")
		f.Correct = attrString(attrs, "correct")
		f.Default = attrString(attrs, "default")
	case KindMultiple:
		f.Options = attrStrings(attrs, "options")
		f.CorrectSet = attrStrings(attrs, "correct")
	case KindCalculate:
		f.Expression = strings.TrimSpace(attrString(attrs, "expression"))
		f.Precision = attrInt(attrs, "precision", DefaultPrecision)
		f.PassRange = NormalizeRange(attrs["pass"])
		f.WarnRange = NormalizeRange(attrs["warn"])
	}

	return f
}

func attrString(attrs markup.AttrMap, name string) string {
	switch v := attrs[name].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func attrBool(attrs markup.AttrMap, name string) bool {
	switch v := attrs[name].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

func attrInt(attrs markup.AttrMap, name string, fallback int) int {
	switch v := attrs[name].(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func attrStrings(attrs markup.AttrMap, name string) []string {
	switch v := attrs[name].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}
