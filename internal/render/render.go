// Package render turns a token sequence into HTML: prose blocks through
// goldmark, field declarations as placeholder elements the presentation
// layer binds controls to, and unknown components as visible inline error
// markers.
package render

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"

	"github.com/jinkoo2/DocuForms/internal/field"
	"github.com/jinkoo2/DocuForms/internal/form"
	"github.com/jinkoo2/DocuForms/internal/markup"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Document renders a tokenized document. The session is optional; when
// present, each field element carries its current status so the viewer gets
// visual feedback.
func Document(tokens []markup.Token, reg *field.Registry, sess *form.Session) (string, error) {
	var out strings.Builder
	fieldIdx := 0

	for _, tok := range tokens {
		switch tok.Kind {
		case markup.TokenProse:
			if err := md.Convert([]byte(tok.Text), &out); err != nil {
				return "", fmt.Errorf("render prose at line %d: %w", tok.Line, err)
			}
		case markup.TokenField:
			fields := reg.Fields()
			if fieldIdx >= len(fields) {
				continue
			}
			writeField(&out, fields[fieldIdx], sess)
			fieldIdx++
		}
	}
	return out.String(), nil
}

func writeField(out *strings.Builder, f *field.Field, sess *form.Session) {
	if f.Kind == field.KindUnknown {
		fmt.Fprintf(out, `<span class="unknown-component">Unknown component: %s</span>`+"\n",
			html.EscapeString(f.Component))
		return
	}

	label := f.Label
	if label == "" {
		label = f.Key
	}

	fmt.Fprintf(out, `<div class="form-field" data-kind="%s" data-key="%s"`,
		html.EscapeString(string(f.Kind)), html.EscapeString(f.Key))
	if f.Required {
		out.WriteString(` data-required="true"`)
	}
	if sess != nil {
		if st := sess.Status(f.Key); st != field.StatusNone {
			fmt.Fprintf(out, ` data-status="%s"`, st)
		}
	}
	out.WriteString(">")
	fmt.Fprintf(out, `<label>%s</label>`, html.EscapeString(label))

	for _, opt := range f.Options {
		fmt.Fprintf(out, `<span class="option">%s</span>`, html.EscapeString(opt))
	}
	if f.Kind == field.KindCalculate && sess != nil {
		writeCalcValue(out, f, sess)
	}
	out.WriteString("</div>\n")
}

// writeCalcValue shows either the computed value or the waiting/invalid
// hint — an unready calculated field is an explanation, never an error.
func writeCalcValue(out *strings.Builder, f *field.Field, sess *form.Session) {
	res := sess.Evaluate(f.Key)
	switch {
	case res.Valid:
		fmt.Fprintf(out, `<output>%v</output>`, res.Value)
	case len(res.Missing) > 0:
		fmt.Fprintf(out, `<span class="calc-waiting">Waiting for: %s</span>`,
			html.EscapeString(strings.Join(res.Missing, ", ")))
	case f.Expression == "":
		out.WriteString(`<span class="calc-invalid">No expression provided</span>`)
	default:
		fmt.Fprintf(out, `<span class="calc-invalid">Invalid expression: %s</span>`,
			html.EscapeString(f.Expression))
	}
}
