// Package form owns the session-scoped answer map: the shared store every
// rendered field reads from and writes into, the synchronous recomputation
// of calculated fields, and the flattening of answers into submission
// records.
package form

import (
	"math"
	"strconv"
	"strings"

	"github.com/jinkoo2/DocuForms/internal/field"
)

// CalcAnswer is the composite record stored for calculated fields, whose
// grading status travels with the value.
type CalcAnswer struct {
	Value  float64      `json:"value"`
	Result field.Status `json:"result"`
	Label  string       `json:"label"`
}

// Answer is the wire record one field contributes to a submission.
type Answer struct {
	ID     string       `json:"id"`
	Label  string       `json:"label"`
	Value  any          `json:"value"`
	Result field.Status `json:"result"`
}

// Session is one viewer's answer state for one document render. It is an
// explicit store passed by reference, never ambient state, and it lives
// exactly as long as the render: a new document (or changed content) gets a
// fresh session.
type Session struct {
	registry *field.Registry
	order    []string
	answers  map[string]any
}

// NewSession creates an empty session over a resolved field registry.
func NewSession(reg *field.Registry) *Session {
	return &Session{
		registry: reg,
		answers:  make(map[string]any),
	}
}

// Registry returns the field registry this session is bound to.
func (s *Session) Registry() *field.Registry { return s.registry }

// SetValue records a field's value and synchronously recomputes every
// calculated field whose source set is affected, transitively. A calculated
// field therefore always observes the most recent value of anything it
// depends on.
func (s *Session) SetValue(key string, value any) {
	s.put(key, value)
	s.propagate(map[string]bool{key: true})
}

// Recalculate recomputes every calculated field from the current answers,
// as after hydrating a session with externally supplied values.
func (s *Session) Recalculate() {
	dirty := make(map[string]bool, len(s.order))
	for _, k := range s.order {
		dirty[k] = true
	}
	s.propagate(dirty)
}

// Value returns the current value stored under key.
func (s *Session) Value(key string) (any, bool) {
	v, ok := s.answers[key]
	return v, ok
}

// Keys returns the answer keys in insertion order (the order fields were
// first touched).
func (s *Session) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Session) put(key string, value any) {
	if _, ok := s.answers[key]; !ok {
		s.order = append(s.order, key)
	}
	s.answers[key] = value
}

// propagate recomputes calculated fields whose sources intersect the dirty
// set, in declaration order, repeating until no value changes so that
// chains of calculated fields settle. The pass count is bounded by the
// number of calculated fields; cycles cannot loop forever.
func (s *Session) propagate(dirty map[string]bool) {
	calcs := 0
	for _, f := range s.registry.Fields() {
		if f.Kind == field.KindCalculate {
			calcs++
		}
	}
	for pass := 0; pass <= calcs; pass++ {
		changed := false
		for _, f := range s.registry.Fields() {
			if f.Kind != field.KindCalculate || !s.dependsOn(f, dirty) {
				continue
			}
			if s.recomputeCalc(f) {
				dirty[f.Key] = true
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

func (s *Session) dependsOn(f *field.Field, dirty map[string]bool) bool {
	for _, k := range s.sourceKeys(f) {
		if dirty[k] {
			return true
		}
	}
	return false
}

// Status computes the grading status of the field stored under key from its
// current value. Fields with no grading configured are StatusNone.
func (s *Session) Status(key string) field.Status {
	f := s.registry.Lookup(key)
	if f == nil || !f.Graded() {
		return field.StatusNone
	}
	val := s.answers[key]

	switch f.Kind {
	case field.KindNumber:
		n, ok := numberValue(val)
		if !ok {
			return field.StatusNone
		}
		return field.GradeNumber(n, f.PassRange, f.WarnRange)
	case field.KindDropdown, field.KindRadio:
		return field.GradeExact(stringValue(val), f.Correct)
	case field.KindMultiple:
		// One aggregate status for the whole set; per-option statuses
		// come from OptionStatuses.
		statuses := field.GradeMultiple(stringsValue(val), f.CorrectSet)
		if len(statuses) == 0 {
			return field.StatusNone
		}
		for _, st := range statuses {
			if st == field.StatusFail {
				return field.StatusFail
			}
		}
		return field.StatusPass
	case field.KindCalculate:
		if rec, ok := val.(CalcAnswer); ok {
			return rec.Result
		}
		return field.StatusNone
	}
	return field.StatusNone
}

// OptionStatuses grades each currently-selected option of a multi-select
// field independently. Unselected options are absent from the result.
func (s *Session) OptionStatuses(key string) map[string]field.Status {
	f := s.registry.Lookup(key)
	if f == nil || f.Kind != field.KindMultiple || len(f.CorrectSet) == 0 {
		return nil
	}
	return field.GradeMultiple(stringsValue(s.answers[key]), f.CorrectSet)
}

// IncompleteRequired returns required keys whose value is still missing:
// absent, nil, NaN, or an empty/whitespace-only string. Submission is
// blocked while this is non-empty.
func (s *Session) IncompleteRequired() []string {
	var incomplete []string
	for _, key := range s.registry.RequiredKeys() {
		v, ok := s.answers[key]
		if !ok || isIncomplete(v) {
			incomplete = append(incomplete, key)
		}
	}
	return incomplete
}

func isIncomplete(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(val)
	case string:
		return strings.TrimSpace(val) == ""
	}
	return false
}

// BuildSubmission flattens the answer map into ordered submission records.
// Order is insertion order, not document order. Composite calculated
// records unwrap; everything else takes the field's configured label (or
// its key) and its current grading status, defaulting to pass when no
// grading was attached — "none" never reaches the wire.
func (s *Session) BuildSubmission() []Answer {
	answers := make([]Answer, 0, len(s.order))
	for _, key := range s.order {
		val := s.answers[key]

		if rec, ok := val.(CalcAnswer); ok {
			answers = append(answers, Answer{
				ID:     key,
				Label:  rec.Label,
				Value:  rec.Value,
				Result: wireStatus(rec.Result),
			})
			continue
		}

		label := key
		if f := s.registry.Lookup(key); f != nil && f.Label != "" {
			label = f.Label
		}
		answers = append(answers, Answer{
			ID:     key,
			Label:  label,
			Value:  val,
			Result: wireStatus(s.Status(key)),
		})
	}
	return answers
}

// Hydrate restores a previously-saved answer list, as when re-displaying a
// historical submission. Values are stored verbatim and propagation is
// skipped: the saved calculated results are the record of that submission.
func (s *Session) Hydrate(answers []Answer) {
	for _, a := range answers {
		f := s.registry.Lookup(a.ID)
		if f != nil && f.Kind == field.KindCalculate {
			if n, ok := numberValue(a.Value); ok {
				s.put(a.ID, CalcAnswer{Value: n, Result: a.Result, Label: a.Label})
				continue
			}
		}
		s.put(a.ID, a.Value)
	}
}

func wireStatus(st field.Status) field.Status {
	if st == field.StatusNone || st == "" {
		return field.StatusPass
	}
	return st
}

// numberValue coerces the value shapes an answer map can hold into a
// float64: numbers, numeric strings, and calculated records.
func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) {
			return 0, false
		}
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case CalcAnswer:
		return n.Value, true
	}
	return 0, false
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func stringsValue(v any) []string {
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
