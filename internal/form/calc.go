package form

import (
	"math"

	"github.com/jinkoo2/DocuForms/internal/eval"
	"github.com/jinkoo2/DocuForms/internal/field"
)

// CalcResult is the outcome of evaluating a calculated field. Valid false is
// not an error: it covers both malformed expressions and the legitimate
// "waiting for inputs" state while upstream fields are unfilled; Missing
// names the source keys that did not resolve to a number.
type CalcResult struct {
	Value   float64
	Valid   bool
	Missing []string
}

// sourceKeys returns the field keys a calculated field's expression reads,
// with the field's own key excluded so it cannot depend on itself.
func (s *Session) sourceKeys(f *field.Field) []string {
	keys := eval.Sources(f.Expression)
	out := keys[:0]
	for _, k := range keys {
		if k != f.Key {
			out = append(out, k)
		}
	}
	return out
}

// evaluateCalc computes a calculated field from the current answer map.
func (s *Session) evaluateCalc(f *field.Field) CalcResult {
	if f.Expression == "" {
		return CalcResult{}
	}

	vars := make(map[string]float64)
	var missing []string
	for _, key := range s.sourceKeys(f) {
		n, ok := numberValue(s.answers[key])
		if !ok {
			missing = append(missing, key)
			continue
		}
		vars[key] = n
	}
	if len(missing) > 0 {
		return CalcResult{Missing: missing}
	}

	v, err := eval.Evaluate(f.Expression, vars)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return CalcResult{}
	}
	return CalcResult{Value: eval.Round(v, f.Precision), Valid: true}
}

// recomputeCalc re-evaluates a calculated field and stores the composite
// record. It reports whether the stored value changed, which drives
// propagation to downstream calculated fields.
func (s *Session) recomputeCalc(f *field.Field) bool {
	res := s.evaluateCalc(f)

	prev, had := s.answers[f.Key]
	if !res.Valid {
		// Only clear a previously computed value; a calc that never
		// produced one stays out of the answer map entirely.
		if !had || prev == nil {
			return false
		}
		s.answers[f.Key] = nil
		return true
	}

	label := f.Label
	if label == "" {
		label = f.Key
	}
	rec := CalcAnswer{
		Value:  res.Value,
		Result: s.gradeCalc(f, res.Value),
		Label:  label,
	}
	if old, ok := prev.(CalcAnswer); ok && old == rec {
		return false
	}
	s.put(f.Key, rec)
	return true
}

// gradeCalc feeds the rounded result through the numeric grading engine,
// exactly as a plain numeric field would be graded.
func (s *Session) gradeCalc(f *field.Field, v float64) field.Status {
	if !f.Graded() {
		return field.StatusNone
	}
	return field.GradeNumber(v, f.PassRange, f.WarnRange)
}

// Evaluate exposes calculated-field evaluation for presentation: the result
// plus the "waiting for" keys when inputs are incomplete.
func (s *Session) Evaluate(key string) CalcResult {
	f := s.registry.Lookup(key)
	if f == nil || f.Kind != field.KindCalculate {
		return CalcResult{}
	}
	return s.evaluateCalc(f)
}
