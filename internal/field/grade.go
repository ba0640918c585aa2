package field

// Status is the grading outcome for a field's current value. StatusNone
// means "not yet evaluable": an empty or invalid value, or no grading
// configured.
type Status string

const (
	StatusNone Status = "none"
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// GradeNumber classifies a numeric value against inclusive pass/warn
// ranges. The pass check always precedes the warn check: a value can only
// be warn if it is not pass. A nil range skips its tier.
func GradeNumber(value float64, pass, warn *Range) Status {
	if !isFinite(value) {
		return StatusNone
	}
	if pass != nil && pass.Contains(value) {
		return StatusPass
	}
	if warn != nil && warn.Contains(value) {
		return StatusWarn
	}
	return StatusFail
}

// GradeExact classifies an exact-match answer (dropdown, radio). There is
// no warn tier for exact-match fields.
func GradeExact(value, correct string) Status {
	if value == "" {
		return StatusNone
	}
	if value == correct {
		return StatusPass
	}
	return StatusFail
}

// GradeMultiple grades each selected option independently against the
// correct set. Unselected options carry no status, so the result maps only
// selected options; the status of one selection never depends on another.
func GradeMultiple(selected, correct []string) map[string]Status {
	correctSet := make(map[string]bool, len(correct))
	for _, c := range correct {
		correctSet[c] = true
	}
	statuses := make(map[string]Status, len(selected))
	for _, s := range selected {
		if correctSet[s] {
			statuses[s] = StatusPass
		} else {
			statuses[s] = StatusFail
		}
	}
	return statuses
}
