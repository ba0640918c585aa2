package field

import (
	"math"
	"testing"
)

func TestGradeNumber_PassWarnFail(t *testing.T) {
	pass := &Range{Min: 1.9, Max: 2.1}
	warn := &Range{Min: 1.8, Max: 2.2}

	tests := []struct {
		value float64
		want  Status
	}{
		{2.0, StatusPass},
		{1.9, StatusPass},
		{2.1, StatusPass},
		{2.15, StatusWarn},
		{1.85, StatusWarn},
		{3.0, StatusFail},
		{0.0, StatusFail},
	}
	for _, tt := range tests {
		if got := GradeNumber(tt.value, pass, warn); got != tt.want {
			t.Errorf("GradeNumber(%v): expected %q, got %q", tt.value, tt.want, got)
		}
	}
}

func TestGradeNumber_PassPrecedesWarn(t *testing.T) {
	// Warn encloses pass; a value inside both must grade pass.
	pass := &Range{Min: 1.9, Max: 2.1}
	warn := &Range{Min: 0, Max: 10}

	if got := GradeNumber(2.0, pass, warn); got != StatusPass {
		t.Errorf("expected %q when value is in both ranges, got %q", StatusPass, got)
	}
}

func TestGradeNumber_NilRangesSkipTiers(t *testing.T) {
	if got := GradeNumber(2.0, nil, &Range{Min: 1.8, Max: 2.2}); got != StatusWarn {
		t.Errorf("warn only: expected %q, got %q", StatusWarn, got)
	}
	if got := GradeNumber(5.0, &Range{Min: 1.9, Max: 2.1}, nil); got != StatusFail {
		t.Errorf("pass only, outside: expected %q, got %q", StatusFail, got)
	}
}

func TestGradeNumber_NonFinite(t *testing.T) {
	pass := &Range{Min: 0, Max: 10}
	if got := GradeNumber(math.NaN(), pass, nil); got != StatusNone {
		t.Errorf("NaN: expected %q, got %q", StatusNone, got)
	}
	if got := GradeNumber(math.Inf(1), pass, nil); got != StatusNone {
		t.Errorf("+Inf: expected %q, got %q", StatusNone, got)
	}
}

func TestGradeExact(t *testing.T) {
	tests := []struct {
		value   string
		correct string
		want    Status
	}{
		{"", "A", StatusNone},
		{"A", "A", StatusPass},
		{"B", "A", StatusFail},
	}
	for _, tt := range tests {
		if got := GradeExact(tt.value, tt.correct); got != tt.want {
			t.Errorf("GradeExact(%q, %q): expected %q, got %q", tt.value, tt.correct, tt.want, got)
		}
	}
}

func TestGradeMultiple_PerOption(t *testing.T) {
	statuses := GradeMultiple([]string{"A", "C"}, []string{"A", "B"})

	if len(statuses) != 2 {
		t.Fatalf("expected 2 graded options, got %d", len(statuses))
	}
	if statuses["A"] != StatusPass {
		t.Errorf("A: expected %q, got %q", StatusPass, statuses["A"])
	}
	if statuses["C"] != StatusFail {
		t.Errorf("C: expected %q, got %q", StatusFail, statuses["C"])
	}
	if _, ok := statuses["B"]; ok {
		t.Error("unselected option B should carry no status")
	}
}

func TestGradeMultiple_EmptySelection(t *testing.T) {
	if statuses := GradeMultiple(nil, []string{"A"}); len(statuses) != 0 {
		t.Errorf("expected no statuses for empty selection, got %v", statuses)
	}
}
