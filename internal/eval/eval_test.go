package eval

import (
	"math"
	"reflect"
	"testing"
)

func TestEvaluate_Arithmetic(t *testing.T) {
	vars := map[string]float64{"a": 6, "b": 3, "c": 2}

	tests := []struct {
		expr string
		want float64
	}{
		{"1 + 2", 3},
		{"a + b", 9},
		{"a - b - c", 1},
		{"a * b", 18},
		{"a / b", 2},
		{"a + b * c", 12},
		{"(a + b) * c", 18},
		{"-a + b", -3},
		{"--a", 6},
		{"a / b / c", 1},
		{"1.5 + 2.25", 3.75},
	}

	for _, tt := range tests {
		got, err := Evaluate(tt.expr, vars)
		if err != nil {
			t.Errorf("Evaluate(%q): unexpected error: %v", tt.expr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Evaluate(%q): expected %v, got %v", tt.expr, tt.want, got)
		}
	}
}

func TestEvaluate_MathNamespace(t *testing.T) {
	vars := map[string]float64{"x": 16}

	tests := []struct {
		expr string
		want float64
	}{
		{"Math.sqrt(x)", 4},
		{"Math.abs(-5)", 5},
		{"Math.pow(2, 10)", 1024},
		{"Math.min(3, 1, 2)", 1},
		{"Math.max(3, 1, 2)", 3},
		{"Math.floor(2.9)", 2},
		{"Math.ceil(2.1)", 3},
		{"Math.round(2.5)", 3},
		{"Math.PI", math.Pi},
		{"Math.E", math.E},
		{"Math.sqrt(x) * 2 + 1", 9},
	}

	for _, tt := range tests {
		got, err := Evaluate(tt.expr, vars)
		if err != nil {
			t.Errorf("Evaluate(%q): unexpected error: %v", tt.expr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Evaluate(%q): expected %v, got %v", tt.expr, tt.want, got)
		}
	}
}

func TestEvaluate_Errors(t *testing.T) {
	exprs := []string{
		"",
		"a +",
		"* 3",
		"(1 + 2",
		"Math.bogus(1)",
		"Math.NOPE",
		"Math.pow(1)",
		"unknown_var + 1",
		"1 ; 2",
		"a b",
	}

	for _, expr := range exprs {
		if _, err := Evaluate(expr, map[string]float64{"a": 1}); err == nil {
			t.Errorf("Evaluate(%q): expected error, got nil", expr)
		}
	}
}

func TestEvaluate_DivisionByZeroIsNonFinite(t *testing.T) {
	got, err := Evaluate("1 / 0", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsInf(got, 1) {
		t.Errorf("expected +Inf, got %v", got)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		v         float64
		precision int
		want      float64
	}{
		{3.338, 2, 3.34},
		{1.005 + 2.333, 2, 3.34},
		{2.0, 2, 2.0}, // integers stay untouched
		{7, 0, 7},
		{2.5, 0, 3},
		{1.23456, 3, 1.235},
		{-1.005, 2, -1.0}, // Round is half-away-from-zero after the shift
	}

	for _, tt := range tests {
		if got := Round(tt.v, tt.precision); got != tt.want {
			t.Errorf("Round(%v, %d): expected %v, got %v", tt.v, tt.precision, tt.want, got)
		}
	}
}

func TestSources(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{"a + b", []string{"a", "b"}},
		{"a + a * a", []string{"a"}},
		{"(dose_a + dose_b) / 2", []string{"dose_a", "dose_b"}},
		{"Math.sqrt(x) * 100", []string{"x"}},
		{"Math.PI * r * r", []string{"r"}},
		{"Math.pow(base, exp2)", []string{"base", "exp2"}},
		{"1 + 2", nil},
		{"", nil},
		{"a + $", nil}, // lexing error yields no sources
	}

	for _, tt := range tests {
		got := Sources(tt.expr)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Sources(%q): expected %v, got %v", tt.expr, tt.want, got)
		}
	}
}
