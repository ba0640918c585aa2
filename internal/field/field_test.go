package field

import (
	"reflect"
	"testing"

	"github.com/jinkoo2/DocuForms/internal/markup"
)

func resolve(t *testing.T, content string) *Registry {
	t.Helper()
	return Resolve(markup.Tokenize(content))
}

func TestResolve_KeyPriority(t *testing.T) {
	reg := resolve(t, `
<TextInput id="explicit_id" name="ignored" label="Also Ignored" />
<TextInput name="from_name" label="Still Ignored" />
<TextInput label="From Label" />
<TextInput />
`)

	fields := reg.Fields()
	if len(fields) != 4 {
		t.Fatalf("expected 4 fields, got %d", len(fields))
	}

	if fields[0].Key != "explicit_id" || !fields[0].Explicit {
		t.Errorf("field 0: expected explicit key %q, got %q (explicit=%v)", "explicit_id", fields[0].Key, fields[0].Explicit)
	}
	if fields[1].Key != "from_name" || !fields[1].Explicit {
		t.Errorf("field 1: expected explicit key %q, got %q", "from_name", fields[1].Key)
	}
	if fields[2].Key != "From Label" || fields[2].Explicit {
		t.Errorf("field 2: expected label key %q (not explicit), got %q (explicit=%v)", "From Label", fields[2].Key, fields[2].Explicit)
	}
	if fields[3].Explicit {
		t.Errorf("field 3: synthetic key should not be explicit")
	}
	if fields[3].Key == "" {
		t.Errorf("field 3: expected synthetic key, got empty")
	}
}

func TestResolve_SyntheticKeysStable(t *testing.T) {
	content := "Intro prose.\n\n<TextInput />\n\nMore prose.\n\n<TextInput />\n"
	first := resolve(t, content)
	second := resolve(t, content)

	a, b := first.Fields(), second.Fields()
	if len(a) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(a))
	}
	if a[0].Key == a[1].Key {
		t.Errorf("expected distinct synthetic keys, both %q", a[0].Key)
	}
	for i := range a {
		if a[i].Key != b[i].Key {
			t.Errorf("field %d: expected stable key across resolves, got %q vs %q", i, a[i].Key, b[i].Key)
		}
	}
}

func TestResolve_KindMapping(t *testing.T) {
	tests := []struct {
		component string
		want      Kind
	}{
		{"TextInput", KindText},
		{"NumberInput", KindNumber},
		{"DateInput", KindDate},
		{"TimeInput", KindTime},
		{"Dropdown", KindDropdown},
		{"RadioButtons", KindRadio},
		{"MultipleChoice", KindMultiple},
		{"Calculate", KindCalculate},
		{"Bogus", KindUnknown},
	}

	for _, tt := range tests {
		reg := resolve(t, "<"+tt.component+" id=\"f\" />")
		fields := reg.Fields()
		if len(fields) != 1 {
			t.Fatalf("%s: expected 1 field, got %d", tt.component, len(fields))
		}
		if fields[0].Kind != tt.want {
			t.Errorf("%s: expected kind %q, got %q", tt.component, tt.want, fields[0].Kind)
		}
	}
}

func TestResolve_NumberFieldRanges(t *testing.T) {
	reg := resolve(t, `<NumberInput id="dose" pass={{min: 1.9, max: 2.1}} warn={{min: 1.8, max: 2.2}} />`)

	f := reg.Lookup("dose")
	if f == nil {
		t.Fatal("expected field dose")
	}
	if f.PassRange == nil || f.PassRange.Min != 1.9 || f.PassRange.Max != 2.1 {
		t.Errorf("expected pass range [1.9, 2.1], got %+v", f.PassRange)
	}
	if f.WarnRange == nil || f.WarnRange.Min != 1.8 || f.WarnRange.Max != 2.2 {
		t.Errorf("expected warn range [1.8, 2.2], got %+v", f.WarnRange)
	}
	if !f.Graded() {
		t.Error("expected field to be graded")
	}
}

func TestResolve_ChoiceFields(t *testing.T) {
	reg := resolve(t, `
<Dropdown id="site" options={["Gantry", "Couch", "Collimator"]} correct="Gantry" default="Couch" />
<MultipleChoice id="checks" options={["A", "B", "C"]} correct={["A", "B"]} />
`)

	d := reg.Lookup("site")
	if d == nil {
		t.Fatal("expected field site")
	}
	if !reflect.DeepEqual(d.Options, []string{"Gantry", "Couch", "Collimator"}) {
		t.Errorf("unexpected options %v", d.Options)
	}
	if d.Correct != "Gantry" || d.Default != "Couch" {
		t.Errorf("expected correct Gantry default Couch, got %q / %q", d.Correct, d.Default)
	}

	m := reg.Lookup("checks")
	if m == nil {
		t.Fatal("expected field checks")
	}
	if !reflect.DeepEqual(m.CorrectSet, []string{"A", "B"}) {
		t.Errorf("expected correct set [A B], got %v", m.CorrectSet)
	}
}

func TestResolve_CalculateDefaults(t *testing.T) {
	reg := resolve(t, `<Calculate id="avg" expression="(a + b) / 2" />`)

	f := reg.Lookup("avg")
	if f == nil {
		t.Fatal("expected field avg")
	}
	if f.Expression != "(a + b) / 2" {
		t.Errorf("expected expression preserved, got %q", f.Expression)
	}
	if f.Precision != DefaultPrecision {
		t.Errorf("expected default precision %d, got %d", DefaultPrecision, f.Precision)
	}
	if f.Graded() {
		t.Error("expected ungraded calculated field")
	}
}

func TestRequiredKeys(t *testing.T) {
	reg := resolve(t, `
<TextInput id="a" required />
<TextInput id="b" />
<NumberInput id="c" required />
`)

	want := []string{"a", "c"}
	if got := reg.RequiredKeys(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected required keys %v, got %v", want, got)
	}
}

func TestDuplicateKeys_ExplicitOnly(t *testing.T) {
	reg := resolve(t, `
<TextInput id="x" />
<NumberInput id="x" />
<TextInput label="Same Label" />
<TextInput label="Same Label" />
`)

	dups := reg.DuplicateKeys()
	if !reflect.DeepEqual(dups, []string{"x"}) {
		t.Errorf("expected duplicates [x], got %v", dups)
	}
}

func TestDuplicateKeys_ReportedOnce(t *testing.T) {
	reg := resolve(t, `
<TextInput id="x" />
<TextInput id="x" />
<TextInput id="x" />
<TextInput id="y" />
<TextInput id="y" />
`)

	dups := reg.DuplicateKeys()
	want := []string{"x", "y"}
	if !reflect.DeepEqual(dups, want) {
		t.Errorf("expected duplicates %v, got %v", want, dups)
	}
}

func TestValidateKeys(t *testing.T) {
	clean := resolve(t, "<TextInput id=\"a\" />\n<TextInput id=\"b\" />")
	if err := clean.ValidateKeys(); err != nil {
		t.Errorf("expected nil for unique keys, got %v", err)
	}

	dup := resolve(t, `<TextInput id="a" />
<TextInput id="a" />`)
	err := dup.ValidateKeys()
	if err == nil {
		t.Fatal("expected error for duplicate keys")
	}
	dke, ok := err.(*DuplicateKeyError)
	if !ok {
		t.Fatalf("expected *DuplicateKeyError, got %T", err)
	}
	if !reflect.DeepEqual(dke.Keys, []string{"a"}) {
		t.Errorf("expected keys [a], got %v", dke.Keys)
	}
}

func TestLookup_FirstDeclarationWins(t *testing.T) {
	reg := resolve(t, `
<TextInput id="x" label="First" />
<NumberInput id="x" label="Second" />
`)

	f := reg.Lookup("x")
	if f == nil {
		t.Fatal("expected field x")
	}
	if f.Label != "First" {
		t.Errorf("expected first declaration to win, got label %q", f.Label)
	}
}
