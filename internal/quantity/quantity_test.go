package quantity

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		value float64
		unit  string
	}{
		{"4 pz", 4, "pz"},
		{"12pz", 12, "pz"},
		{"1.5 L", 1.5, "L"},
		{"1,5 L", 1.5, "L"},
		{"  2   kg ", 2, "kg"},
		{"3", 3, "pz"},
		{"", 1, "pz"},
		{"   ", 1, "pz"},
		{"qb", 1, "qb"},
		{"un pacco", 1, "un pacco"},
		{"., kg", 1, "kg"},
		{"1.2.3 g", 1.2, "g"},
		{"1,000 g", 1, "g"},
		{".5 L", 0.5, "L"},
		{"0 pz", 0, "pz"},
	}
	for _, tt := range tests {
		got := Parse(tt.input)
		if got.Value != tt.value || got.Unit != tt.unit {
			t.Errorf("Parse(%q) = {%v %q}, want {%v %q}", tt.input, got.Value, got.Unit, tt.value, tt.unit)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		value float64
		unit  string
		want  string
	}{
		{4, "pz", "4 pz"},
		{16, "pz", "16 pz"},
		{1.5, "L", "1.5 L"},
		{1.25, "kg", "1.25 kg"},
		{1.234, "kg", "1.23 kg"},
		{2.999, "L", "3 L"},
		{10.5, "", "10.5"},
		{3, "", "3"},
		{0.1 + 0.2, "L", "0.3 L"},
		{99.999, "g", "100 g"},
	}
	for _, tt := range tests {
		got := Format(tt.value, tt.unit)
		if got != tt.want {
			t.Errorf("Format(%v, %q) = %q, want %q", tt.value, tt.unit, got, tt.want)
		}
	}
}

func TestFormatNeverEndsWithDot(t *testing.T) {
	for _, v := range []float64{0.001, 2.9999, 3.004, 7.0001} {
		got := Format(v, "")
		if got[len(got)-1] == '.' {
			t.Errorf("Format(%v) = %q ends with a dot", v, got)
		}
	}
}

func TestRoundTripNumericValue(t *testing.T) {
	inputs := []string{"4 pz", "12pz", "1.5 L", "1,25 kg", "", "qb", "0.75", "100 g", "2,50 L", "abc"}
	for _, s := range inputs {
		p := Parse(s)
		if p.Value < 0 {
			t.Errorf("Parse(%q).Value = %v, want >= 0", s, p.Value)
		}
		again := Parse(Format(p.Value, p.Unit))
		if again.Value != p.Value {
			t.Errorf("round trip of %q: %v -> %v", s, p.Value, again.Value)
		}
	}
}

func TestFormatStableForNormalizedStrings(t *testing.T) {
	for _, s := range []string{"4 pz", "1.5 L", "16 pz", "0.25 kg"} {
		if got := Parse(s).String(); got != s {
			t.Errorf("Parse(%q).String() = %q", s, got)
		}
	}
}

func TestAddKeepsReceiverUnit(t *testing.T) {
	sum := Parse("4 pz").Add(Parse("12pz"))
	if sum.Value != 16 || sum.Unit != "pz" {
		t.Errorf("sum = %+v, want {16 pz}", sum)
	}

	mixed := Parse("2 L").Add(Parse("500 g"))
	if mixed.Value != 502 || mixed.Unit != "L" {
		t.Errorf("mixed = %+v, want {502 L}", mixed)
	}
}

func TestSameUnit(t *testing.T) {
	if !Parse("2 L").SameUnit(Parse("1 l")) {
		t.Error("expected L and l to match")
	}
	if Parse("2 L").SameUnit(Parse("500 g")) {
		t.Error("expected L and g to differ")
	}
}

func TestLeadingNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.50 €", "1.50"},
		{"2€", "2"},
		{"3 euro", "3"},
		{"1,5 L", "1.5"},
		{"2.", "2"},
		{".5", ".5"},
		{"1e5", "1"},
		{"-3", ""},
		{"q.b.", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := LeadingNumber(tt.in); got != tt.want {
			t.Errorf("LeadingNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"4 pz", 4},
		{"0,5 L", 0.5},
		{"q.b.", 0},
		{"qb", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := Number(tt.in); got != tt.want {
			t.Errorf("Number(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
