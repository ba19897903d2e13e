// Package quantity parses and formats the free-form quantity strings stored on
// pantry and shopping items ("4 pz", "1,5 L", "12pz").
package quantity

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultUnit is used whenever a quantity string carries no unit.
const DefaultUnit = "pz"

var (
	leadingNumber = regexp.MustCompile(`^([\d.,]+)\s*(.*)$`)
	decimalPrefix = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)`)
)

// Value is a quantity split into its numeric part and unit.
type Value struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Parse extracts a leading number and a trailing unit from text. It never
// fails: text without a usable number yields a value of 1.
func Parse(text string) Value {
	trimmed := strings.TrimSpace(text)
	m := leadingNumber.FindStringSubmatch(trimmed)
	if m == nil {
		if trimmed == "" {
			trimmed = DefaultUnit
		}
		return Value{Value: 1, Unit: trimmed}
	}

	unit := strings.TrimSpace(m[2])
	if unit == "" {
		unit = DefaultUnit
	}
	return Value{Value: parseNumber(m[1]), Unit: unit}
}

// parseNumber reads the longest decimal prefix of s, treating the first comma
// as the decimal separator. Anything unusable becomes 1.
func parseNumber(s string) float64 {
	s = strings.Replace(s, ",", ".", 1)
	prefix := decimalPrefix.FindString(s)
	if prefix == "" {
		return 1
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 1
	}
	return v
}

// Format renders value and unit back into a quantity string. Integral values
// have no decimals; fractional values keep at most two.
func Format(value float64, unit string) string {
	var num string
	if value == math.Trunc(value) {
		num = strconv.FormatFloat(value, 'f', -1, 64)
	} else {
		num = strconv.FormatFloat(value, 'f', 2, 64)
		num = strings.TrimRight(num, "0")
		num = strings.TrimSuffix(num, ".")
	}
	if unit == "" {
		return num
	}
	return num + " " + unit
}

// LeadingNumber returns the decimal prefix of text with the first comma read
// as the decimal point, or "" when text does not start with a number. The
// result never carries a sign or an exponent.
func LeadingNumber(text string) string {
	s := strings.Replace(strings.TrimSpace(text), ",", ".", 1)
	return strings.TrimSuffix(decimalPrefix.FindString(s), ".")
}

// Number reads the leading number of text. Text without one counts as zero,
// unlike Parse which assumes a single unit.
func Number(text string) float64 {
	v, err := strconv.ParseFloat(LeadingNumber(text), 64)
	if err != nil || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func (v Value) String() string {
	return Format(v.Value, v.Unit)
}

// Add sums the numeric parts and keeps the receiver's unit.
func (v Value) Add(other Value) Value {
	return Value{Value: v.Value + other.Value, Unit: v.Unit}
}

// SameUnit reports whether both values use the same unit, ignoring case.
func (v Value) SameUnit(other Value) bool {
	return strings.EqualFold(v.Unit, other.Unit)
}
