// Package report defines the equity research report model: the tri-state
// field value, the fixed section set, the assembled document, and the
// section builder that populates it from market data.
package report

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind identifies what a Value holds.
type ValueKind int

const (
	// KindUnavailable marks a field the upstream source had no data for.
	// Distinct from zero or empty: the field exists but carries no value.
	KindUnavailable ValueKind = iota
	// KindNumber is a plain numeric value.
	KindNumber
	// KindText is a free-text value.
	KindText
)

// Unit controls how a numeric Value is formatted for display.
type Unit int

const (
	UnitNone Unit = iota
	UnitCurrency
	UnitPercent
	UnitCount
)

// Value is a single report field. Every expected field of a section is
// always present in the section's data map, either carrying a value or
// the explicit unavailable marker. Callers never check key existence.
type Value struct {
	Kind ValueKind
	Num  float64
	Text string
	Unit Unit
}

// Unavailable returns the explicit unavailable marker.
func Unavailable() Value {
	return Value{Kind: KindUnavailable}
}

// Number returns a plain numeric value.
func Number(n float64) Value {
	return Value{Kind: KindNumber, Num: n}
}

// Currency returns a numeric value formatted as a dollar amount.
func Currency(n float64) Value {
	return Value{Kind: KindNumber, Num: n, Unit: UnitCurrency}
}

// Percent returns a numeric value formatted as a percentage.
func Percent(n float64) Value {
	return Value{Kind: KindNumber, Num: n, Unit: UnitPercent}
}

// Count returns an integer quantity (volumes, analyst counts).
func Count(n float64) Value {
	return Value{Kind: KindNumber, Num: n, Unit: UnitCount}
}

// Str returns a text value. Empty strings are treated as unavailable so a
// blank provider field never masquerades as data.
func Str(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unavailable()
	}
	return Value{Kind: KindText, Text: s}
}

// IsAvailable reports whether the value carries data.
func (v Value) IsAvailable() bool {
	return v.Kind != KindUnavailable
}

// Display renders the value for human-facing output. Unavailable fields
// render as "N/A", matching what renderers and exporters expect.
func (v Value) Display() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		switch v.Unit {
		case UnitCurrency:
			if v.Num < 0 {
				return "-$" + groupThousands(-v.Num)
			}
			return "$" + groupThousands(v.Num)
		case UnitPercent:
			return fmt.Sprintf("%.2f%%", v.Num)
		case UnitCount:
			return strconv.FormatInt(int64(v.Num), 10)
		default:
			return strconv.FormatFloat(v.Num, 'f', 2, 64)
		}
	default:
		return "N/A"
	}
}

// groupThousands formats n with comma-grouped integer digits and two
// decimal places, e.g. 1234567.8 -> "1,234,567.80".
func groupThousands(n float64) string {
	s := strconv.FormatFloat(n, 'f', 2, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	dot := strings.IndexByte(s, '.')
	intPart, fracPart := s[:dot], s[dot:]

	var b strings.Builder
	b.WriteString(sign)
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	b.WriteString(fracPart)
	return b.String()
}
