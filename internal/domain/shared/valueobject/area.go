package valueobject

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Area is a nullable, non-negative surface in square meters with two-decimal
// precision. The zero value is "unspecified", which is distinct from 0 m².
type Area struct {
	value decimal.Decimal
	valid bool
}

// NullArea returns the unspecified area
func NullArea() Area {
	return Area{}
}

// NewArea builds an area from a decimal, rounding to two places.
// Negative values are unspecified.
func NewArea(v decimal.Decimal) Area {
	if v.IsNegative() {
		return Area{}
	}
	return Area{value: v.Round(2), valid: true}
}

// NewAreaFromFloat builds an area from a float64
func NewAreaFromFloat(f float64) Area {
	return NewArea(decimal.NewFromFloat(f))
}

// ParseArea reads keystrokes into an area. Only digits and separators are
// kept, the first comma becomes the decimal point and the longest numeric
// prefix is used. Empty or unparseable input is unspecified.
func ParseArea(raw string) Area {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.Replace(b.String(), ",", ".", 1)

	prefix := numericPrefix(cleaned)
	if prefix == "" {
		return Area{}
	}
	d, err := decimal.NewFromString(prefix)
	if err != nil {
		return Area{}
	}
	return NewArea(d)
}

// numericPrefix returns the longest "digits[.digits]" prefix that contains at
// least one digit.
func numericPrefix(s string) string {
	end := 0
	sawDigit := false
	sawDot := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			sawDigit = true
			end = i + 1
		case c == '.' && !sawDot:
			sawDot = true
			end = i + 1
		default:
			i = len(s)
		}
	}
	if !sawDigit {
		return ""
	}
	return strings.TrimSuffix(s[:end], ".")
}

// Valid reports whether the area was specified
func (a Area) Valid() bool {
	return a.valid
}

// Decimal returns the value, zero when unspecified
func (a Area) Decimal() decimal.Decimal {
	return a.value
}

// Float64 returns the value as float64, zero when unspecified
func (a Area) Float64() float64 {
	f, _ := a.value.Float64()
	return f
}

// Equal compares two areas, including their validity
func (a Area) Equal(other Area) bool {
	if a.valid != other.valid {
		return false
	}
	return !a.valid || a.value.Equal(other.value)
}

// EditText renders the area while the field has focus: shortest form with a
// comma separator ("12,5"). Unspecified renders empty.
func (a Area) EditText() string {
	if !a.valid {
		return ""
	}
	return strings.Replace(a.value.String(), ".", ",", 1)
}

// BlurText renders the area once the field loses focus: exactly two decimals
// with a comma separator ("12,50").
func (a Area) BlurText() string {
	if !a.valid {
		return ""
	}
	return strings.Replace(a.value.StringFixed(2), ".", ",", 1)
}

// Label renders the area for listings, e.g. "12,50m²", or "—" when absent.
func (a Area) Label() string {
	if !a.valid || a.value.IsZero() {
		return "—"
	}
	return a.BlurText() + "m²"
}

// MarshalJSON encodes the area as a JSON number or null
func (a Area) MarshalJSON() ([]byte, error) {
	if !a.valid {
		return []byte("null"), nil
	}
	return []byte(a.value.StringFixed(2)), nil
}

// UnmarshalJSON decodes a JSON number or null
func (a *Area) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Area{}
		return nil
	}
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	*a = NewArea(d)
	return nil
}
