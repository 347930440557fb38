package valueobject

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// maxCurrencyDigits bounds keystroke input so the cents value fits in int64
// with room to spare.
const maxCurrencyDigits = 15

var hundred = decimal.NewFromInt(100)

// MaskCurrency re-masks raw keystrokes as a pt-BR amount and returns the
// masked text together with its value in cents. The last two digits typed are
// always the cents, so "5" becomes "0,05" and "30000" becomes "300,00".
// Empty input yields ("", 0). Leading zeros do not count toward the digit
// limit; keystrokes past it are ignored, keeping the amount already typed.
func MaskCurrency(raw string) (string, int64) {
	digits := OnlyDigits(raw)
	if digits == "" {
		return "", 0
	}

	digits = strings.TrimLeft(digits, "0")
	if len(digits) > maxCurrencyDigits {
		digits = digits[:maxCurrencyDigits]
	}
	for len(digits) < 3 {
		digits = "0" + digits
	}

	whole := strings.TrimLeft(digits[:len(digits)-2], "0")
	if whole == "" {
		whole = "0"
	}
	cents := digits[len(digits)-2:]

	value, _ := decimal.NewFromString(whole + cents)
	return groupThousands(whole) + "," + cents, value.IntPart()
}

// ParseCents reads a display string ("R$ 1.234,56", "1.234,56", "300,00")
// back into cents. Empty input is zero.
func ParseCents(display string) (int64, error) {
	s := strings.ReplaceAll(display, "R$", "")
	s = strings.Join(strings.Fields(s), "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	if s == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid currency amount %q: %w", display, err)
	}
	return d.Mul(hundred).Round(0).IntPart(), nil
}

// FormatCents renders cents with two fraction digits and '.' thousands
// grouping. Zero renders as the empty string so a cleared field stays empty.
func FormatCents(cents int64) string {
	if cents == 0 {
		return ""
	}
	return formatCents(cents)
}

// FormatBRL renders cents as a currency label, e.g. "R$ 1.234,56".
func FormatBRL(cents int64) string {
	return "R$ " + formatCents(cents)
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s,%02d", sign, groupThousands(fmt.Sprintf("%d", cents/100)), cents%100)
}

// groupThousands inserts '.' every three digits from the right
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// OnlyDigits strips every non-ASCII-digit character
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
