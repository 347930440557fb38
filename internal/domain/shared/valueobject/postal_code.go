package valueobject

import "unicode/utf8"

// Postal code limits
const (
	CEPLength             = 8
	CEPMaskedLength       = 9
	PostalCodeMaxLength   = 20
	CEPPlaceholder        = "00000-000"
	ForeignPostalCodeHint = "Código postal"
)

// MaskCEP masks up to 8 digits as 00000-000
func MaskCEP(raw string) string {
	return applyMask(OnlyDigits(raw), cepMask)
}

// IsCompleteCEP reports whether raw holds exactly 8 digits
func IsCompleteCEP(raw string) bool {
	return len(OnlyDigits(raw)) == CEPLength
}

// NormalizeForeignPostalCode keeps free text, truncated to the field limit
func NormalizeForeignPostalCode(raw string) string {
	return TruncateRunes(raw, PostalCodeMaxLength)
}

// TruncateRunes cuts s to at most n runes
func TruncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// PostalAddress is the result of a successful postal-code lookup
type PostalAddress struct {
	PostalCode   string `json:"cep"`
	State        string `json:"state"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
	Street       string `json:"street"`
}
