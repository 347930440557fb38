package valueobject

import "strings"

// DocumentKind identifies a Brazilian taxpayer document
type DocumentKind string

const (
	// CPF is the 11-digit individual taxpayer number
	CPF DocumentKind = "cpf"
	// CNPJ is the 14-digit organizational taxpayer number
	CNPJ DocumentKind = "cnpj"
)

// Document lengths and the max length of their masked text
const (
	CPFLength        = 11
	CNPJLength       = 14
	CPFMaskedLength  = 14
	CNPJMaskedLength = 18
)

// Digits returns the document's digit count
func (k DocumentKind) Digits() int {
	if k == CNPJ {
		return CNPJLength
	}
	return CPFLength
}

// MaskedLength returns the max length of the masked text
func (k DocumentKind) MaskedLength() int {
	if k == CNPJ {
		return CNPJMaskedLength
	}
	return CPFMaskedLength
}

// Placeholder returns the mask pattern shown in an empty field
func (k DocumentKind) Placeholder() string {
	if k == CNPJ {
		return "00.000.000/0000-00"
	}
	return "000.000.000-00"
}

// Label returns the document's display name
func (k DocumentKind) Label() string {
	if k == CNPJ {
		return "CNPJ"
	}
	return "CPF"
}

// maskSegment is a block of digits preceded by a separator
type maskSegment struct {
	sep  string
	size int
}

var (
	cpfMask  = []maskSegment{{"", 3}, {".", 3}, {".", 3}, {"-", 2}}
	cnpjMask = []maskSegment{{"", 2}, {".", 3}, {".", 3}, {"/", 4}, {"-", 2}}
	cepMask  = []maskSegment{{"", 5}, {"-", 3}}
	dateMask = []maskSegment{{"", 2}, {"/", 2}, {"/", 4}}
)

// applyMask lays digits over the segments progressively: a separator appears
// only once a digit exists after it. Digits beyond the mask are dropped.
func applyMask(digits string, segments []maskSegment) string {
	var b strings.Builder
	pos := 0
	for _, seg := range segments {
		if pos >= len(digits) {
			break
		}
		end := pos + seg.size
		if end > len(digits) {
			end = len(digits)
		}
		b.WriteString(seg.sep)
		b.WriteString(digits[pos:end])
		pos = end
	}
	return b.String()
}

// MaskDocument strips non-digits and re-masks the input for kind
func MaskDocument(kind DocumentKind, raw string) string {
	if kind == CNPJ {
		return MaskCNPJ(raw)
	}
	return MaskCPF(raw)
}

// MaskCPF masks up to 11 digits as 000.000.000-00
func MaskCPF(raw string) string {
	return applyMask(OnlyDigits(raw), cpfMask)
}

// MaskCNPJ masks up to 14 digits as 00.000.000/0000-00
func MaskCNPJ(raw string) string {
	return applyMask(OnlyDigits(raw), cnpjMask)
}

// FormatDocument picks the mask from the digit count, returning the input
// untouched when it is neither a CPF nor a CNPJ.
func FormatDocument(raw string) string {
	digits := OnlyDigits(raw)
	switch len(digits) {
	case CPFLength:
		return MaskCPF(digits)
	case CNPJLength:
		return MaskCNPJ(digits)
	default:
		return raw
	}
}

// ValidDocument checks the digits of raw against kind's checksum
func ValidDocument(kind DocumentKind, raw string) bool {
	if kind == CNPJ {
		return ValidCNPJ(raw)
	}
	return ValidCPF(raw)
}

// ValidCPF verifies the two CPF check digits
func ValidCPF(raw string) bool {
	digits := OnlyDigits(raw)
	if len(digits) != CPFLength || allSame(digits) {
		return false
	}
	for _, n := range []int{9, 10} {
		sum := 0
		for i := 0; i < n; i++ {
			sum += int(digits[i]-'0') * (n + 1 - i)
		}
		if checkDigit(sum) != int(digits[n]-'0') {
			return false
		}
	}
	return true
}

var (
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// ValidCNPJ verifies the two CNPJ check digits
func ValidCNPJ(raw string) bool {
	digits := OnlyDigits(raw)
	if len(digits) != CNPJLength || allSame(digits) {
		return false
	}
	for i, weights := range [][]int{cnpjWeights1, cnpjWeights2} {
		sum := 0
		for j, w := range weights {
			sum += int(digits[j]-'0') * w
		}
		if checkDigit(sum) != int(digits[12+i]-'0') {
			return false
		}
	}
	return true
}

func checkDigit(sum int) int {
	rem := sum % 11
	if rem < 2 {
		return 0
	}
	return 11 - rem
}

func allSame(digits string) bool {
	return strings.Count(digits, digits[:1]) == len(digits)
}
