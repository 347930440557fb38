package valueobject

import (
	"regexp"
	"strings"
)

// DefaultPhoneCountry is the region preselected in phone inputs
const DefaultPhoneCountry = "BR"

var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

// phonePlaceholders are example numbers per region, shown in empty fields
var phonePlaceholders = map[string]string{
	"BR": "(11) 99999-9999",
	"US": "(201) 555-0123",
	"CA": "(204) 555-0123",
	"GB": "07123 456789",
	"PT": "912 345 678",
	"ES": "612 34 56 78",
	"FR": "06 12 34 56 78",
	"DE": "0151 23456789",
	"IT": "312 345 6789",
	"AR": "11 2345-6789",
	"CL": "9 6123 4567",
	"CO": "301 234 5678",
	"MX": "55 1234 5678",
}

// IsE164 reports whether s is a canonical international number
func IsE164(s string) bool {
	return e164Pattern.MatchString(s)
}

// PhonePlaceholder returns the example number for region, falling back to
// the domestic one.
func PhonePlaceholder(region string) string {
	if p, ok := phonePlaceholders[strings.ToUpper(region)]; ok {
		return p
	}
	return phonePlaceholders[DefaultPhoneCountry]
}

// FormatPhoneDisplay renders a domestic number for listings: the country code
// is dropped and the digits are grouped as (11) 99999-9999 or (11) 3333-4444.
// Other lengths are returned as given.
func FormatPhoneDisplay(phone string) string {
	digits := OnlyDigits(phone)
	if len(digits) > 11 && strings.HasPrefix(digits, "55") {
		digits = digits[2:]
	}
	switch len(digits) {
	case 11:
		return "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:]
	case 10:
		return "(" + digits[:2] + ") " + digits[2:6] + "-" + digits[6:]
	default:
		return phone
	}
}

// WhatsAppLink returns the click-to-chat URL for a phone number
func WhatsAppLink(phone string) string {
	digits := OnlyDigits(phone)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits
}
