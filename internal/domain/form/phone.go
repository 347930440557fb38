package form

import (
	"strconv"
	"strings"

	"github.com/constructpro/dashboard/internal/domain/shared/valueobject"
)

// PhoneFormatter is the international numbering plan the phone field relies on
type PhoneFormatter interface {
	// Normalize reads text typed for region into E.164. ok is false when the
	// text cannot be read as a number at all.
	Normalize(raw, region string) (e164 string, ok bool)
	// ValidForRegion reports whether e164 is a valid number for region
	ValidForRegion(e164, region string) bool
	// Region returns the region an E.164 number belongs to, or ""
	Region(e164 string) string
	// CallingCode returns the country calling code for region, or 0
	CallingCode(region string) int
}

// PhoneField keeps an E.164 number and the selected country
type PhoneField struct {
	draft     *Draft
	name      string
	formatter PhoneFormatter
	country   string
	text      string
}

// NewPhoneField binds a phone controller to a draft slot. The selected country
// starts as the domestic one, or the region of an already stored number.
func NewPhoneField(draft *Draft, name string, formatter PhoneFormatter) *PhoneField {
	f := &PhoneField{
		draft:     draft,
		name:      name,
		formatter: formatter,
		country:   valueobject.DefaultPhoneCountry,
	}
	if cur := f.Value(); cur != "" {
		if region := formatter.Region(cur); region != "" {
			f.country = region
		}
		f.text = cur
	}
	return f
}

// OnChange normalizes the typed number. Typing a leading "+" with another
// calling code switches the selected country.
func (f *PhoneField) OnChange(raw string) string {
	f.text = raw
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		f.draft.Set(f.name, "")
		return ""
	}

	e164, ok := f.formatter.Normalize(trimmed, f.country)
	if !ok {
		f.draft.Set(f.name, trimmed)
		return trimmed
	}
	if strings.HasPrefix(trimmed, "+") {
		if region := f.formatter.Region(e164); region != "" {
			f.country = region
		}
	}
	f.draft.Set(f.name, e164)
	return e164
}

// SetCountry changes the selected country. Digits already entered are kept.
func (f *PhoneField) SetCountry(region string) {
	if region == "" {
		region = valueobject.DefaultPhoneCountry
	}
	f.country = strings.ToUpper(region)
}

// Country returns the selected country
func (f *PhoneField) Country() string {
	return f.country
}

// CallingCode returns the calling code prefix of the selected country, e.g. "+55"
func (f *PhoneField) CallingCode() string {
	code := f.formatter.CallingCode(f.country)
	if code == 0 {
		return ""
	}
	return "+" + strconv.Itoa(code)
}

// Placeholder returns the example number for the selected country
func (f *PhoneField) Placeholder() string {
	return valueobject.PhonePlaceholder(f.country)
}

// Value returns the stored number
func (f *PhoneField) Value() string {
	return f.draft.String(f.name)
}

// Display returns the text as typed
func (f *PhoneField) Display() string {
	return f.text
}

// Invalid is the error flag: set only for a non-empty value that is not a
// valid number for the selected country.
func (f *PhoneField) Invalid() bool {
	v := f.Value()
	if v == "" {
		return false
	}
	return !valueobject.IsE164(v) || !f.formatter.ValidForRegion(v, f.country)
}

// ErrorMessage returns the inline message for the error flag
func (f *PhoneField) ErrorMessage() string {
	if f.Invalid() {
		return "Telefone inválido"
	}
	return ""
}
