// Package phone adapts libphonenumber to the phone input controller.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/constructpro/dashboard/internal/domain/form"
)

// Formatter implements form.PhoneFormatter with libphonenumber metadata
type Formatter struct{}

// NewFormatter creates a Formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

var _ form.PhoneFormatter = (*Formatter)(nil)

// Normalize parses raw as a number dialed from region and returns its E.164
// form
func (f *Formatter) Normalize(raw, region string) (string, bool) {
	num, err := phonenumbers.Parse(raw, strings.ToUpper(region))
	if err != nil {
		return "", false
	}
	return phonenumbers.Format(num, phonenumbers.E164), true
}

// ValidForRegion reports whether e164 is a valid number of region
func (f *Formatter) ValidForRegion(e164, region string) bool {
	num, err := phonenumbers.Parse(e164, "")
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumberForRegion(num, strings.ToUpper(region))
}

// Region returns the region of e164, or "" when unknown
func (f *Formatter) Region(e164 string) string {
	num, err := phonenumbers.Parse(e164, "")
	if err != nil {
		return ""
	}
	region := phonenumbers.GetRegionCodeForNumber(num)
	if region == "ZZ" {
		return ""
	}
	return region
}

// CallingCode returns the country calling code of region, 0 when unknown
func (f *Formatter) CallingCode(region string) int {
	return phonenumbers.GetCountryCodeForRegion(strings.ToUpper(region))
}

// International renders e164 in international notation, e.g.
// "+55 11 99999-9999". Unparseable input is returned unchanged.
func (f *Formatter) International(e164 string) string {
	num, err := phonenumbers.Parse(e164, "")
	if err != nil {
		return e164
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}
