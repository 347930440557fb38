package valueobject

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// BirthDatePlaceholder is shown in an empty birth date field
const BirthDatePlaceholder = "DD/MM/AAAA"

const maxAgeYears = 150

var (
	birthDatePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	isoDatePattern   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)

	// ErrBirthDateFormat is returned when the text is not DD/MM/YYYY
	ErrBirthDateFormat = errors.New("Formato inválido. Use DD/MM/AAAA")
	// ErrBirthDateInvalid is returned for impossible, future or implausibly old dates
	ErrBirthDateInvalid = errors.New("Data de nascimento inválida")
)

// MaskBirthDate masks up to 8 digits as DD/MM/YYYY
func MaskBirthDate(raw string) string {
	return applyMask(OnlyDigits(raw), dateMask)
}

// ParseBirthDateToISO converts a masked DD/MM/YYYY into YYYY-MM-DD.
// It needs exactly 8 digits and does not check the calendar.
func ParseBirthDateToISO(masked string) (string, bool) {
	digits := OnlyDigits(masked)
	if len(digits) != 8 {
		return "", false
	}
	return digits[4:8] + "-" + digits[2:4] + "-" + digits[0:2], true
}

// FormatISOToBirthDate converts YYYY-MM-DD (optionally followed by a time)
// into DD/MM/YYYY. Anything else renders empty.
func FormatISOToBirthDate(iso string) string {
	m := isoDatePattern.FindStringSubmatch(iso)
	if m == nil {
		return ""
	}
	return m[3] + "/" + m[2] + "/" + m[1]
}

// ValidateBirthDate checks that masked is a real calendar date strictly before
// now and no more than 150 years ago.
func ValidateBirthDate(masked string, now time.Time) error {
	if !birthDatePattern.MatchString(masked) {
		return ErrBirthDateFormat
	}
	day, _ := strconv.Atoi(masked[0:2])
	month, _ := strconv.Atoi(masked[3:5])
	year, _ := strconv.Atoi(masked[6:10])

	loc := now.Location()
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return fmt.Errorf("%w: %s is not a calendar date", ErrBirthDateInvalid, masked)
	}
	if !date.Before(now) {
		return fmt.Errorf("%w: %s is not in the past", ErrBirthDateInvalid, masked)
	}
	if date.Before(now.AddDate(-maxAgeYears, 0, 0)) {
		return fmt.Errorf("%w: %s is more than %d years ago", ErrBirthDateInvalid, masked, maxAgeYears)
	}
	return nil
}
