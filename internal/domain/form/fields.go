package form

import (
	"time"

	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/domain/shared/valueobject"
)

// CurrencyField keeps an integer number of cents in its draft slot
type CurrencyField struct {
	draft *Draft
	name  string
}

// NewCurrencyField binds a currency controller to a draft slot
func NewCurrencyField(draft *Draft, name string) *CurrencyField {
	return &CurrencyField{draft: draft, name: name}
}

// OnChange re-masks the keystrokes, stores the cents and returns them.
// Clearing the field stores 0.
func (f *CurrencyField) OnChange(raw string) int64 {
	_, cents := valueobject.MaskCurrency(raw)
	f.draft.Set(f.name, cents)
	return cents
}

// Value returns the stored cents
func (f *CurrencyField) Value() int64 {
	v, _ := f.draft.Get(f.name)
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

// Display renders the stored cents; zero renders empty
func (f *CurrencyField) Display() string {
	return valueobject.FormatCents(f.Value())
}

// AreaField keeps a nullable area in its draft slot
type AreaField struct {
	draft *Draft
	name  string
	text  string
}

// NewAreaField binds an area controller to a draft slot
func NewAreaField(draft *Draft, name string) *AreaField {
	f := &AreaField{draft: draft, name: name}
	f.text = f.Value().EditText()
	return f
}

// OnChange parses the keystrokes and stores the rounded area, or the
// unspecified area for empty or unparseable text.
func (f *AreaField) OnChange(raw string) valueobject.Area {
	a := valueobject.ParseArea(raw)
	f.draft.Set(f.name, a)
	f.text = raw
	return a
}

// Blur reformats the text with exactly two decimals
func (f *AreaField) Blur() string {
	f.text = f.Value().BlurText()
	return f.text
}

// Display returns the text shown in the field
func (f *AreaField) Display() string {
	return f.text
}

// Value returns the stored area
func (f *AreaField) Value() valueobject.Area {
	v, _ := f.draft.Get(f.name)
	switch a := v.(type) {
	case valueobject.Area:
		return a
	case float64:
		return valueobject.NewAreaFromFloat(a)
	default:
		return valueobject.NullArea()
	}
}

// DocumentField keeps a masked CPF or CNPJ. Once the record exists the
// document is its natural key and the field becomes read-only.
type DocumentField struct {
	draft    *Draft
	name     string
	kind     valueobject.DocumentKind
	readOnly bool
}

// NewDocumentField binds a document controller to a draft slot. In edit mode
// the stored value is re-masked for display and further edits are refused.
func NewDocumentField(draft *Draft, name string, kind valueobject.DocumentKind, editMode bool) *DocumentField {
	f := &DocumentField{draft: draft, name: name, kind: kind, readOnly: editMode}
	if editMode {
		draft.Set(name, valueobject.FormatDocument(draft.String(name)))
	}
	return f
}

// OnChange strips non-digits and re-masks the input
func (f *DocumentField) OnChange(raw string) (string, error) {
	if f.readOnly {
		return f.Value(), shared.ErrReadOnlyField
	}
	masked := valueobject.MaskDocument(f.kind, raw)
	f.draft.Set(f.name, masked)
	return masked, nil
}

// Value returns the masked document
func (f *DocumentField) Value() string {
	return f.draft.String(f.name)
}

// Digits returns the document without separators
func (f *DocumentField) Digits() string {
	return valueobject.OnlyDigits(f.Value())
}

// Valid runs the checksum for the field's kind
func (f *DocumentField) Valid() bool {
	return valueobject.ValidDocument(f.kind, f.Value())
}

// Kind returns the document kind
func (f *DocumentField) Kind() valueobject.DocumentKind {
	return f.kind
}

// ReadOnly reports whether edits are refused
func (f *DocumentField) ReadOnly() bool {
	return f.readOnly
}

// BirthDateField keeps a masked DD/MM/YYYY birth date
type BirthDateField struct {
	draft *Draft
	name  string
}

// NewBirthDateField binds a birth date controller to a draft slot. An ISO
// value loaded from a record is converted to the masked form.
func NewBirthDateField(draft *Draft, name string) *BirthDateField {
	if cur := draft.String(name); cur != "" {
		if masked := valueobject.FormatISOToBirthDate(cur); masked != "" {
			draft.Set(name, masked)
		}
	}
	return &BirthDateField{draft: draft, name: name}
}

// OnChange masks the keystrokes and stores them
func (f *BirthDateField) OnChange(raw string) string {
	masked := valueobject.MaskBirthDate(raw)
	f.draft.Set(f.name, masked)
	return masked
}

// Value returns the masked date
func (f *BirthDateField) Value() string {
	return f.draft.String(f.name)
}

// ISO returns the date as YYYY-MM-DD when all 8 digits are present
func (f *BirthDateField) ISO() (string, bool) {
	return valueobject.ParseBirthDateToISO(f.Value())
}

// Validate checks the date against now; an empty field is valid
func (f *BirthDateField) Validate(now time.Time) error {
	v := f.Value()
	if v == "" {
		return nil
	}
	return valueobject.ValidateBirthDate(v, now)
}
