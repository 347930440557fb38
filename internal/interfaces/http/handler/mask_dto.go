package handler

import "github.com/constructpro/dashboard/internal/domain/shared/valueobject"

// MaskRequest carries one keystroke snapshot of a masked input
type MaskRequest struct {
	Value string `json:"value"`
}

// CurrencyMaskResponse is the re-masked currency input
type CurrencyMaskResponse struct {
	Display string `json:"display"`
	Cents   int64  `json:"cents"`
}

// AreaMaskRequest is the area input; Blur asks for the two-decimal rendering
type AreaMaskRequest struct {
	Value string `json:"value"`
	Blur  bool   `json:"blur"`
}

// AreaMaskResponse is the parsed area input
type AreaMaskResponse struct {
	Display string           `json:"display"`
	Area    valueobject.Area `json:"area"`
}

// DocumentMaskRequest is the CPF/CNPJ input. Current is the stored value when
// Edit is set.
type DocumentMaskRequest struct {
	Value   string `json:"value"`
	Kind    string `json:"kind" binding:"required,oneof=cpf cnpj"`
	Edit    bool   `json:"edit"`
	Current string `json:"current"`
}

// DocumentMaskResponse is the masked document and its checksum result
type DocumentMaskResponse struct {
	Display  string `json:"display"`
	Digits   string `json:"digits"`
	Complete bool   `json:"complete"`
	Valid    bool   `json:"valid"`
	ReadOnly bool   `json:"read_only"`
}

// CEPMaskRequest is the postal-code input together with the address block it
// fills. Form picks the block layout; project addresses are always domestic
// and their neighborhood is the district.
type CEPMaskRequest struct {
	Value        string `json:"value"`
	Form         string `json:"form" binding:"omitempty,oneof=customers projects"`
	Country      string `json:"country"`
	Address      string `json:"address"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// CEPMaskResponse is the address block after the postal code was applied
type CEPMaskResponse struct {
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
	Address      string `json:"address"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Domestic     bool   `json:"domestic"`
	Lookup       string `json:"lookup"` // idle, failed
}

// BirthDateMaskResponse is the masked birth date
type BirthDateMaskResponse struct {
	Display string `json:"display"`
	ISO     string `json:"iso,omitempty"`
	Error   string `json:"error,omitempty"`
}

// PhoneMaskRequest is the phone input and its selected country
type PhoneMaskRequest struct {
	Value   string `json:"value"`
	Country string `json:"country"`
}

// PhoneMaskResponse is the normalized phone input
type PhoneMaskResponse struct {
	E164          string `json:"e164"`
	Country       string `json:"country"`
	CallingCode   string `json:"calling_code"`
	Placeholder   string `json:"placeholder"`
	International string `json:"international,omitempty"`
	Error         string `json:"error,omitempty"`
}

// FeaturesMaskRequest is one edit of a features tag input
type FeaturesMaskRequest struct {
	Form     string   `json:"form" binding:"required,oneof=units projects"`
	Selected []string `json:"selected"`
	Typed    string   `json:"typed"`
	Add      string   `json:"add"`
	Remove   string   `json:"remove"`
	Key      string   `json:"key" binding:"omitempty,oneof=enter backspace"`
}

// FeaturesMaskResponse is the tag input after the edit
type FeaturesMaskResponse struct {
	Tags         []string `json:"tags"`
	Typed        string   `json:"typed"`
	Suggestions  []string `json:"suggestions"`
	CustomOption string   `json:"custom_option,omitempty"`
}
