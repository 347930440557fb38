package valueobject

import "strings"

// DomesticCountry is the country whose addresses are resolved by postal code
const DomesticCountry = "BR"

// Address field limits
const (
	StreetMaxLength       = 200
	NumberMaxLength       = 20
	NeighborhoodMaxLength = 100
	CityMaxLength         = 100
	StateMaxLength        = 50
	ComplementMaxLength   = 100
)

// AddressFragment is the address portion of a form draft. When the country is
// domestic, City and State come from the postal-code lookup only.
type AddressFragment struct {
	Country      string `json:"country"`
	PostalCode   string `json:"postal_code"`
	Street       string `json:"address"`
	Number       string `json:"address_number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Complement   string `json:"complement"`
}

// IsDomestic reports whether the fragment's country is resolved by postal code.
// An unset country counts as domestic.
func (a AddressFragment) IsDomestic() bool {
	return IsDomesticCountry(a.Country)
}

// IsDomesticCountry reports whether country is resolved by postal code
func IsDomesticCountry(country string) bool {
	c := strings.TrimSpace(country)
	return c == "" || strings.EqualFold(c, DomesticCountry)
}

// IsEmpty reports whether every field except the country is blank
func (a AddressFragment) IsEmpty() bool {
	return a.PostalCode == "" && a.Street == "" && a.Number == "" &&
		a.Neighborhood == "" && a.City == "" && a.State == "" && a.Complement == ""
}

// Location renders "city - state", or whichever part is present
func (a AddressFragment) Location() string {
	return Location(a.City, a.State)
}

// Location renders "city - state", or whichever part is present
func Location(city, state string) string {
	switch {
	case city != "" && state != "":
		return city + " - " + state
	case city != "":
		return city
	default:
		return state
	}
}

// StreetLine renders "street, number - complement"
func (a AddressFragment) StreetLine() string {
	line := a.Street
	if a.Number != "" {
		if line != "" {
			line += ", "
		}
		line += a.Number
	}
	if a.Complement != "" {
		if line != "" {
			line += " - "
		}
		line += a.Complement
	}
	return line
}
