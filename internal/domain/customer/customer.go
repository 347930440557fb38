// Package customer describes customer records as served by the upstream API.
package customer

import (
	"strings"
	"time"

	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/domain/shared/valueobject"
)

// Type distinguishes individuals (CPF) from companies (CNPJ)
type Type string

const (
	TypeIndividual Type = "individual"
	TypeCompany    Type = "company"
)

// DocumentKind returns the taxpayer document a customer type carries
func (t Type) DocumentKind() valueobject.DocumentKind {
	if t == TypeCompany {
		return valueobject.CNPJ
	}
	return valueobject.CPF
}

// Valid reports whether t is a known type
func (t Type) Valid() bool {
	return t == TypeIndividual || t == TypeCompany
}

// TypeOptions are the customer type filter choices
var TypeOptions = []shared.Option{
	{Value: string(TypeIndividual), Label: "Pessoa Física"},
	{Value: string(TypeCompany), Label: "Pessoa Jurídica"},
}

// GenderOptions for individuals
var GenderOptions = []shared.Option{
	{Value: "male", Label: "Masculino"},
	{Value: "female", Label: "Feminino"},
}

// MaritalStatusOptions for individuals
var MaritalStatusOptions = []shared.Option{
	{Value: "single", Label: "Solteiro(a)"},
	{Value: "married", Label: "Casado(a)"},
	{Value: "divorced", Label: "Divorciado(a)"},
	{Value: "widowed", Label: "Viúvo(a)"},
	{Value: "stable union", Label: "União Estável"},
}

// Text limits for customer fields
const (
	FullNameMaxLength    = 120
	LegalNameMaxLength   = 150
	EmailMaxLength       = 255
	BirthPlaceMaxLength  = 100
	CitizenshipMaxLength = 100
	RGMaxLength          = 30
	RGIssuerMaxLength    = 50
)

// Customer is a customer record
type Customer struct {
	ID            int64     `json:"id"`
	Type          Type      `json:"type"`
	FullName      string    `json:"full_name"`
	LegalName     *string   `json:"legal_name,omitempty"`
	CPFCNPJ       string    `json:"cpf_cnpj"`
	Email         *string   `json:"email,omitempty"`
	Phone         string    `json:"phone"`
	Birthday      *string   `json:"birthday,omitempty"`
	Gender        *string   `json:"gender,omitempty"`
	MaritalStatus *string   `json:"marital_status,omitempty"`
	RG            *string   `json:"rg,omitempty"`
	RGIssuer      *string   `json:"rg_issuer,omitempty"`
	RGIssueState  *string   `json:"rg_issue_state,omitempty"`
	Address       *string   `json:"address,omitempty"`
	AddressNumber *string   `json:"address_number,omitempty"`
	Neighborhood  *string   `json:"neighborhood,omitempty"`
	City          *string   `json:"city,omitempty"`
	State         *string   `json:"state,omitempty"`
	PostalCode    *string   `json:"postal_code,omitempty"`
	Complement    *string   `json:"complement,omitempty"`
	Country       string    `json:"country"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DocumentLabel renders the CPF or CNPJ with its mask
func (c Customer) DocumentLabel() string {
	return valueobject.FormatDocument(c.CPFCNPJ)
}

// PhoneLabel renders the phone for listings
func (c Customer) PhoneLabel() string {
	return valueobject.FormatPhoneDisplay(c.Phone)
}

// WhatsAppLink returns the click-to-chat link for the customer's phone
func (c Customer) WhatsAppLink() string {
	return valueobject.WhatsAppLink(c.Phone)
}

// Location renders "city - state"
func (c Customer) Location() string {
	return valueobject.Location(deref(c.City), deref(c.State))
}

// Initials returns up to two uppercase initials of the name, or "?"
func Initials(name string) string {
	var initials []rune
	for _, part := range strings.Fields(name) {
		initials = append(initials, []rune(part)[0])
		if len(initials) == 2 {
			break
		}
	}
	if len(initials) == 0 {
		return "?"
	}
	return strings.ToUpper(string(initials))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
