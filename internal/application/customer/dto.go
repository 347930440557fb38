package customer

import (
	"strings"

	"github.com/constructpro/dashboard/internal/domain/customer"
	"github.com/constructpro/dashboard/internal/domain/shared/valueobject"
)

// CustomerRequest is the customer form as the client submits it. Masked
// values (document, birthday, postal code) are accepted as typed.
type CustomerRequest struct {
	Type          string `json:"type" binding:"required,oneof=individual company"`
	FullName      string `json:"full_name" binding:"required,min=3,max=120"`
	LegalName     string `json:"legal_name" binding:"omitempty,min=3,max=150"`
	CPFCNPJ       string `json:"cpf_cnpj"`
	Email         string `json:"email" binding:"omitempty,email,max=255"`
	Phone         string `json:"phone" binding:"required,e164"`
	Birthday      string `json:"birthday" binding:"omitempty,birthdate_br"`
	Gender        string `json:"gender" binding:"omitempty,oneof=male female"`
	MaritalStatus string `json:"marital_status"`
	RG            string `json:"rg" binding:"omitempty,max=30"`
	RGIssuer      string `json:"rg_issuer" binding:"omitempty,max=50"`
	RGIssueState  string `json:"rg_issue_state" binding:"omitempty,len=2"`
	Address       string `json:"address" binding:"omitempty,max=200"`
	AddressNumber string `json:"address_number" binding:"omitempty,max=20"`
	Neighborhood  string `json:"neighborhood" binding:"omitempty,max=100"`
	City          string `json:"city" binding:"omitempty,max=100"`
	State         string `json:"state" binding:"omitempty,max=50"`
	PostalCode    string `json:"postal_code" binding:"omitempty,max=20"`
	Complement    string `json:"complement" binding:"omitempty,max=100"`
	Country       string `json:"country" binding:"required,iso3166_1_alpha2"`
}

// CustomerType returns the request's customer type
func (r CustomerRequest) CustomerType() customer.Type {
	return customer.Type(r.Type)
}

// customerPayload is the body sent upstream. Optional fields are sent as
// null when blank.
type customerPayload struct {
	Type          string  `json:"type"`
	FullName      string  `json:"full_name"`
	LegalName     *string `json:"legal_name"`
	CPFCNPJ       string  `json:"cpf_cnpj,omitempty"`
	Email         *string `json:"email"`
	Phone         string  `json:"phone"`
	Birthday      *string `json:"birthday"`
	Gender        *string `json:"gender"`
	MaritalStatus *string `json:"marital_status"`
	RG            *string `json:"rg"`
	RGIssuer      *string `json:"rg_issuer"`
	RGIssueState  *string `json:"rg_issue_state"`
	Address       *string `json:"address"`
	AddressNumber *string `json:"address_number"`
	Neighborhood  *string `json:"neighborhood"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	PostalCode    *string `json:"postal_code"`
	Complement    *string `json:"complement"`
	Country       string  `json:"country"`
}

// CustomerListItem is one row of the customer list
type CustomerListItem struct {
	customer.Customer
	Code          string `json:"code"`
	Initials      string `json:"initials"`
	DocumentLabel string `json:"document_label"`
	PhoneLabel    string `json:"phone_label"`
	WhatsAppLink  string `json:"whatsapp_link"`
	Location      string `json:"location"`
	TypeLabel     string `json:"type_label"`
}

func toListItem(c customer.Customer) CustomerListItem {
	return CustomerListItem{
		Customer:      c,
		Code:          valueobject.FormatID(c.ID),
		Initials:      customer.Initials(c.FullName),
		DocumentLabel: c.DocumentLabel(),
		PhoneLabel:    c.PhoneLabel(),
		WhatsAppLink:  c.WhatsAppLink(),
		Location:      c.Location(),
		TypeLabel:     labelOf(c.Type),
	}
}

// FormValues renders a stored customer back into form input, with the
// document and birthday masked the way they are typed.
func FormValues(c customer.Customer) CustomerRequest {
	birthday := ""
	if c.Birthday != nil {
		birthday = valueobject.FormatISOToBirthDate(*c.Birthday)
	}
	return CustomerRequest{
		Type:          string(c.Type),
		FullName:      c.FullName,
		LegalName:     deref(c.LegalName),
		CPFCNPJ:       valueobject.MaskDocument(c.Type.DocumentKind(), c.CPFCNPJ),
		Email:         deref(c.Email),
		Phone:         c.Phone,
		Birthday:      birthday,
		Gender:        deref(c.Gender),
		MaritalStatus: deref(c.MaritalStatus),
		RG:            deref(c.RG),
		RGIssuer:      deref(c.RGIssuer),
		RGIssueState:  deref(c.RGIssueState),
		Address:       deref(c.Address),
		AddressNumber: deref(c.AddressNumber),
		Neighborhood:  deref(c.Neighborhood),
		City:          deref(c.City),
		State:         deref(c.State),
		PostalCode:    deref(c.PostalCode),
		Complement:    deref(c.Complement),
		Country:       c.Country,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nullable trims s and returns nil when nothing is left
func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
