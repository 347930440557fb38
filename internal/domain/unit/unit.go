// Package unit describes the sellable units of a development.
package unit

import (
	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/domain/shared/valueobject"
)

// Status is computed upstream from the unit's sales
type Status string

const (
	StatusAvailable   Status = "available"
	StatusReserved    Status = "reserved"
	StatusSold        Status = "sold"
	StatusUnavailable Status = "unavailable"
)

// StatusOptions are the status filter choices
var StatusOptions = []shared.Option{
	{Value: string(StatusAvailable), Label: "Disponível"},
	{Value: string(StatusReserved), Label: "Reservada"},
	{Value: string(StatusSold), Label: "Vendida"},
	{Value: string(StatusUnavailable), Label: "Indisponível"},
}

// Category of a unit
type Category string

const (
	CategoryApartment  Category = "apartment"
	CategoryHouse      Category = "house"
	CategoryCommercial Category = "commercial"
	CategoryLand       Category = "land"
	CategoryParking    Category = "parking"
)

// CategoryOptions are the selectable categories
var CategoryOptions = []shared.Option{
	{Value: string(CategoryApartment), Label: "Apartamento"},
	{Value: string(CategoryHouse), Label: "Casa"},
	{Value: string(CategoryCommercial), Label: "Sala Comercial"},
	{Value: string(CategoryLand), Label: "Terreno"},
	{Value: string(CategoryParking), Label: "Vaga de Garagem"},
}

// Text limits for unit fields
const (
	NameMaxLength          = 200
	DescriptionMaxLength   = 2000
	ApartmentTypeMaxLength = 100
)

// DefaultFeatures are the suggested unit features
var DefaultFeatures = []string{
	"Varanda",
	"Suíte",
	"Closet",
	"Ar Condicionado",
	"Vista Mar",
	"Sol da Manhã",
	"Armários Embutidos",
	"Piso Porcelanato",
	"Box Blindex",
	"Despensa",
	"Sacada Gourmet",
	"Área de Serviço",
	"Home Office",
	"Churrasqueira",
	"Lareira",
	"Banheira",
	"Piscina Privativa",
	"Jardim Privativo",
	"Mezanino",
	"Pé Direito Duplo",
}

// Unit is a unit record
type Unit struct {
	ID            int64            `json:"id"`
	ProjectID     int64            `json:"project_id"`
	Name          string           `json:"name"`
	Category      Category         `json:"category"`
	Status        *Status          `json:"status,omitempty"`
	Area          valueobject.Area `json:"area"`
	PriceCents    int64            `json:"price_cents"`
	Description   *string          `json:"description,omitempty"`
	ApartmentType *string          `json:"apartment_type,omitempty"`
	Bedrooms      *int             `json:"bedrooms,omitempty"`
	Bathrooms     *int             `json:"bathrooms,omitempty"`
	Garages       *int             `json:"garages,omitempty"`
	Floor         *int             `json:"floor,omitempty"`
	Features      []string         `json:"features,omitempty"`
}

// EffectiveStatus defaults a missing status to available
func (u Unit) EffectiveStatus() Status {
	if u.Status == nil {
		return StatusAvailable
	}
	return *u.Status
}

// PriceLabel renders the price, e.g. "R$ 350.000,00"
func (u Unit) PriceLabel() string {
	return valueobject.FormatBRL(u.PriceCents)
}
