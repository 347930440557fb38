// Package project describes property developments ("empreendimentos").
package project

import (
	"strconv"
	"strings"
	"time"

	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/domain/shared/valueobject"
)

// Status of a development
type Status string

const (
	StatusConstruction Status = "construction"
	StatusFinished     Status = "finished"
)

// StatusOptions are the selectable statuses
var StatusOptions = []shared.Option{
	{Value: string(StatusConstruction), Label: "Em Construção"},
	{Value: string(StatusFinished), Label: "Concluído"},
}

// Text limits for project fields
const (
	NameMaxLength        = 200
	DescriptionMaxLength = 2000
	FloorsMaxLength      = 10
)

// DefaultFloorCount is used when a project does not declare its floors
const DefaultFloorCount = 10

// DefaultFeatures are the suggested amenities for a development
var DefaultFeatures = []string{
	"Piscina",
	"Academia",
	"Salão de Festas",
	"Churrasqueira",
	"Playground",
	"Quadra Esportiva",
	"Pet Place",
	"Bicicletário",
	"Coworking",
	"Lavanderia",
	"Rooftop",
	"Portaria 24h",
	"Elevador",
	"Vagas de Garagem",
	"Área Gourmet",
	"Sauna",
	"Spa",
	"Espaço Kids",
	"Jardim",
	"Horta Comunitária",
}

// Project is a development record
type Project struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Status       Status    `json:"status"`
	Description  *string   `json:"description,omitempty"`
	Address      string    `json:"address"`
	Number       string    `json:"number"`
	District     string    `json:"district"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PostalCode   string    `json:"postal_code"`
	Floors       *string   `json:"floors,omitempty"`
	DeliveryDate *string   `json:"delivery_date,omitempty"`
	Features     []string  `json:"features,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Location renders "district - city"
func (p Project) Location() string {
	return valueobject.Location(p.District, p.City)
}

// FloorCount parses the declared floors, falling back to the default
func (p Project) FloorCount() int {
	if p.Floors == nil {
		return DefaultFloorCount
	}
	n, err := strconv.Atoi(strings.TrimSpace(*p.Floors))
	if err != nil || n < 0 {
		return DefaultFloorCount
	}
	return n
}

// FloorLabel names a floor: 0 is the ground floor
func FloorLabel(floor int) string {
	if floor == 0 {
		return "Térreo"
	}
	return strconv.Itoa(floor) + "º Andar"
}

// FloorOption is a selectable floor
type FloorOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// FloorOptions lists floors 0..maxFloors
func FloorOptions(maxFloors int) []FloorOption {
	if maxFloors < 0 {
		maxFloors = DefaultFloorCount
	}
	out := make([]FloorOption, 0, maxFloors+1)
	for i := 0; i <= maxFloors; i++ {
		out = append(out, FloorOption{Value: i, Label: FloorLabel(i)})
	}
	return out
}
