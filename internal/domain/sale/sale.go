// Package sale describes sales funnel entries.
package sale

import (
	"math"
	"strconv"
	"time"

	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/domain/shared/valueobject"
)

// Status is a sale's funnel stage
type Status string

const (
	StatusOffer    Status = "offer"
	StatusReserved Status = "reserved"
	StatusClosed   Status = "closed"
	StatusLost     Status = "lost"
)

// StatusOptions are the status filter choices
var StatusOptions = []shared.Option{
	{Value: string(StatusOffer), Label: "Proposta"},
	{Value: string(StatusReserved), Label: "Reservada"},
	{Value: string(StatusClosed), Label: "Fechada"},
	{Value: string(StatusLost), Label: "Perdida"},
}

// PeriodOptions are the creation-date filter choices
var PeriodOptions = []shared.Option{
	{Value: "7d", Label: "Últimos 7 dias"},
	{Value: "30d", Label: "Últimos 30 dias"},
	{Value: "90d", Label: "Últimos 90 dias"},
	{Value: "365d", Label: "Último ano"},
}

// Party is the embedded summary of a related record
type Party struct {
	ID       int64  `json:"id"`
	Name     string `json:"name,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Project  *Party `json:"project,omitempty"`
}

// Sale is a sale record
type Sale struct {
	ID             int64     `json:"id"`
	Status         Status    `json:"status"`
	AmountCents    int64     `json:"amount_cents"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Unit           *Party    `json:"unit,omitempty"`
	Customer       *Party    `json:"customer,omitempty"`
	User           *Party    `json:"user,omitempty"`
	Contract       *string   `json:"contract,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// HasDiscount reports whether the sale closed below the list price
func (s Sale) HasDiscount() bool {
	return s.AmountCents < s.UnitPriceCents
}

// DiscountPercent returns the rounded discount over the list price
func (s Sale) DiscountPercent() string {
	if s.UnitPriceCents == 0 {
		return "0"
	}
	pct := float64(s.UnitPriceCents-s.AmountCents) / float64(s.UnitPriceCents) * 100
	return strconv.FormatFloat(math.Round(pct), 'f', 0, 64)
}

// AmountLabel renders the sale amount
func (s Sale) AmountLabel() string {
	return valueobject.FormatBRL(s.AmountCents)
}

// PeriodStart returns the earliest creation time for a period filter value
func PeriodStart(period string, now time.Time) (time.Time, bool) {
	days := map[string]int{"7d": 7, "30d": 30, "90d": 90, "365d": 365}
	n, ok := days[period]
	if !ok {
		return time.Time{}, false
	}
	return now.AddDate(0, 0, -n), true
}
