package unit

import (
	"strings"

	"github.com/constructpro/dashboard/internal/domain/form"
	"github.com/constructpro/dashboard/internal/domain/project"
	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/domain/shared/valueobject"
	"github.com/constructpro/dashboard/internal/domain/unit"
)

// UnitRequest is the unit form as the client submits it. The status is
// computed upstream from sales and is never sent.
type UnitRequest struct {
	ProjectID     int64            `json:"project_id"`
	Name          string           `json:"name" binding:"required,max=200"`
	Category      string           `json:"category" binding:"required,oneof=apartment house commercial land parking"`
	Area          valueobject.Area `json:"area" binding:"-"`
	PriceCents    int64            `json:"price_cents"`
	Description   string           `json:"description" binding:"omitempty,max=2000"`
	ApartmentType string           `json:"apartment_type" binding:"omitempty,max=100"`
	Bedrooms      *int             `json:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms     *int             `json:"bathrooms" binding:"omitempty,gte=0"`
	Garages       *int             `json:"garages" binding:"omitempty,gte=0"`
	Floor         *int             `json:"floor" binding:"omitempty,gte=0"`
	Features      []string         `json:"features" binding:"omitempty,dive,max=100"`
}

type unitPayload struct {
	ProjectID     int64            `json:"project_id"`
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	Area          valueobject.Area `json:"area"`
	PriceCents    int64            `json:"price_cents"`
	Description   *string          `json:"description"`
	ApartmentType *string          `json:"apartment_type"`
	Bedrooms      *int             `json:"bedrooms"`
	Bathrooms     *int             `json:"bathrooms"`
	Garages       *int             `json:"garages"`
	Floor         *int             `json:"floor"`
	Features      []string         `json:"features"`
}

func buildPayload(req UnitRequest) unitPayload {
	return unitPayload{
		ProjectID:     req.ProjectID,
		Name:          strings.TrimSpace(req.Name),
		Category:      req.Category,
		Area:          req.Area,
		PriceCents:    req.PriceCents,
		Description:   nullable(req.Description),
		ApartmentType: nullable(req.ApartmentType),
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		Garages:       req.Garages,
		Floor:         req.Floor,
		Features:      form.NewTagSet(req.Features).Items(),
	}
}

// UnitListItem is one row of the unit list
type UnitListItem struct {
	unit.Unit
	Code          string `json:"code"`
	StatusLabel   string `json:"status_label"`
	CategoryLabel string `json:"category_label"`
	PriceLabel    string `json:"price_label"`
	AreaLabel     string `json:"area_label"`
	FloorLabel    string `json:"floor_label,omitempty"`
}

func toListItem(u unit.Unit) UnitListItem {
	item := UnitListItem{
		Unit:          u,
		Code:          valueobject.FormatID(u.ID),
		StatusLabel:   shared.LabelOf(unit.StatusOptions, string(u.EffectiveStatus())),
		CategoryLabel: shared.LabelOf(unit.CategoryOptions, string(u.Category)),
		PriceLabel:    u.PriceLabel(),
		AreaLabel:     u.Area.Label(),
	}
	if u.Floor != nil {
		item.FloorLabel = project.FloorLabel(*u.Floor)
	}
	return item
}

// FormOptions are the choices the unit form offers
type FormOptions struct {
	Categories []shared.Option `json:"categories"`
	Features   []string        `json:"features"`
}

// FormValues renders a stored unit back into form input
func FormValues(u unit.Unit) UnitRequest {
	return UnitRequest{
		ProjectID:     u.ProjectID,
		Name:          u.Name,
		Category:      string(u.Category),
		Area:          u.Area,
		PriceCents:    u.PriceCents,
		Description:   deref(u.Description),
		ApartmentType: deref(u.ApartmentType),
		Bedrooms:      u.Bedrooms,
		Bathrooms:     u.Bathrooms,
		Garages:       u.Garages,
		Floor:         u.Floor,
		Features:      u.Features,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
