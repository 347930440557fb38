package project

import (
	"strings"

	"github.com/constructpro/dashboard/internal/domain/form"
	"github.com/constructpro/dashboard/internal/domain/project"
	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/domain/shared/valueobject"
)

// ProjectRequest is the project form as the client submits it
type ProjectRequest struct {
	Name         string   `json:"name" binding:"required,max=200"`
	Status       string   `json:"status" binding:"required,oneof=construction finished"`
	Description  string   `json:"description" binding:"omitempty,max=2000"`
	Address      string   `json:"address" binding:"required,max=200"`
	Number       string   `json:"number" binding:"required,max=20"`
	District     string   `json:"district" binding:"required,max=100"`
	City         string   `json:"city" binding:"required,max=100"`
	State        string   `json:"state" binding:"required,max=50"`
	PostalCode   string   `json:"postal_code" binding:"required,max=20"`
	Floors       string   `json:"floors" binding:"omitempty,max=10"`
	DeliveryDate string   `json:"delivery_date" binding:"omitempty,datetime=2006-01-02"`
	Features     []string `json:"features" binding:"omitempty,dive,max=100"`
}

type projectPayload struct {
	Name         string   `json:"name"`
	Status       string   `json:"status"`
	Description  *string  `json:"description"`
	Address      string   `json:"address"`
	Number       string   `json:"number"`
	District     string   `json:"district"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	PostalCode   string   `json:"postal_code"`
	Floors       *string  `json:"floors"`
	DeliveryDate *string  `json:"delivery_date"`
	Features     []string `json:"features"`
}

func buildPayload(req ProjectRequest) projectPayload {
	return projectPayload{
		Name:         strings.TrimSpace(req.Name),
		Status:       req.Status,
		Description:  nullable(req.Description),
		Address:      strings.TrimSpace(req.Address),
		Number:       strings.TrimSpace(req.Number),
		District:     strings.TrimSpace(req.District),
		City:         strings.TrimSpace(req.City),
		State:        strings.TrimSpace(req.State),
		PostalCode:   valueobject.MaskCEP(req.PostalCode),
		Floors:       nullable(req.Floors),
		DeliveryDate: nullable(req.DeliveryDate),
		Features:     form.NewTagSet(req.Features).Items(),
	}
}

// ProjectListItem is one card of the project list
type ProjectListItem struct {
	project.Project
	Code        string `json:"code"`
	StatusLabel string `json:"status_label"`
	Location    string `json:"location"`
}

func toListItem(p project.Project) ProjectListItem {
	return ProjectListItem{
		Project:     p,
		Code:        valueobject.FormatID(p.ID),
		StatusLabel: shared.LabelOf(project.StatusOptions, string(p.Status)),
		Location:    p.Location(),
	}
}

// FormOptions are the choices the project form offers
type FormOptions struct {
	Statuses []shared.Option `json:"statuses"`
	Features []string        `json:"features"`
}

// FormValues renders a stored project back into form input
func FormValues(p project.Project) ProjectRequest {
	return ProjectRequest{
		Name:         p.Name,
		Status:       string(p.Status),
		Description:  deref(p.Description),
		Address:      p.Address,
		Number:       p.Number,
		District:     p.District,
		City:         p.City,
		State:        p.State,
		PostalCode:   valueobject.MaskCEP(p.PostalCode),
		Floors:       deref(p.Floors),
		DeliveryDate: deref(p.DeliveryDate),
		Features:     p.Features,
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
