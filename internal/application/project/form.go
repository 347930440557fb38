package project

import (
	"github.com/constructpro/dashboard/internal/application/address"
	"github.com/constructpro/dashboard/internal/domain/form"
	"github.com/constructpro/dashboard/internal/domain/project"
)

// Form is the live state of one project form: its draft, the postal-code
// autofill into address and district, and the features input.
type Form struct {
	Draft    *form.Draft
	Address  *address.Controller
	Features *form.TagInput
}

// NewForm opens a form, prefilled from existing when editing. The autofill
// is bound to the project address layout.
func NewForm(existing *project.Project, lookup address.Lookup, opts ...address.Option) *Form {
	initial := map[string]any{"status": string(project.StatusConstruction)}
	if existing != nil {
		v := FormValues(*existing)
		initial = map[string]any{
			"name":          v.Name,
			"status":        v.Status,
			"description":   v.Description,
			"address":       v.Address,
			"number":        v.Number,
			"district":      v.District,
			"city":          v.City,
			"state":         v.State,
			"postal_code":   v.PostalCode,
			"floors":        v.Floors,
			"delivery_date": v.DeliveryDate,
			"features":      v.Features,
		}
	}
	draft := form.NewDraft(initial)

	opts = append([]address.Option{address.WithFields(address.ProjectFields)}, opts...)
	return &Form{
		Draft:    draft,
		Address:  address.NewController(draft, lookup, opts...),
		Features: form.NewTagInput(draft, "features", project.DefaultFeatures),
	}
}

// Request reads the draft as a submission
func (f *Form) Request() ProjectRequest {
	d := f.Draft
	return ProjectRequest{
		Name:         d.String("name"),
		Status:       d.String("status"),
		Description:  d.String("description"),
		Address:      d.String("address"),
		Number:       d.String("number"),
		District:     d.String("district"),
		City:         d.String("city"),
		State:        d.String("state"),
		PostalCode:   d.String("postal_code"),
		Floors:       d.String("floors"),
		DeliveryDate: d.String("delivery_date"),
		Features:     f.Features.Tags(),
	}
}

// Close stops pending lookups; late results are discarded
func (f *Form) Close() {
	f.Address.Close()
}
