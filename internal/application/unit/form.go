package unit

import (
	"github.com/constructpro/dashboard/internal/domain/form"
	"github.com/constructpro/dashboard/internal/domain/unit"
)

// Form is the live state of one unit form
type Form struct {
	Draft    *form.Draft
	Price    *form.CurrencyField
	Area     *form.AreaField
	Features *form.TagInput
}

// NewForm opens a form, prefilled from existing when editing. A nil
// suggestions list uses the built-in features.
func NewForm(existing *unit.Unit, suggestions []string) *Form {
	if len(suggestions) == 0 {
		suggestions = unit.DefaultFeatures
	}
	initial := map[string]any{"category": string(unit.CategoryApartment)}
	if existing != nil {
		v := FormValues(*existing)
		initial = map[string]any{
			"project_id":     v.ProjectID,
			"name":           v.Name,
			"category":       v.Category,
			"area":           v.Area,
			"price_cents":    v.PriceCents,
			"description":    v.Description,
			"apartment_type": v.ApartmentType,
			"features":       v.Features,
		}
		setInt(initial, "bedrooms", v.Bedrooms)
		setInt(initial, "bathrooms", v.Bathrooms)
		setInt(initial, "garages", v.Garages)
		setInt(initial, "floor", v.Floor)
	}
	draft := form.NewDraft(initial)
	return &Form{
		Draft:    draft,
		Price:    form.NewCurrencyField(draft, "price_cents"),
		Area:     form.NewAreaField(draft, "area"),
		Features: form.NewTagInput(draft, "features", suggestions),
	}
}

// SetProject selects the development. Floors depend on it, so a change of
// project clears the chosen floor.
func (f *Form) SetProject(id int64) {
	if f.ProjectID() == id {
		return
	}
	f.Draft.Update(func(values map[string]any) {
		values["project_id"] = id
		delete(values, "floor")
	})
}

// ProjectID returns the selected development, 0 when none
func (f *Form) ProjectID() int64 {
	v, _ := f.Draft.Get("project_id")
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}

// SetFloor selects a floor; a negative floor clears it
func (f *Form) SetFloor(floor int) {
	if floor < 0 {
		f.Draft.Delete("floor")
		return
	}
	f.Draft.Set("floor", floor)
}

// Request reads the draft as a submission
func (f *Form) Request() UnitRequest {
	d := f.Draft
	return UnitRequest{
		ProjectID:     f.ProjectID(),
		Name:          d.String("name"),
		Category:      d.String("category"),
		Area:          f.Area.Value(),
		PriceCents:    f.Price.Value(),
		Description:   d.String("description"),
		ApartmentType: d.String("apartment_type"),
		Bedrooms:      intField(d, "bedrooms"),
		Bathrooms:     intField(d, "bathrooms"),
		Garages:       intField(d, "garages"),
		Floor:         intField(d, "floor"),
		Features:      f.Features.Tags(),
	}
}

func setInt(values map[string]any, name string, v *int) {
	if v != nil {
		values[name] = *v
	}
}

func intField(d *form.Draft, name string) *int {
	v, ok := d.Get(name)
	if !ok {
		return nil
	}
	n, ok := v.(int)
	if !ok {
		return nil
	}
	return &n
}
