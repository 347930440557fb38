package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/constructpro/dashboard/internal/application/address"
	"github.com/constructpro/dashboard/internal/domain/form"
	"github.com/constructpro/dashboard/internal/domain/shared/valueobject"
	"github.com/constructpro/dashboard/internal/infrastructure/logger"
)

// projectForm selects the project address layout in the CEP mask
const projectForm = "projects"

// PhoneFormatter is the numbering plan used by the phone mask
type PhoneFormatter interface {
	form.PhoneFormatter
	International(e164 string) string
}

// MaskHandler runs the input controllers server-side, one keystroke snapshot
// per request, over a throwaway draft.
type MaskHandler struct {
	BaseHandler
	postal   address.Lookup
	phones   PhoneFormatter
	features map[string][]string
	now      func() time.Time
}

// NewMaskHandler creates a new MaskHandler. features holds the tag
// suggestions per form, e.g. "units" and "projects".
func NewMaskHandler(postal address.Lookup, phones PhoneFormatter, features map[string][]string) *MaskHandler {
	return &MaskHandler{
		postal:   postal,
		phones:   phones,
		features: features,
		now:      time.Now,
	}
}

// Currency godoc
// @Summary      Mask a currency input
// @Tags         masks
// @Accept       json
// @Produce      json
// @Param        request body MaskRequest true "Typed text"
// @Success      200 {object} dto.Response
// @Router       /masks/currency [post]
func (h *MaskHandler) Currency(c *gin.Context) {
	var req MaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c)
		return
	}

	field := form.NewCurrencyField(form.NewDraft(nil), "value")
	cents := field.OnChange(req.Value)
	h.Success(c, CurrencyMaskResponse{Display: field.Display(), Cents: cents})
}

// Area godoc
// @Summary      Parse an area input
// @Tags         masks
// @Accept       json
// @Produce      json
// @Param        request body AreaMaskRequest true "Typed text"
// @Success      200 {object} dto.Response
// @Router       /masks/area [post]
func (h *MaskHandler) Area(c *gin.Context) {
	var req AreaMaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c)
		return
	}

	field := form.NewAreaField(form.NewDraft(nil), "value")
	area := field.OnChange(req.Value)
	if req.Blur {
		field.Blur()
	}
	h.Success(c, AreaMaskResponse{Display: field.Display(), Area: area})
}

// Document godoc
// @Summary      Mask a CPF or CNPJ input
// @Tags         masks
// @Accept       json
// @Produce      json
// @Param        request body DocumentMaskRequest true "Typed text and document kind"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /masks/document [post]
func (h *MaskHandler) Document(c *gin.Context) {
	var req DocumentMaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleError(c, bindError(err))
		return
	}

	draft := form.NewDraft(map[string]any{"value": req.Current})
	field := form.NewDocumentField(draft, "value", valueobject.DocumentKind(req.Kind), req.Edit)
	if _, err := field.OnChange(req.Value); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, documentResponse(field))
}

func documentResponse(field *form.DocumentField) DocumentMaskResponse {
	digits := field.Digits()
	return DocumentMaskResponse{
		Display:  field.Value(),
		Digits:   digits,
		Complete: len(digits) == field.Kind().Digits(),
		Valid:    field.Valid(),
		ReadOnly: field.ReadOnly(),
	}
}

// CEP godoc
// @Summary      Mask a postal code and fill the address block
// @Description  A complete domestic code is looked up and fills street,
// @Description  neighborhood, city and state. Lookup failures leave the block
// @Description  untouched. Form "projects" uses the project layout, which is
// @Description  always domestic.
// @Tags         masks
// @Accept       json
// @Produce      json
// @Param        request body CEPMaskRequest true "Postal code and current address"
// @Success      200 {object} dto.Response
// @Router       /masks/cep [post]
func (h *MaskHandler) CEP(c *gin.Context) {
	var req CEPMaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleError(c, bindError(err))
		return
	}

	fields := address.CustomerFields
	if req.Form == projectForm {
		fields = address.ProjectFields
	}
	values := map[string]any{
		fields.Street:       req.Address,
		fields.Neighborhood: req.Neighborhood,
		fields.City:         req.City,
		fields.State:        req.State,
	}
	if fields.Country != "" {
		values[fields.Country] = req.Country
	}
	draft := form.NewDraft(values)
	ctrl := address.NewController(draft, h.postal,
		address.WithFields(fields),
		address.WithContext(c.Request.Context()),
		address.WithLogger(logger.GetGinLogger(c)),
	)
	defer ctrl.Close()

	ctrl.SetPostalCode(req.Value)
	ctrl.Wait()

	country := valueobject.DomesticCountry
	if fields.Country != "" {
		country = draft.String(fields.Country)
	}
	h.Success(c, CEPMaskResponse{
		PostalCode:   draft.String(fields.PostalCode),
		Country:      country,
		Address:      draft.String(fields.Street),
		Neighborhood: draft.String(fields.Neighborhood),
		City:         draft.String(fields.City),
		State:        draft.String(fields.State),
		Domestic:     ctrl.Domestic(),
		Lookup:       ctrl.State().String(),
	})
}

// BirthDate godoc
// @Summary      Mask a birth date input
// @Tags         masks
// @Accept       json
// @Produce      json
// @Param        request body MaskRequest true "Typed text"
// @Success      200 {object} dto.Response
// @Router       /masks/birth-date [post]
func (h *MaskHandler) BirthDate(c *gin.Context) {
	var req MaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c)
		return
	}

	field := form.NewBirthDateField(form.NewDraft(nil), "value")
	resp := BirthDateMaskResponse{Display: field.OnChange(req.Value)}
	if iso, ok := field.ISO(); ok {
		resp.ISO = iso
		if err := field.Validate(h.now()); err != nil {
			resp.Error = birthDateMessage(err)
		}
	}
	h.Success(c, resp)
}

func birthDateMessage(err error) string {
	if errors.Is(err, valueobject.ErrBirthDateFormat) {
		return valueobject.ErrBirthDateFormat.Error()
	}
	return valueobject.ErrBirthDateInvalid.Error()
}

// Phone godoc
// @Summary      Normalize a phone input to E.164
// @Tags         masks
// @Accept       json
// @Produce      json
// @Param        request body PhoneMaskRequest true "Typed text and selected country"
// @Success      200 {object} dto.Response
// @Router       /masks/phone [post]
func (h *MaskHandler) Phone(c *gin.Context) {
	var req PhoneMaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c)
		return
	}

	field := form.NewPhoneField(form.NewDraft(nil), "value", h.phones)
	field.SetCountry(req.Country)
	e164 := field.OnChange(req.Value)

	resp := PhoneMaskResponse{
		E164:        e164,
		Country:     field.Country(),
		CallingCode: field.CallingCode(),
		Placeholder: field.Placeholder(),
		Error:       field.ErrorMessage(),
	}
	if e164 != "" && resp.Error == "" {
		resp.International = h.phones.International(e164)
	}
	h.Success(c, resp)
}

// Features godoc
// @Summary      Apply one edit to a features tag set
// @Description  Adds or removes a tag, or replays Enter/Backspace over the
// @Description  typed text, and returns the matching suggestions.
// @Tags         masks
// @Accept       json
// @Produce      json
// @Param        request body FeaturesMaskRequest true "Selected tags and the edit"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /masks/features [post]
func (h *MaskHandler) Features(c *gin.Context) {
	var req FeaturesMaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleError(c, bindError(err))
		return
	}

	draft := form.NewDraft(map[string]any{"features": req.Selected})
	in := form.NewTagInput(draft, "features", h.features[req.Form])
	in.Type(req.Typed)
	switch {
	case req.Add != "":
		in.Add(req.Add)
	case req.Remove != "":
		in.Remove(req.Remove)
	case req.Key == "enter":
		in.Press(form.KeyEnter)
	case req.Key == "backspace":
		in.Press(form.KeyBackspace)
	}

	custom, _ := in.CustomOption()
	h.Success(c, FeaturesMaskResponse{
		Tags:         in.Tags(),
		Typed:        in.Typed(),
		Suggestions:  in.Suggestions(),
		CustomOption: custom,
	})
}
