package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	unitapp "github.com/constructpro/dashboard/internal/application/unit"
	"github.com/constructpro/dashboard/internal/domain/project"
	"github.com/constructpro/dashboard/internal/domain/unit"
)

// UnitService is the unit form workflow
type UnitService interface {
	Create(ctx context.Context, req unitapp.UnitRequest) (*unit.Unit, error)
	Update(ctx context.Context, id int64, req unitapp.UnitRequest) (*unit.Unit, error)
	Get(ctx context.Context, id int64) (*unit.Unit, error)
	Edit(ctx context.Context, id int64) (*unitapp.UnitRequest, error)
	Options() unitapp.FormOptions
	FloorOptions(ctx context.Context, projectID int64) ([]project.FloorOption, error)
}

// UnitHandler handles unit endpoints
type UnitHandler struct {
	BaseHandler
	unitService UnitService
}

// NewUnitHandler creates a new UnitHandler
func NewUnitHandler(unitService UnitService) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

// Create godoc
// @ID           createUnit
// @Summary      Register a unit
// @Description  The floor is checked against the development's floor count.
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        request body unitapp.UnitRequest true "Unit form"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      502 {object} dto.Response
// @Security     BearerAuth
// @Router       /units [post]
func (h *UnitHandler) Create(c *gin.Context) {
	var req unitapp.UnitRequest
	if err := decodeForm(c, &req); err != nil {
		h.HandleError(c, err)
		return
	}

	created, err := h.unitService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}

// Update godoc
// @ID           updateUnit
// @Summary      Update a unit
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        id path int true "Unit ID"
// @Param        request body unitapp.UnitRequest true "Unit form"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      502 {object} dto.Response
// @Security     BearerAuth
// @Router       /units/{id} [patch]
func (h *UnitHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "ID inválido")
		return
	}

	var req unitapp.UnitRequest
	if err := decodeForm(c, &req); err != nil {
		h.HandleError(c, err)
		return
	}

	updated, err := h.unitService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, updated)
}

// GetByID godoc
// @ID           getUnit
// @Summary      Get a unit
// @Tags         units
// @Produce      json
// @Param        id path int true "Unit ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /units/{id} [get]
func (h *UnitHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "ID inválido")
		return
	}

	found, err := h.unitService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, found)
}

// FormValues godoc
// @ID           getUnitFormValues
// @Summary      Get the values that prefill the unit edit form
// @Tags         units
// @Produce      json
// @Param        id path int true "Unit ID"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /units/{id}/form [get]
func (h *UnitHandler) FormValues(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "ID inválido")
		return
	}

	values, err := h.unitService.Edit(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, values)
}

// Options godoc
// @ID           getUnitFormOptions
// @Summary      Get the categories and feature suggestions of the unit form
// @Tags         units
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /units/options [get]
func (h *UnitHandler) Options(c *gin.Context) {
	h.Success(c, h.unitService.Options())
}

// FloorOptions godoc
// @ID           getUnitFloorOptions
// @Summary      List the floors selectable for a development
// @Tags         units
// @Produce      json
// @Param        project_id query int true "Development ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /units/floors [get]
func (h *UnitHandler) FloorOptions(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Query("project_id"), 10, 64)
	if err != nil || projectID < 1 {
		h.BadRequest(c, "Empreendimento é obrigatório")
		return
	}

	floors, err := h.unitService.FloorOptions(c.Request.Context(), projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, floors)
}
