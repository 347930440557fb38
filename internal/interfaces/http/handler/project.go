package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	projectapp "github.com/constructpro/dashboard/internal/application/project"
	"github.com/constructpro/dashboard/internal/domain/project"
)

// ProjectService is the development form workflow
type ProjectService interface {
	Create(ctx context.Context, req projectapp.ProjectRequest) (*project.Project, error)
	Update(ctx context.Context, id int64, req projectapp.ProjectRequest) (*project.Project, error)
	Get(ctx context.Context, id int64) (*project.Project, error)
	Edit(ctx context.Context, id int64) (*projectapp.ProjectRequest, error)
	Options() projectapp.FormOptions
}

// ProjectHandler handles development endpoints
type ProjectHandler struct {
	BaseHandler
	projectService ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// Create godoc
// @ID           createProject
// @Summary      Register a development
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        request body projectapp.ProjectRequest true "Development form"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      502 {object} dto.Response
// @Security     BearerAuth
// @Router       /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectapp.ProjectRequest
	if err := decodeForm(c, &req); err != nil {
		h.HandleError(c, err)
		return
	}

	created, err := h.projectService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}

// Update godoc
// @ID           updateProject
// @Summary      Update a development
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id path int true "Development ID"
// @Param        request body projectapp.ProjectRequest true "Development form"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      502 {object} dto.Response
// @Security     BearerAuth
// @Router       /projects/{id} [patch]
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "ID inválido")
		return
	}

	var req projectapp.ProjectRequest
	if err := decodeForm(c, &req); err != nil {
		h.HandleError(c, err)
		return
	}

	updated, err := h.projectService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, updated)
}

// GetByID godoc
// @ID           getProject
// @Summary      Get a development
// @Tags         projects
// @Produce      json
// @Param        id path int true "Development ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /projects/{id} [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "ID inválido")
		return
	}

	found, err := h.projectService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, found)
}

// FormValues godoc
// @ID           getProjectFormValues
// @Summary      Get the values that prefill the development edit form
// @Tags         projects
// @Produce      json
// @Param        id path int true "Development ID"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /projects/{id}/form [get]
func (h *ProjectHandler) FormValues(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "ID inválido")
		return
	}

	values, err := h.projectService.Edit(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, values)
}

// Options godoc
// @ID           getProjectFormOptions
// @Summary      Get the choices of the development form
// @Tags         projects
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /projects/options [get]
func (h *ProjectHandler) Options(c *gin.Context) {
	h.Success(c, h.projectService.Options())
}
