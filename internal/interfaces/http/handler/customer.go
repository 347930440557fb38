package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	customerapp "github.com/constructpro/dashboard/internal/application/customer"
	"github.com/constructpro/dashboard/internal/domain/customer"
)

// CustomerService is the customer form workflow
type CustomerService interface {
	Create(ctx context.Context, req customerapp.CustomerRequest) (*customer.Customer, error)
	Update(ctx context.Context, id int64, req customerapp.CustomerRequest) (*customer.Customer, error)
	Get(ctx context.Context, id int64) (*customer.Customer, error)
	Edit(ctx context.Context, id int64) (*customerapp.CustomerRequest, error)
}

// CustomerHandler handles customer-related API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// Create godoc
// @ID           createCustomer
// @Summary      Register a customer
// @Description  Validates the form, sends it upstream and invalidates the
// @Description  cached customer pages.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body customerapp.CustomerRequest true "Customer form"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      502 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req customerapp.CustomerRequest
	if err := decodeForm(c, &req); err != nil {
		h.HandleError(c, err)
		return
	}

	created, err := h.customerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}

// Update godoc
// @ID           updateCustomer
// @Summary      Update a customer
// @Description  The document is the customer's natural key and is never sent
// @Description  on update.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id path int true "Customer ID"
// @Param        request body customerapp.CustomerRequest true "Customer form"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      502 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers/{id} [patch]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "ID inválido")
		return
	}

	var req customerapp.CustomerRequest
	if err := decodeForm(c, &req); err != nil {
		h.HandleError(c, err)
		return
	}

	updated, err := h.customerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, updated)
}

// GetByID godoc
// @ID           getCustomer
// @Summary      Get a customer
// @Tags         customers
// @Produce      json
// @Param        id path int true "Customer ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers/{id} [get]
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "ID inválido")
		return
	}

	found, err := h.customerService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, found)
}

// FormValues godoc
// @ID           getCustomerFormValues
// @Summary      Get the values that prefill the customer edit form
// @Tags         customers
// @Produce      json
// @Param        id path int true "Customer ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers/{id}/form [get]
func (h *CustomerHandler) FormValues(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "ID inválido")
		return
	}

	values, err := h.customerService.Edit(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, values)
}
