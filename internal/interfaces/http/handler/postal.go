package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/constructpro/dashboard/internal/application/address"
	"github.com/constructpro/dashboard/internal/domain/shared/valueobject"
	"github.com/constructpro/dashboard/internal/infrastructure/logger"
)

// PostalHandler exposes the postal-code lookup
type PostalHandler struct {
	BaseHandler
	lookup address.Lookup
}

// NewPostalHandler creates a new PostalHandler
func NewPostalHandler(lookup address.Lookup) *PostalHandler {
	return &PostalHandler{lookup: lookup}
}

// Lookup godoc
// @Summary      Look up a postal code
// @Description  Any lookup failure is a 404; clients stay silent on it and
// @Description  keep the address fields editable.
// @Tags         postal-codes
// @Produce      json
// @Param        cep path string true "CEP, masked or digits only"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /postal-codes/{cep} [get]
func (h *PostalHandler) Lookup(c *gin.Context) {
	raw := c.Param("cep")
	if !valueobject.IsCompleteCEP(raw) {
		h.BadRequest(c, "CEP inválido")
		return
	}

	cep := valueobject.OnlyDigits(raw)
	result, err := h.lookup.Lookup(c.Request.Context(), cep)
	if err != nil {
		logger.GetGinLogger(c).Debug("Postal lookup failed", zap.String("cep", cep), zap.Error(err))
		h.NotFound(c, "CEP não encontrado")
		return
	}
	h.Success(c, result)
}
