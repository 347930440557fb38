package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/infrastructure/validation"
)

// errInvalidBody is returned for bodies that do not decode
var errInvalidBody = shared.NewDomainError(shared.CodeInvalidInput, "Corpo da requisição inválido")

// bindError turns a ShouldBindJSON failure into field messages, or into
// errInvalidBody when the body itself is malformed
func bindError(err error) error {
	translated := validation.Translate(err)
	if shared.IsValidation(translated) {
		return translated
	}
	return errInvalidBody
}

// decodeForm decodes a form body. Tag rule failures are left for the
// service, which reports them together with its own checks.
func decodeForm(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return nil
	}
	return errInvalidBody
}
