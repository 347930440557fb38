package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/constructpro/dashboard/internal/infrastructure/validation"
)

// SetupValidator registers the dashboard's tags (cpf, cnpj, cep, e164 and
// birthdate_br) and JSON field naming on gin's binding validator, so
// ShouldBindJSON reports the same fields and rules the services check.
func SetupValidator(opts ...validation.Option) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return validation.Register(v, opts...)
}
