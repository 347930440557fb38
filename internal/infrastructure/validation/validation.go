// Package validation registers the dashboard's field rules on
// go-playground/validator and turns failures into pt-BR field messages.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/domain/shared/valueobject"
)

// Custom tags
const (
	TagCPF       = "cpf"
	TagCNPJ      = "cnpj"
	TagCEP       = "cep"
	TagE164      = "e164"
	TagBirthDate = "birthdate_br"
)

// Option configures Register
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithTimeFunc sets the clock birth dates are checked against
func WithTimeFunc(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// Register adds json field naming and the custom tags to v
func Register(v *validator.Validate, opts ...Option) error {
	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	rules := map[string]validator.Func{
		TagCPF: func(fl validator.FieldLevel) bool {
			return valueobject.ValidCPF(fl.Field().String())
		},
		TagCNPJ: func(fl validator.FieldLevel) bool {
			return valueobject.ValidCNPJ(fl.Field().String())
		},
		TagCEP: func(fl validator.FieldLevel) bool {
			return valueobject.IsCompleteCEP(fl.Field().String())
		},
		TagE164: func(fl validator.FieldLevel) bool {
			return valueobject.IsE164(fl.Field().String())
		},
		TagBirthDate: func(fl validator.FieldLevel) bool {
			return valueobject.ValidateBirthDate(fl.Field().String(), o.now()) == nil
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// Validator validates request structs
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the custom tags registered. Rules are read
// from `binding` tags, the same tags gin validates on bind.
func New(opts ...Option) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	if err := Register(v, opts...); err != nil {
		// tags are static; a failure here is a programming error
		panic(err)
	}
	return &Validator{validate: v}
}

// Engine exposes the underlying validator
func (v *Validator) Engine() *validator.Validate {
	return v.validate
}

// Struct validates s and returns a *shared.ValidationError, or nil
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	return Translate(err)
}

// Translate converts validator errors into a *shared.ValidationError with
// pt-BR messages keyed by field name. Other errors are returned unchanged.
func Translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := shared.NewValidationError()
	for _, fe := range verrs {
		out.Add(fe.Field(), Message(fe))
	}
	return out
}

// Message returns the pt-BR message for one failed rule
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_unless":
		return "Campo obrigatório"
	case "email":
		return "E-mail inválido"
	case TagCPF:
		return "CPF inválido"
	case TagCNPJ:
		return "CNPJ inválido"
	case TagCEP:
		return "CEP inválido"
	case TagE164:
		return "Telefone inválido"
	case TagBirthDate:
		return "Data de nascimento inválida"
	case "min":
		if fe.Kind() == reflect.String {
			return "Mínimo de " + fe.Param() + " caracteres"
		}
		return "Deve ser no mínimo " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "Máximo de " + fe.Param() + " caracteres"
		}
		return "Deve ser no máximo " + fe.Param()
	case "gte":
		return "Deve ser maior ou igual a " + fe.Param()
	case "gt":
		return "Deve ser maior que " + fe.Param()
	case "lte":
		return "Deve ser menor ou igual a " + fe.Param()
	case "oneof":
		return "Valor inválido"
	case "len":
		return "Deve ter " + fe.Param() + " caracteres"
	case "iso3166_1_alpha2":
		return "País inválido"
	default:
		return "Valor inválido"
	}
}
