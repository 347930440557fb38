package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/constructpro/dashboard/internal/domain/shared"
)

type person struct {
	Name      string  `json:"full_name" binding:"required,max=10"`
	CPF       string  `json:"cpf_cnpj" binding:"required,cpf"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone     string  `json:"phone" binding:"required,e164"`
	Birthday  string  `json:"birthday" binding:"omitempty,birthdate_br"`
	CEP       string  `json:"postal_code" binding:"omitempty,cep"`
	CNPJ      string  `json:"cnpj" binding:"omitempty,cnpj"`
	PageCount int     `form:"page" binding:"gte=0"`
}

var fixedNow = func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) }

func valid() person {
	return person{
		Name:     "Ana",
		CPF:      "529.982.247-25",
		Phone:    "+5511999999999",
		Birthday: "15/04/1990",
		CEP:      "01310-100",
	}
}

func TestStruct(t *testing.T) {
	v := New(WithTimeFunc(fixedNow))

	require.NoError(t, v.Struct(valid()))

	p := valid()
	p.Name = ""
	p.CPF = "111.111.111-11"
	bad := "not-an-email"
	p.Email = &bad
	p.Phone = "11999999999"
	p.Birthday = "31/02/1990"
	p.CEP = "0131"
	p.CNPJ = "11.222.333/0001-00"
	p.PageCount = -1

	err := v.Struct(p)
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))

	var ve *shared.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, map[string]string{
		"full_name":   "Campo obrigatório",
		"cpf_cnpj":    "CPF inválido",
		"email":       "E-mail inválido",
		"phone":       "Telefone inválido",
		"birthday":    "Data de nascimento inválida",
		"postal_code": "CEP inválido",
		"cnpj":        "CNPJ inválido",
		"page":        "Deve ser maior ou igual a 0",
	}, ve.Fields)
}

func TestStruct_FutureBirthday(t *testing.T) {
	v := New(WithTimeFunc(fixedNow))
	p := valid()
	p.Birthday = "02/05/2026"
	err := v.Struct(p)

	var ve *shared.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Data de nascimento inválida", ve.Fields["birthday"])
}

func TestStruct_MaxLength(t *testing.T) {
	v := New(WithTimeFunc(fixedNow))
	p := valid()
	p.Name = "Ana Beatriz Souza"

	var ve *shared.ValidationError
	require.ErrorAs(t, v.Struct(p), &ve)
	assert.Equal(t, "Máximo de 10 caracteres", ve.Fields["full_name"])
}

func TestTranslate_PassesOtherErrorsThrough(t *testing.T) {
	other := errors.New("boom")
	assert.Same(t, other, Translate(other))
}

func TestRegister_OnExistingEngine(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))
	assert.NoError(t, v.Var("01310100", "cep"))
	assert.Error(t, v.Var("0131", "cep"))
}
