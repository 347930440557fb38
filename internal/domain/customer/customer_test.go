package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/domain/shared/valueobject"
)

func TestType(t *testing.T) {
	assert.Equal(t, valueobject.CPF, TypeIndividual.DocumentKind())
	assert.Equal(t, valueobject.CNPJ, TypeCompany.DocumentKind())
	assert.True(t, TypeCompany.Valid())
	assert.False(t, Type("other").Valid())
	assert.Equal(t, "Pessoa Jurídica", shared.LabelOf(TypeOptions, "company"))
}

func TestCustomerLabels(t *testing.T) {
	city, state := "Recife", "PE"
	c := Customer{
		CPFCNPJ: "52998224725",
		Phone:   "+5581987654321",
		City:    &city,
		State:   &state,
	}
	assert.Equal(t, "529.982.247-25", c.DocumentLabel())
	assert.Equal(t, "(81) 98765-4321", c.PhoneLabel())
	assert.Equal(t, "https://wa.me/5581987654321", c.WhatsAppLink())
	assert.Equal(t, "Recife - PE", c.Location())
	assert.Equal(t, "", Customer{}.Location())
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "MS", Initials("maria da silva"))
	assert.Equal(t, "É", Initials("érica"))
	assert.Equal(t, "?", Initials("  "))
}
