package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapitalizeNameBR(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"MARIA DA SILVA", "Maria da Silva"},
		{"joão dos santos e souza", "João dos Santos e Souza"},
		{"de paula", "De Paula"},
		{"RUA DAS FLORES", "Rua das Flores"},
		{"são paulo", "São Paulo"},
		{"ÉRICA", "Érica"},
		{"avenida  paulista", "Avenida  Paulista"},
		{"praça para todos", "Praça para Todos"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CapitalizeNameBR(tt.in))
		})
	}
}

func TestAddressFragment(t *testing.T) {
	t.Run("domestic detection", func(t *testing.T) {
		assert.True(t, AddressFragment{}.IsDomestic())
		assert.True(t, AddressFragment{Country: "br"}.IsDomestic())
		assert.False(t, AddressFragment{Country: "PT"}.IsDomestic())
	})

	t.Run("location", func(t *testing.T) {
		assert.Equal(t, "São Paulo - SP", AddressFragment{City: "São Paulo", State: "SP"}.Location())
		assert.Equal(t, "Lisboa", AddressFragment{City: "Lisboa"}.Location())
		assert.Equal(t, "", AddressFragment{}.Location())
	})

	t.Run("street line", func(t *testing.T) {
		a := AddressFragment{Street: "Avenida Paulista", Number: "1578", Complement: "Conj. 12"}
		assert.Equal(t, "Avenida Paulista, 1578 - Conj. 12", a.StreetLine())
		assert.Equal(t, "Rua A", AddressFragment{Street: "Rua A"}.StreetLine())
	})

	t.Run("empty ignores country", func(t *testing.T) {
		assert.True(t, AddressFragment{Country: "BR"}.IsEmpty())
		assert.False(t, AddressFragment{City: "Recife"}.IsEmpty())
	})
}

func TestFormatID(t *testing.T) {
	assert.Equal(t, "#00042", FormatID(42))
	assert.Equal(t, "#123456", FormatID(123456))
}
