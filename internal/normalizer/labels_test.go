package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Nome", "nome"},
		{"Número de Inventário", "numero_de_inventario"},
		{"Valor Médio Unitário", "valor_medio_unitario"},
		{"Depreciação Anual Unitária (R$)", "depreciacao_anual_unitaria_r"},
		{"Depreciação anual_% (mercado)", "depreciacao_anual_mercado"},
		{"Vida útil\n(anos) mercado", "vida_util_anos_mercado"},
		{"  Tipo do Item  ", "tipo_do_item"},
		{"GRUPO", "grupo"},
		{"", ""},
		{"???", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeLabel(c.in), "label %q", c.in)
	}
}

func TestNormalizeLabel_IsIdempotent(t *testing.T) {
	for alias := range labelAliases {
		assert.Equal(t, alias, NormalizeLabel(alias))
	}
}

func TestLabelAliases_CoverRequiredFields(t *testing.T) {
	targets := map[string]bool{}
	for _, field := range labelAliases {
		targets[field] = true
	}
	for _, field := range requiredFields {
		assert.True(t, targets[field], "no alias resolves to required field %q", field)
	}
}
