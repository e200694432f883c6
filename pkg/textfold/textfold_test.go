package textfold_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Operaciones-api/pkg/textfold"
)

func TestFold_QuitaTildesYMayusculas(t *testing.T) {
	assert.Equal(t, "valvula industrial", textfold.Fold("  Válvula Industrial "))
	assert.Equal(t, "nomina", textfold.Fold("NÓMINA"))
	assert.Equal(t, "almacen", textfold.Fold("Almacén"))
}

func TestMatch(t *testing.T) {
	assert.True(t, textfold.Match("valvula", "Válvula de Presión", "IND-VAL-01"))
	assert.True(t, textfold.Match("ind-val", "Válvula de Presión", "IND-VAL-01"))
	assert.True(t, textfold.Match("", "cualquier cosa"))
	assert.False(t, textfold.Match("jeans", "Camiseta"))
}
