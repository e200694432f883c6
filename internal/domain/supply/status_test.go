package supply_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/supply"
)

func TestShouldCredit_GuardaDeCompletitud(t *testing.T) {
	cases := []struct {
		prev, next string
		want       bool
	}{
		{entity.SupplyStatusInTransit, entity.SupplyStatusReceived, true},
		{entity.SupplyStatusInProduction, entity.SupplyStatusFinished, true},
		{entity.SupplyStatusReceived, entity.SupplyStatusReceived, false},
		{entity.SupplyStatusFinished, entity.SupplyStatusReceived, false},
		{entity.SupplyStatusReceived, entity.SupplyStatusInTransit, false},
		{entity.SupplyStatusOrdered, entity.SupplyStatusCancelled, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, supply.ShouldCredit(c.prev, c.next), "%s -> %s", c.prev, c.next)
	}
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, entity.SupplyStatusInProduction, supply.InitialStatus(entity.SupplyProductionOrder))
	assert.Equal(t, entity.SupplyStatusOrdered, supply.InitialStatus(entity.SupplyPurchaseOrder))
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, supply.IsValidStatus("DRAFT"))
	assert.False(t, supply.IsValidStatus("SHIPPED"))
	assert.False(t, supply.IsValidStatus(""))
}
