package fulfillment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/fulfillment"
)

func orderWith(items ...entity.OrderItem) *entity.Order {
	return &entity.Order{ID: "ORD-2024-010", CompanyID: "1", Items: items}
}

func TestSession_ProgresoPorcentual(t *testing.T) {
	s := fulfillment.NewSession(orderWith(entity.OrderItem{ProductID: "1", Quantity: 10}), time.Now())

	for i := 0; i < 7; i++ {
		_, err := s.Scan(`{"id":"1"}`)
		require.NoError(t, err)
	}
	p := s.Progress()
	assert.Equal(t, 70, p.Percent)
	assert.False(t, p.Complete)

	for i := 0; i < 3; i++ {
		_, err := s.Scan(`{"id":"1"}`)
		require.NoError(t, err)
	}
	p = s.Progress()
	assert.Equal(t, 100, p.Percent)
	assert.True(t, p.Complete)
}

func TestSession_ProductoAjenoNoCambiaConteos(t *testing.T) {
	s := fulfillment.NewSession(orderWith(entity.OrderItem{ProductID: "1", Quantity: 2}), time.Now())
	_, err := s.Scan(`{"id":"1"}`)
	require.NoError(t, err)

	_, err = s.Scan(`{"id":"99"}`)
	assert.ErrorIs(t, err, domain.ErrForeignProduct)
	assert.Equal(t, 1, s.Progress().Scanned)
}

func TestSession_ItemCompletoRechazaExceso(t *testing.T) {
	s := fulfillment.NewSession(orderWith(entity.OrderItem{ProductID: "1", Quantity: 1}), time.Now())
	_, err := s.Scan(`{"id":"1"}`)
	require.NoError(t, err)

	_, err = s.Scan(`{"id":"1"}`)
	assert.ErrorIs(t, err, domain.ErrItemAlreadyComplete)
	assert.Equal(t, 1, s.Progress().Scanned)
}

func TestSession_VariantesSeAgregan(t *testing.T) {
	s := fulfillment.NewSession(orderWith(
		entity.OrderItem{ProductID: "1", Quantity: 2, SelectedSize: "S"},
		entity.OrderItem{ProductID: "1", Quantity: 3, SelectedSize: "M"},
	), time.Now())

	for i := 0; i < 5; i++ {
		_, err := s.Scan(`{"id":"1"}`)
		require.NoError(t, err)
	}
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Required)
	assert.True(t, items[0].Complete)
}

func TestParsePayload_Invalidos(t *testing.T) {
	for _, raw := range []string{"", "no-json", `{"sku":"X"}`, `{"id":""}`, `[1,2]`} {
		_, err := fulfillment.ParsePayload(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidScan, raw)
	}
	id, err := fulfillment.ParsePayload(` {"id":"7"} `)
	require.NoError(t, err)
	assert.Equal(t, "7", id)
}

func TestSession_PedidoVacioNoDivideEntreCero(t *testing.T) {
	s := fulfillment.NewSession(orderWith(), time.Now())
	p := s.Progress()
	assert.Equal(t, 0, p.Percent)
	assert.True(t, p.Complete)
}
