package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Operaciones-api/internal/domain/inventory"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

// Ledger único punto que muta el stock. Trabaja con los repositorios del caller (misma transacción).
// No emite notificaciones: eso es responsabilidad de los flujos de pedidos y abastecimiento.
type Ledger struct{}

// NewLedger construye el libro de inventario.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Deduct descuenta las cantidades del pedido. El stock nunca queda negativo y los productos
// desconocidos se omiten. Devuelve las unidades efectivamente descontadas.
func (l *Ledger) Deduct(ctx context.Context, productRepo repository.ProductRepository, order *entity.Order) (int, error) {
	deducted := 0
	for _, it := range order.Items {
		p, err := productRepo.GetForUpdate(ctx, order.CompanyID, it.ProductID)
		if err != nil {
			return deducted, fmt.Errorf("ledger: leer producto %s: %w", it.ProductID, err)
		}
		if p == nil {
			continue
		}
		next := domaininv.ClampStock(p.Stock, it.Quantity)
		if err := productRepo.UpdateStock(ctx, order.CompanyID, p.ID, next); err != nil {
			return deducted, fmt.Errorf("ledger: descontar %s: %w", p.ID, err)
		}
		deducted += p.Stock - next
	}
	return deducted, nil
}

// Credit suma la cantidad de la orden de abastecimiento al producto destino.
// Solo la invoca la guarda de completitud del flujo de abastecimiento.
func (l *Ledger) Credit(ctx context.Context, productRepo repository.ProductRepository, order *entity.SupplyOrder) error {
	p, err := productRepo.GetForUpdate(ctx, order.CompanyID, order.ProductID)
	if err != nil {
		return fmt.Errorf("ledger: leer producto %s: %w", order.ProductID, err)
	}
	if p == nil {
		return nil
	}
	if err := productRepo.UpdateStock(ctx, order.CompanyID, p.ID, p.Stock+order.Quantity); err != nil {
		return fmt.Errorf("ledger: acreditar %s: %w", p.ID, err)
	}
	return nil
}

// AdjustManual sobrescribe el stock con un entero no negativo. Devuelve el producto con el valor previo.
func (l *Ledger) AdjustManual(ctx context.Context, productRepo repository.ProductRepository, companyID, productID string, value int) (*entity.Product, error) {
	if value < 0 {
		return nil, domain.ErrInvalidInput
	}
	p, err := productRepo.GetForUpdate(ctx, companyID, productID)
	if err != nil {
		return nil, fmt.Errorf("ledger: leer producto %s: %w", productID, err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if err := productRepo.UpdateStock(ctx, companyID, productID, value); err != nil {
		return nil, fmt.Errorf("ledger: ajustar %s: %w", productID, err)
	}
	return p, nil
}
