package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

var _ repository.SupplyOrderRepository = (*SupplyOrderRepo)(nil)

// SupplyOrderRepo órdenes de compra y producción sobre PostgreSQL. Los adjuntos
// (con su resultado de calidad y época de análisis) se guardan como JSONB.
type SupplyOrderRepo struct {
	q Querier
}

// NewSupplyOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplyOrderRepository(q Querier) *SupplyOrderRepo {
	return &SupplyOrderRepo{q: q}
}

const supplyColumns = `id, company_id, type, product_id, product_name, quantity, cost_per_unit, shipping_cost,
	insurance_cost, total_cost, supplier_or_facility, order_date, expected_arrival_date, status, tracking_number,
	notes, attachments, created_at, updated_at`

func scanSupplyOrder(row pgx.Row) (*entity.SupplyOrder, error) {
	var s entity.SupplyOrder
	if err := row.Scan(
		&s.ID, &s.CompanyID, &s.Type, &s.ProductID, &s.ProductName, &s.Quantity, &s.CostPerUnit, &s.ShippingCost,
		&s.InsuranceCost, &s.TotalCost, &s.SupplierOrFacility, &s.OrderDate, &s.ExpectedArrivalDate, &s.Status, &s.TrackingNumber,
		&s.Notes, &s.Attachments, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplyOrderRepo) Create(ctx context.Context, s *entity.SupplyOrder) error {
	_, err := r.q.Exec(ctx, `INSERT INTO supply_orders (`+supplyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		s.ID, s.CompanyID, s.Type, s.ProductID, s.ProductName, s.Quantity, s.CostPerUnit, s.ShippingCost,
		s.InsuranceCost, s.TotalCost, s.SupplierOrFacility, s.OrderDate, s.ExpectedArrivalDate, s.Status, s.TrackingNumber,
		s.Notes, s.Attachments, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supply order: %w", err)
	}
	return nil
}

func (r *SupplyOrderRepo) get(ctx context.Context, query string, args ...any) (*entity.SupplyOrder, error) {
	s, err := scanSupplyOrder(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supply order: %w", err)
	}
	return s, nil
}

func (r *SupplyOrderRepo) GetByID(ctx context.Context, companyID, id string) (*entity.SupplyOrder, error) {
	return r.get(ctx, `SELECT `+supplyColumns+` FROM supply_orders WHERE company_id = $1 AND id = $2`, companyID, id)
}

// GetForUpdate bloquea la orden: serializa las transiciones de estado y la escritura de resultados de calidad.
func (r *SupplyOrderRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.SupplyOrder, error) {
	return r.get(ctx, `SELECT `+supplyColumns+` FROM supply_orders WHERE company_id = $1 AND id = $2 FOR UPDATE`, companyID, id)
}

func (r *SupplyOrderRepo) Update(ctx context.Context, s *entity.SupplyOrder) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE supply_orders SET type = $3, product_id = $4, product_name = $5, quantity = $6, cost_per_unit = $7,
			shipping_cost = $8, insurance_cost = $9, total_cost = $10, supplier_or_facility = $11, order_date = $12,
			expected_arrival_date = $13, status = $14, tracking_number = $15, notes = $16, attachments = $17,
			updated_at = $18
		WHERE company_id = $1 AND id = $2`,
		s.CompanyID, s.ID, s.Type, s.ProductID, s.ProductName, s.Quantity, s.CostPerUnit,
		s.ShippingCost, s.InsuranceCost, s.TotalCost, s.SupplierOrFacility, s.OrderDate,
		s.ExpectedArrivalDate, s.Status, s.TrackingNumber, s.Notes, s.Attachments,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supply order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany más recientes primero.
func (r *SupplyOrderRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.SupplyOrder, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+supplyColumns+` FROM supply_orders WHERE company_id = $1 ORDER BY order_date DESC, seq DESC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list supply orders: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.SupplyOrder, 0)
	for rows.Next() {
		s, err := scanSupplyOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supply order: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
