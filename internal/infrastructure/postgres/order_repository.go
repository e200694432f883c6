package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos de venta sobre PostgreSQL. Líneas y adjuntos se guardan como JSONB.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, company_id, customer_id, customer_name, date, status, items, shipping_cost, insurance_cost,
	total_amount, tracking_number, logistics_provider, estimated_delivery, attachments, payment_terms, due_date,
	payment_status, reminders_sent, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	if err := row.Scan(
		&o.ID, &o.CompanyID, &o.CustomerID, &o.CustomerName, &o.Date, &o.Status, &o.Items, &o.ShippingCost, &o.InsuranceCost,
		&o.TotalAmount, &o.TrackingNumber, &o.LogisticsProvider, &o.EstimatedDelivery, &o.Attachments, &o.PaymentTerms, &o.DueDate,
		&o.PaymentStatus, &o.RemindersSent, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		o.ID, o.CompanyID, o.CustomerID, o.CustomerName, o.Date, o.Status, o.Items, o.ShippingCost, o.InsuranceCost,
		o.TotalAmount, o.TrackingNumber, o.LogisticsProvider, o.EstimatedDelivery, o.Attachments, o.PaymentTerms, o.DueDate,
		o.PaymentStatus, o.RemindersSent, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepo) get(ctx context.Context, query string, args ...any) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *OrderRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE company_id = $1 AND id = $2`, companyID, id)
}

// GetForUpdate bloquea la fila del pedido hasta el fin de la transacción.
func (r *OrderRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE company_id = $1 AND id = $2 FOR UPDATE`, companyID, id)
}

func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE orders SET customer_id = $3, customer_name = $4, date = $5, status = $6, items = $7,
			shipping_cost = $8, insurance_cost = $9, total_amount = $10, tracking_number = $11,
			logistics_provider = $12, estimated_delivery = $13, attachments = $14, payment_terms = $15,
			due_date = $16, payment_status = $17, reminders_sent = $18, updated_at = $19
		WHERE company_id = $1 AND id = $2`,
		o.CompanyID, o.ID, o.CustomerID, o.CustomerName, o.Date, o.Status, o.Items,
		o.ShippingCost, o.InsuranceCost, o.TotalAmount, o.TrackingNumber,
		o.LogisticsProvider, o.EstimatedDelivery, o.Attachments, o.PaymentTerms,
		o.DueDate, o.PaymentStatus, o.RemindersSent, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany más recientes primero (fecha descendente, luego inserción descendente).
func (r *OrderRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE company_id = $1 ORDER BY date DESC, seq DESC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func (r *OrderRepo) CountByCompany(ctx context.Context, companyID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM orders WHERE company_id = $1`, companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}
