package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, sku, name, category, sale_price, stock, low_stock_threshold, pack_size,
	origin_type, cost_price, supplier, import_duty_percent, raw_material_cost, labor_cost, production_time_days,
	description, features, quality_standards, sizes, colors, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Category, &p.SalePrice, &p.Stock, &p.LowStockThreshold, &p.PackSize,
		&p.OriginType, &p.CostPrice, &p.Supplier, &p.ImportDutyPercent, &p.RawMaterialCost, &p.LaborCost, &p.ProductionTimeDays,
		&p.Description, &p.Features, &p.QualityStandards, &p.Sizes, &p.Colors, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. SKU duplicado en la empresa → domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.SKU, p.Name, p.Category, p.SalePrice, p.Stock, p.LowStockThreshold, p.PackSize,
		p.OriginType, p.CostPrice, p.Supplier, p.ImportDutyPercent, p.RawMaterialCost, p.LaborCost, p.ProductionTimeDays,
		p.Description, p.Features, p.QualityStandards, p.Sizes, p.Colors, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) get(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByID obtiene un producto de la empresa.
func (r *ProductRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE company_id = $1 AND id = $2`, companyID, id)
}

// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE). Llamar solo con un Querier de transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE company_id = $1 AND id = $2 FOR UPDATE`, companyID, id)
}

// GetByCompanyAndSKU obtiene un producto por empresa y SKU.
func (r *ProductRepo) GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE company_id = $1 AND sku = $2`, companyID, sku)
}

// Update reescribe todos los campos editables, stock incluido.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET sku = $3, name = $4, category = $5, sale_price = $6, stock = $7, low_stock_threshold = $8,
			pack_size = $9, origin_type = $10, cost_price = $11, supplier = $12, import_duty_percent = $13,
			raw_material_cost = $14, labor_cost = $15, production_time_days = $16, description = $17, features = $18,
			quality_standards = $19, sizes = $20, colors = $21, updated_at = $22
		WHERE company_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		p.CompanyID, p.ID, p.SKU, p.Name, p.Category, p.SalePrice, p.Stock, p.LowStockThreshold,
		p.PackSize, p.OriginType, p.CostPrice, p.Supplier, p.ImportDutyPercent,
		p.RawMaterialCost, p.LaborCost, p.ProductionTimeDays, p.Description, p.Features,
		p.QualityStandards, p.Sizes, p.Colors, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock sobrescribe solo el stock. El CHECK de la tabla rechaza negativos.
func (r *ProductRepo) UpdateStock(ctx context.Context, companyID, id string, stock int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET stock = $3, updated_at = now() WHERE company_id = $1 AND id = $2`,
		companyID, id, stock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista los productos en orden de alta.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products WHERE company_id = $1 ORDER BY seq`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
