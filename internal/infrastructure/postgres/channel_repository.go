package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

var _ repository.ChannelRepository = (*ChannelRepo)(nil)

// ChannelRepo configuración de canales de venta sobre PostgreSQL.
type ChannelRepo struct {
	q Querier
}

// NewChannelRepository construye el adaptador.
func NewChannelRepository(q Querier) *ChannelRepo {
	return &ChannelRepo{q: q}
}

const channelColumns = `id, company_id, name, type, fixed_cost, variable_cost_percent, marketing_budget`

func scanChannel(row pgx.Row) (entity.ChannelConfig, error) {
	var c entity.ChannelConfig
	err := row.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Type, &c.FixedCost, &c.VariableCostPercent, &c.MarketingBudget)
	return c, err
}

func (r *ChannelRepo) Create(ctx context.Context, ch *entity.ChannelConfig) error {
	_, err := r.q.Exec(ctx, `INSERT INTO channels (`+channelColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ch.ID, ch.CompanyID, ch.Name, ch.Type, ch.FixedCost, ch.VariableCostPercent, ch.MarketingBudget)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert channel: %w", err)
	}
	return nil
}

func (r *ChannelRepo) GetByID(ctx context.Context, companyID, id string) (*entity.ChannelConfig, error) {
	c, err := scanChannel(r.q.QueryRow(ctx,
		`SELECT `+channelColumns+` FROM channels WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get channel: %w", err)
	}
	return &c, nil
}

func (r *ChannelRepo) Update(ctx context.Context, ch *entity.ChannelConfig) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE channels SET name = $3, type = $4, fixed_cost = $5, variable_cost_percent = $6, marketing_budget = $7
		WHERE company_id = $1 AND id = $2`,
		ch.CompanyID, ch.ID, ch.Name, ch.Type, ch.FixedCost, ch.VariableCostPercent, ch.MarketingBudget)
	if err != nil {
		return fmt.Errorf("update channel: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ChannelRepo) Delete(ctx context.Context, companyID, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM channels WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return false, fmt.Errorf("delete channel: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *ChannelRepo) ListByCompany(ctx context.Context, companyID string) ([]entity.ChannelConfig, error) {
	rows, err := r.q.Query(ctx, `SELECT `+channelColumns+` FROM channels WHERE company_id = $1 ORDER BY seq`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	defer rows.Close()
	list := make([]entity.ChannelConfig, 0)
	for rows.Next() {
		c, err := scanChannel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
