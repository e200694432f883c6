package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/profitability"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

// ChannelUseCase configuración de canales de venta y su rentabilidad.
type ChannelUseCase struct {
	channelRepo  repository.ChannelRepository
	customerRepo repository.CustomerRepository
}

// NewChannelUseCase construye el caso de uso.
func NewChannelUseCase(channelRepo repository.ChannelRepository, customerRepo repository.CustomerRepository) *ChannelUseCase {
	return &ChannelUseCase{channelRepo: channelRepo, customerRepo: customerRepo}
}

func validateChannel(in dto.ChannelConfigRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("nombre requerido: %w", domain.ErrInvalidInput)
	}
	switch in.Type {
	case entity.ChannelB2B, entity.ChannelB2C, entity.ChannelDigital:
	default:
		return fmt.Errorf("tipo de canal %q: %w", in.Type, domain.ErrInvalidInput)
	}
	if in.FixedCost.IsNegative() || in.MarketingBudget.IsNegative() ||
		in.VariableCostPercent.IsNegative() || in.VariableCostPercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("costos fuera de rango: %w", domain.ErrInvalidInput)
	}
	return nil
}

// List canales de la empresa en orden de alta.
func (uc *ChannelUseCase) List(ctx context.Context, companyID string) ([]dto.ChannelConfigResponse, error) {
	list, err := uc.channelRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ChannelConfigResponse, 0, len(list))
	for i := range list {
		out = append(out, toChannelResponse(&list[i]))
	}
	return out, nil
}

// Create da de alta un canal. Sin ID se genera uno.
func (uc *ChannelUseCase) Create(ctx context.Context, companyID string, in dto.ChannelConfigRequest) (*dto.ChannelConfigResponse, error) {
	if err := validateChannel(in); err != nil {
		return nil, err
	}
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.New().String()
	}
	ch := &entity.ChannelConfig{
		ID:                  id,
		CompanyID:           companyID,
		Name:                strings.TrimSpace(in.Name),
		Type:                in.Type,
		FixedCost:           in.FixedCost,
		VariableCostPercent: in.VariableCostPercent,
		MarketingBudget:     in.MarketingBudget,
	}
	if err := uc.channelRepo.Create(ctx, ch); err != nil {
		return nil, err
	}
	resp := toChannelResponse(ch)
	return &resp, nil
}

// Update reemplaza la configuración de un canal existente.
func (uc *ChannelUseCase) Update(ctx context.Context, companyID, id string, in dto.ChannelConfigRequest) (*dto.ChannelConfigResponse, error) {
	if err := validateChannel(in); err != nil {
		return nil, err
	}
	ch, err := uc.channelRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, domain.ErrNotFound
	}
	ch.Name = strings.TrimSpace(in.Name)
	ch.Type = in.Type
	ch.FixedCost = in.FixedCost
	ch.VariableCostPercent = in.VariableCostPercent
	ch.MarketingBudget = in.MarketingBudget
	if err := uc.channelRepo.Update(ctx, ch); err != nil {
		return nil, err
	}
	resp := toChannelResponse(ch)
	return &resp, nil
}

// Delete elimina un canal. Los clientes que lo referencian quedan sin canal asignado.
func (uc *ChannelUseCase) Delete(ctx context.Context, companyID, id string) error {
	ok, err := uc.channelRepo.Delete(ctx, companyID, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// Profitability rentabilidad por canal en el rango indicado (MONTH, QUARTER, YEAR, ALL; vacío = YEAR).
func (uc *ChannelUseCase) Profitability(ctx context.Context, companyID, timeRange string) (*dto.ChannelProfitabilityResponse, error) {
	if timeRange == "" {
		timeRange = profitability.RangeYear
	}
	timeRange = strings.ToUpper(timeRange)
	if !profitability.IsValidRange(timeRange) {
		return nil, fmt.Errorf("rango %q: %w", timeRange, domain.ErrInvalidInput)
	}
	configs, err := uc.channelRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("canales: listar configuración: %w", err)
	}
	customers, err := uc.customerRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("canales: listar clientes: %w", err)
	}

	results, totals := profitability.Rollup(configs, customers, timeRange)
	out := &dto.ChannelProfitabilityResponse{
		Range:    timeRange,
		Channels: make([]dto.ChannelProfitDTO, 0, len(results)),
		Totals: dto.ChannelProfitDTO{
			ChannelName:   "TOTAL",
			Revenue:       totals.Revenue,
			COGS:          totals.COGS,
			VariableCosts: totals.VariableCosts,
			FixedCosts:    totals.FixedCosts,
			Marketing:     totals.Marketing,
			OpCosts:       totals.OpCosts,
			TotalCosts:    totals.TotalCosts,
			NetProfit:     totals.NetProfit,
			MarginPercent: totals.MarginPercent,
		},
	}
	for _, r := range results {
		out.Totals.Customers += r.Customers
		out.Channels = append(out.Channels, dto.ChannelProfitDTO{
			ChannelID:     r.ChannelID,
			ChannelName:   r.ChannelName,
			ChannelType:   r.ChannelType,
			Customers:     r.Customers,
			Revenue:       r.Revenue,
			COGS:          r.COGS,
			VariableCosts: r.VariableCosts,
			FixedCosts:    r.FixedCosts,
			Marketing:     r.Marketing,
			OpCosts:       r.OpCosts,
			TotalCosts:    r.TotalCosts,
			NetProfit:     r.NetProfit,
			MarginPercent: r.MarginPercent,
		})
	}
	return out, nil
}

func toChannelResponse(ch *entity.ChannelConfig) dto.ChannelConfigResponse {
	return dto.ChannelConfigResponse{
		ID:                  ch.ID,
		Name:                ch.Name,
		Type:                ch.Type,
		FixedCost:           ch.FixedCost,
		VariableCostPercent: ch.VariableCostPercent,
		MarketingBudget:     ch.MarketingBudget,
	}
}
