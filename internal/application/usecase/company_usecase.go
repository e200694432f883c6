package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo        repository.CompanyRepository
	channelRepo repository.ChannelRepository
	now         func() time.Time
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, channelRepo repository.ChannelRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, channelRepo: channelRepo, now: time.Now}
}

// Create crea una empresa con costos fijos, cobranza y canales por defecto.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.CompanyManufacturer, entity.CompanyTrader, entity.CompanyHybrid:
	default:
		return nil, domain.ErrInvalidInput
	}
	modules, err := normalizeModules(in.ActiveModules)
	if err != nil {
		return nil, err
	}
	if len(modules) == 0 {
		modules = []string{entity.ModuleInventory, entity.ModuleOrders}
	}
	industry := strings.ToUpper(strings.TrimSpace(in.Industry))
	if industry == "" {
		industry = "GENERIC"
	}
	now := uc.now()
	c := &entity.Company{
		ID:            uuid.New().String(),
		Name:          name,
		Type:          in.Type,
		Industry:      industry,
		JoinedDate:    now,
		ActiveModules: modules,
		FixedCosts:    entity.DefaultFixedCosts(),
		Collections:   entity.DefaultCollectionSettings(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	for _, ch := range entity.DefaultChannels(c.ID) {
		ch := ch
		if err := uc.channelRepo.Create(ctx, &ch); err != nil {
			return nil, err
		}
	}
	return ToCompanyResponse(c), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCompanyResponse(c), nil
}

// Entity devuelve la entidad (para otros casos de uso).
func (uc *CompanyUseCase) Entity(ctx context.Context, id string) (*entity.Company, error) {
	return uc.get(ctx, id)
}

func (uc *CompanyUseCase) get(ctx context.Context, id string) (*entity.Company, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// List lista las empresas.
func (uc *CompanyUseCase) List(ctx context.Context) ([]dto.CompanyResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *ToCompanyResponse(c))
	}
	return items, nil
}

// UpdateModules reemplaza los módulos activos.
func (uc *CompanyUseCase) UpdateModules(ctx context.Context, id string, modules []string) (*dto.CompanyResponse, error) {
	norm, err := normalizeModules(modules)
	if err != nil {
		return nil, err
	}
	return uc.update(ctx, id, func(c *entity.Company) error {
		c.ActiveModules = norm
		return nil
	})
}

// FixedCosts costos fijos mensuales de la empresa.
func (uc *CompanyUseCase) FixedCosts(ctx context.Context, id string) ([]dto.FixedCostItemDTO, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toFixedCostDTOs(c.FixedCosts), nil
}

// ReplaceFixedCosts reemplaza la lista de costos fijos. Los ítems sin ID reciben uno nuevo.
func (uc *CompanyUseCase) ReplaceFixedCosts(ctx context.Context, id string, items []dto.FixedCostItemDTO) ([]dto.FixedCostItemDTO, error) {
	costs := make([]entity.FixedCostItem, 0, len(items))
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" || it.Amount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		itemID := it.ID
		if itemID == "" {
			itemID = uuid.New().String()
		}
		costs = append(costs, entity.FixedCostItem{ID: itemID, Name: name, Amount: it.Amount})
	}
	out, err := uc.update(ctx, id, func(c *entity.Company) error {
		c.FixedCosts = costs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out.FixedCosts, nil
}

// CollectionSettings parámetros de cobranza.
func (uc *CompanyUseCase) CollectionSettings(ctx context.Context, id string) (*dto.CollectionSettingsDTO, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toCollectionDTO(c.Collections)
	return &out, nil
}

// UpdateCollectionSettings valida días ≥ 0 y canales EMAIL/WHATSAPP.
func (uc *CompanyUseCase) UpdateCollectionSettings(ctx context.Context, id string, in dto.CollectionSettingsDTO) (*dto.CollectionSettingsDTO, error) {
	if in.DaysBeforeDue < 0 {
		return nil, domain.ErrInvalidInput
	}
	channels := make([]string, 0, len(in.Channels))
	for _, ch := range in.Channels {
		ch = strings.ToUpper(strings.TrimSpace(ch))
		if ch != entity.ContactEmail && ch != entity.ContactWhatsApp {
			return nil, domain.ErrInvalidInput
		}
		channels = append(channels, ch)
	}
	out, err := uc.update(ctx, id, func(c *entity.Company) error {
		c.Collections = entity.CollectionSettings{DaysBeforeDue: in.DaysBeforeDue, AutoAIReminders: in.AutoAIReminders, Channels: channels}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out.Collections, nil
}

func (uc *CompanyUseCase) update(ctx context.Context, id string, fn func(c *entity.Company) error) (*dto.CompanyResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return ToCompanyResponse(c), nil
}

// normalizeModules valida y elimina duplicados conservando el orden.
func normalizeModules(in []string) ([]string, error) {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, m := range in {
		m = strings.ToUpper(strings.TrimSpace(m))
		if !entity.IsValidModule(m) {
			return nil, domain.ErrInvalidInput
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out, nil
}

// ToCompanyResponse convierte la entidad a DTO.
func ToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	modules := append([]string{}, c.ActiveModules...)
	return &dto.CompanyResponse{
		ID:            c.ID,
		Name:          c.Name,
		Type:          c.Type,
		Industry:      c.Industry,
		JoinedDate:    c.JoinedDate,
		ActiveModules: modules,
		FixedCosts:    toFixedCostDTOs(c.FixedCosts),
		Collections:   toCollectionDTO(c.Collections),
	}
}

func toFixedCostDTOs(items []entity.FixedCostItem) []dto.FixedCostItemDTO {
	out := make([]dto.FixedCostItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.FixedCostItemDTO{ID: it.ID, Name: it.Name, Amount: it.Amount})
	}
	return out
}

func toCollectionDTO(s entity.CollectionSettings) dto.CollectionSettingsDTO {
	return dto.CollectionSettingsDTO{
		DaysBeforeDue:   s.DaysBeforeDue,
		AutoAIReminders: s.AutoAIReminders,
		Channels:        append([]string{}, s.Channels...),
	}
}
