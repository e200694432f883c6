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
	"github.com/jhoicas/Operaciones-api/pkg/textfold"
)

// CustomerUseCase casos de uso del CRM.
type CustomerUseCase struct {
	repo repository.CustomerRepository
	now  func() time.Time
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, now: time.Now}
}

// Create crea un nuevo cliente. Estado por defecto: Prospect.
func (uc *CustomerUseCase) Create(ctx context.Context, companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.TotalSpend.IsNegative() || in.OutstandingBalance.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	methods, err := normalizeContactMethods(in.ContactMethods)
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.CustomerProspect
	}
	if !isValidCustomerStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	c := &entity.Customer{
		ID:                 uuid.New().String(),
		CompanyID:          companyID,
		Name:               name,
		Company:            strings.TrimSpace(in.Company),
		Email:              strings.TrimSpace(in.Email),
		Phone:              strings.TrimSpace(in.Phone),
		ContactMethods:     methods,
		Status:             status,
		Channel:            strings.TrimSpace(in.Channel),
		TotalSpend:         in.TotalSpend,
		OutstandingBalance: in.OutstandingBalance,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return ToCustomerResponse(c), nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return ToCustomerResponse(c), nil
}

// List lista clientes de la empresa con búsqueda (nombre, empresa, correo) y filtros.
func (uc *CustomerUseCase) List(ctx context.Context, companyID string, f dto.CustomerFilter) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		if f.Channel != "" && c.Channel != f.Channel {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if !textfold.Match(f.Search, c.Name, c.Company, c.Email) {
			continue
		}
		out = append(out, *ToCustomerResponse(c))
	}
	return out, nil
}

// Update actualiza los campos enviados.
func (uc *CustomerUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		c.Name = name
	}
	if in.Company != nil {
		c.Company = strings.TrimSpace(*in.Company)
	}
	if in.Email != nil {
		c.Email = strings.TrimSpace(*in.Email)
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.ContactMethods != nil {
		methods, err := normalizeContactMethods(in.ContactMethods)
		if err != nil {
			return nil, err
		}
		c.ContactMethods = methods
	}
	if in.Status != nil {
		if !isValidCustomerStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		c.Status = *in.Status
	}
	if in.Channel != nil {
		c.Channel = strings.TrimSpace(*in.Channel)
	}
	if in.TotalSpend != nil {
		if in.TotalSpend.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		c.TotalSpend = *in.TotalSpend
	}
	if in.OutstandingBalance != nil {
		if in.OutstandingBalance.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		c.OutstandingBalance = *in.OutstandingBalance
	}
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return ToCustomerResponse(c), nil
}

func isValidCustomerStatus(s string) bool {
	return s == entity.CustomerActive || s == entity.CustomerProspect || s == entity.CustomerInactive
}

func normalizeContactMethods(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, m := range in {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m != entity.ContactEmail && m != entity.ContactWhatsApp {
			return nil, domain.ErrInvalidInput
		}
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out, nil
}

// ToCustomerResponse convierte la entidad a DTO.
func ToCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Company:            c.Company,
		Email:              c.Email,
		Phone:              c.Phone,
		ContactMethods:     append([]string{}, c.ContactMethods...),
		Status:             c.Status,
		Channel:            c.Channel,
		LastOrderDate:      c.LastOrderDate,
		TotalSpend:         c.TotalSpend,
		OutstandingBalance: c.OutstandingBalance,
	}
}
