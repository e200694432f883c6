package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

// ModuleService verifica qué módulos SaaS tiene activos una empresa.
// Es el único punto de la aplicación que conoce la lógica de activación de módulos.
type ModuleService struct {
	companyRepo repository.CompanyRepository
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(companyRepo repository.CompanyRepository) *ModuleService {
	return &ModuleService{companyRepo: companyRepo}
}

// HasActiveModule informa si la empresa tiene el módulo activo.
// Devuelve false (sin error) si la empresa no existe o no tiene el módulo.
// Devuelve error solo ante fallos de infraestructura (DB caída, timeout, etc.).
func (s *ModuleService) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	if companyID == "" || moduleName == "" {
		return false, fmt.Errorf("module: companyID y moduleName son obligatorios")
	}
	c, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return false, fmt.Errorf("module: leer empresa: %w", err)
	}
	if c == nil {
		return false, nil
	}
	return c.HasModule(moduleName), nil
}
