package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name          string   `json:"name" validate:"required,min=1,max=200"`
	Type          string   `json:"type" validate:"required,oneof=MANUFACTURER TRADER HYBRID"`
	Industry      string   `json:"industry"`
	ActiveModules []string `json:"active_modules"`
}

// UpdateModulesRequest reemplaza los módulos activos.
type UpdateModulesRequest struct {
	ActiveModules []string `json:"active_modules"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Type          string                `json:"type"`
	Industry      string                `json:"industry"`
	JoinedDate    time.Time             `json:"joined_date"`
	ActiveModules []string              `json:"active_modules"`
	FixedCosts    []FixedCostItemDTO    `json:"fixed_costs"`
	Collections   CollectionSettingsDTO `json:"collection_settings"`
}
