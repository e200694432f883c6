package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de empresa.
const (
	CompanyManufacturer = "MANUFACTURER"
	CompanyTrader       = "TRADER"
	CompanyHybrid       = "HYBRID"
)

// Módulos SaaS que una empresa puede tener activos.
const (
	ModuleInventory   = "INVENTORY"
	ModuleOrders      = "ORDERS"
	ModuleSupplyChain = "SUPPLY_CHAIN"
	ModuleCRM         = "CRM"
	ModuleAIStudio    = "AI_STUDIO"
	ModuleFinance     = "FINANCE"
	ModuleHistory     = "HISTORY"
	ModuleChannels    = "CHANNELS"
)

// AllModules lista ordenada de módulos válidos.
var AllModules = []string{
	ModuleInventory, ModuleOrders, ModuleSupplyChain, ModuleCRM,
	ModuleAIStudio, ModuleFinance, ModuleHistory, ModuleChannels,
}

// IsValidModule valida el nombre de un módulo.
func IsValidModule(m string) bool {
	for _, v := range AllModules {
		if v == m {
			return true
		}
	}
	return false
}

// FixedCostItem costo fijo mensual (renta, nómina, servicios).
type FixedCostItem struct {
	ID     string
	Name   string
	Amount decimal.Decimal
}

// CollectionSettings parámetros de cobranza.
type CollectionSettings struct {
	DaysBeforeDue   int
	AutoAIReminders bool
	Channels        []string // EMAIL | WHATSAPP
}

// Company tenant del sistema.
type Company struct {
	ID            string
	Name          string
	Type          string
	Industry      string // FASHION, ELECTRONICS, FMCG, GENERIC
	JoinedDate    time.Time
	ActiveModules []string
	FixedCosts    []FixedCostItem
	Collections   CollectionSettings
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasModule indica si el módulo está activo.
func (c *Company) HasModule(m string) bool {
	for _, v := range c.ActiveModules {
		if v == m {
			return true
		}
	}
	return false
}

// MonthlyFixedCost suma los costos fijos mensuales.
func (c *Company) MonthlyFixedCost() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.FixedCosts {
		total = total.Add(it.Amount)
	}
	return total
}

// DefaultFixedCosts costos fijos iniciales de una empresa nueva.
func DefaultFixedCosts() []FixedCostItem {
	return []FixedCostItem{
		{ID: "1", Name: "Renta de Planta/Oficina", Amount: decimal.NewFromInt(2000)},
		{ID: "2", Name: "Nómina Administrativa", Amount: decimal.NewFromInt(2500)},
		{ID: "3", Name: "Servicios (Luz/Agua)", Amount: decimal.NewFromInt(500)},
	}
}

// DefaultCollectionSettings cobranza por defecto: aviso 5 días antes, sin recordatorios automáticos.
func DefaultCollectionSettings() CollectionSettings {
	return CollectionSettings{DaysBeforeDue: 5, AutoAIReminders: false, Channels: []string{ContactEmail, ContactWhatsApp}}
}

// Clone devuelve una copia profunda.
func (c *Company) Clone() *Company {
	cp := *c
	cp.ActiveModules = append([]string(nil), c.ActiveModules...)
	cp.FixedCosts = append([]FixedCostItem(nil), c.FixedCosts...)
	cp.Collections.Channels = append([]string(nil), c.Collections.Channels...)
	return &cp
}
