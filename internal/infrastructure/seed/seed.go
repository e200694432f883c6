// Package seed carga el catálogo de demostración (empresas, productos, clientes, pedidos y abastecimiento).
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

// Repos repositorios que usa la carga inicial.
type Repos struct {
	Companies    repository.CompanyRepository
	Products     repository.ProductRepository
	Customers    repository.CustomerRepository
	Orders       repository.OrderRepository
	SupplyOrders repository.SupplyOrderRepository
	Channels     repository.ChannelRepository
}

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

// Companies empresas de demostración.
func Companies() []*entity.Company {
	mk := func(id, name, typ, industry, joined string, modules ...string) *entity.Company {
		j := day(joined)
		return &entity.Company{
			ID: id, Name: name, Type: typ, Industry: industry, JoinedDate: j,
			ActiveModules: modules,
			FixedCosts:    entity.DefaultFixedCosts(),
			Collections:   entity.DefaultCollectionSettings(),
			CreatedAt:     j, UpdatedAt: j,
		}
	}
	return []*entity.Company{
		mk("1", "Global Textiles Ltd", entity.CompanyManufacturer, "FASHION", "2023-01-15",
			entity.ModuleInventory, entity.ModuleSupplyChain, entity.ModuleOrders, entity.ModuleFinance,
			entity.ModuleHistory, entity.ModuleChannels, entity.ModuleCRM),
		mk("2", "Urban Electronics", entity.CompanyTrader, "ELECTRONICS", "2023-03-22",
			entity.ModuleInventory, entity.ModuleOrders, entity.ModuleCRM, entity.ModuleAIStudio,
			entity.ModuleFinance, entity.ModuleHistory, entity.ModuleChannels),
		mk("3", "Fusion Generic Group", entity.CompanyHybrid, "GENERIC", "2023-06-10",
			entity.ModuleInventory, entity.ModuleSupplyChain, entity.ModuleOrders, entity.ModuleHistory,
			entity.ModuleChannels),
	}
}

// Products catálogo de demostración para una empresa.
func Products(companyID string) []*entity.Product {
	created := day("2024-01-01")
	base := func(p entity.Product) *entity.Product {
		p.CompanyID = companyID
		p.CreatedAt, p.UpdatedAt = created, created
		if p.PackSize == 0 {
			p.PackSize = 1
		}
		return &p
	}
	return []*entity.Product{
		base(entity.Product{
			ID: "1", Name: "Camiseta Algodón Premium", SKU: "TSH-001", Category: "Camisetas",
			CostPrice: d(5.50), SalePrice: d(19.99), Stock: 500, LowStockThreshold: 100,
			Description: "100% Algodón orgánico peinado", Features: []string{"Transpirable", "Pre-encogido", "Eco-Friendly"},
			RawMaterialCost: d(3.50), LaborCost: d(2.00), ProductionTimeDays: 2,
			OriginType: entity.OriginManufactured, Supplier: "Internal Factory",
			Sizes:            []string{"XS", "S", "M", "L", "XL", "XXL"},
			Colors:           []string{"Blanco", "Negro", "Gris Melange", "Azul Marino"},
			QualityStandards: "El logo debe estar perfectamente centrado. Sin hilos sueltos en costuras. Etiqueta interna sin arrugas.",
		}),
		base(entity.Product{
			ID: "2", Name: "Jeans Slim Fit Denim", SKU: "JNS-SLIM-02", Category: "Pantalones",
			CostPrice: d(12.00), SalePrice: d(45.00), Stock: 45, LowStockThreshold: 50,
			Description: "Denim elástico de alta resistencia", Features: []string{"5 Bolsillos", "Lavado a la piedra", "Cierre YKK"},
			RawMaterialCost: d(8.00), LaborCost: d(4.00), ProductionTimeDays: 4,
			OriginType: entity.OriginManufactured, Supplier: "Planta Norte",
			Sizes:            []string{"30", "32", "34", "36", "38"},
			Colors:           []string{"Azul Indigo", "Negro"},
			QualityStandards: "Remaches metálicos deben estar firmes. El lavado a la piedra debe ser uniforme. Cremallera YKK funcional.",
		}),
		base(entity.Product{
			ID: "3", Name: "Smart Watch Series 5", SKU: "ELC-SW5", Category: "Wearables",
			CostPrice: d(45.00), SalePrice: d(120.00), Stock: 12, LowStockThreshold: 20,
			Description: "Reloj inteligente con monitor cardiaco y GPS", Features: []string{"Bluetooth 5.0", "Waterproof IP68", "Batería 7 días"},
			ImportDutyPercent: d(10), OriginType: entity.OriginImported, Supplier: "TechShenzhen Ltd",
			Colors:           []string{"Black", "Silver", "Rose Gold"},
			QualityStandards: "La pantalla no debe tener rayones. El empaque debe incluir cargador y manual en inglés. Sello de seguridad intacto.",
		}),
		base(entity.Product{
			ID: "4", Name: "Auriculares Noise Cancel", SKU: "AUD-NC-PRO", Category: "Audio",
			CostPrice: d(25.00), SalePrice: d(89.99), Stock: 150, LowStockThreshold: 30,
			Description: "Auriculares over-ear con cancelación activa", Features: []string{"ANC", "30h Batería", "USB-C"},
			ImportDutyPercent: d(15), OriginType: entity.OriginImported, Supplier: "AudioGlobal CN",
			Colors: []string{"Black", "White"},
		}),
		base(entity.Product{
			ID: "5", Name: "Cargador Rápido GaN 65W", SKU: "PWR-GAN-65", Category: "Accesorios",
			CostPrice: d(8.50), SalePrice: d(29.99), Stock: 800, LowStockThreshold: 100,
			Description: "Cargador compacto para laptops y móviles", Features: []string{"GaN Tech", "Dual USB-C", "Compacto"},
			ImportDutyPercent: d(5), OriginType: entity.OriginImported, Supplier: "TechShenzhen Ltd",
		}),
		base(entity.Product{
			ID: "6", Name: `Válvula Industrial 2"`, SKU: "IND-VLV-02", Category: "Hardware",
			CostPrice: d(18.50), SalePrice: d(55.00), Stock: 80, LowStockThreshold: 20,
			Description: "Válvula de acero inoxidable alta presión", Features: []string{"High Pressure", "ISO Certified", "316 Steel"},
			RawMaterialCost: d(12.50), LaborCost: d(5.00), ProductionTimeDays: 3,
			OriginType: entity.OriginManufactured, Supplier: "Internal Factory",
			QualityStandards: "Acabado pulido sin rebabas. Logotipo grabado con láser visible. Rosca sin daños.",
		}),
		base(entity.Product{
			ID: "7", Name: "Kit Sellos Hidráulicos", SKU: "IND-SEAL-KIT", Category: "Repuestos",
			CostPrice: d(3.20), SalePrice: d(15.00), Stock: 25, LowStockThreshold: 40,
			Description: "Kit de mantenimiento preventivo", Features: []string{"O-Rings", "Gaskets", "Lubricante"},
			ImportDutyPercent: d(8), OriginType: entity.OriginImported, Supplier: "Seals & Parts Co.",
			PackSize: 10,
		}),
		base(entity.Product{
			ID: "8", Name: "Pack Botellas Vidrio 500ml", SKU: "PKG-GLS-500", Category: "Envases",
			CostPrice: d(0.80), SalePrice: d(2.50), Stock: 5000, LowStockThreshold: 1000,
			Description: "Botellas para bebidas artesanales", Features: []string{"Reciclable", "Tapa incluida"},
			ImportDutyPercent: d(0), OriginType: entity.OriginImported, Supplier: "GlassMasters",
			PackSize: 24,
		}),
	}
}

// Customers clientes de demostración.
func Customers(companyID string) []*entity.Customer {
	mk := func(id, name, company, email, phone, status, channel, last string, spend, balance float64, methods ...string) *entity.Customer {
		c := &entity.Customer{
			ID: id, CompanyID: companyID, Name: name, Company: company, Email: email, Phone: phone,
			ContactMethods: methods, Status: status, Channel: channel,
			TotalSpend: d(spend), OutstandingBalance: d(balance),
			CreatedAt: day("2023-01-01"), UpdatedAt: day("2023-01-01"),
		}
		if last != "" {
			c.LastOrderDate = dayPtr(last)
		}
		return c
	}
	return []*entity.Customer{
		mk("1", "Alice Johnson", "Moda Urbana S.A.", "alice@modaurbana.com", "+52 55 1234 5678", entity.CustomerActive, "DEPARTMENT_STORE", "2023-10-15", 42500, 0, entity.ContactEmail, entity.ContactWhatsApp),
		mk("2", "Bob Smith", "Boutique Elegante", "bob@boutique.net", "+52 55 9876 5432", entity.CustomerProspect, "BOUTIQUE", "", 0, 0, entity.ContactWhatsApp),
		mk("3", "Charlie Davis", "Mega Mayorista", "charlie@megamayor.co", "", entity.CustomerActive, "WHOLESALE", "2024-02-10", 154000, 12000, entity.ContactEmail),
		mk("4", "Diana Prince", "Estilo Online", "diana@estilo.com", "+52 33 1122 3344", entity.CustomerActive, "ECOMMERCE", "2024-03-01", 28900, 4500, entity.ContactEmail, entity.ContactWhatsApp),
		mk("5", "Elena Torres", "Mercado Libre Shop", "", "+52 81 5566 7788", entity.CustomerActive, "MARKETPLACE", "2024-03-05", 8900, 0, entity.ContactWhatsApp),
		mk("6", "Frank Miller", "Ropa x Kilo", "frank@ropaxkilo.com", "", entity.CustomerInactive, "WHOLESALE", "2023-08-20", 67000, 500),
	}
}

// Orders pedidos de demostración.
func Orders(companyID string) []*entity.Order {
	line := func(pid, name string, qty int, price float64, size, color string) entity.OrderItem {
		return entity.OrderItem{
			ProductID: pid, ProductName: name, Quantity: qty, UnitPrice: d(price),
			Total: d(price).Mul(decimal.NewFromInt(int64(qty))), SelectedSize: size, SelectedColor: color,
		}
	}
	return []*entity.Order{
		{
			ID: "ORD-2024-001", CompanyID: companyID, CustomerID: "1", CustomerName: "Alice Johnson",
			Date: day("2024-03-10"), Status: entity.OrderStatusShipped,
			Items: []entity.OrderItem{
				line("1", "Camiseta Algodón Premium", 50, 19.99, "M", "Blanco"),
				line("4", "Auriculares Noise Cancel", 10, 89.99, "", ""),
			},
			ShippingCost: d(50), TotalAmount: d(1949.40),
			TrackingNumber: "TRK-8842-XJ9", LogisticsProvider: "FedEx Express", EstimatedDelivery: dayPtr("2024-03-15"),
			PaymentTerms: 30, DueDate: day("2024-04-09"), PaymentStatus: entity.PaymentPending,
			CreatedAt: day("2024-03-10"), UpdatedAt: day("2024-03-10"),
		},
		{
			ID: "ORD-2024-002", CompanyID: companyID, CustomerID: "4", CustomerName: "Diana Prince",
			Date: day("2024-03-08"), Status: entity.OrderStatusProcessing,
			Items: []entity.OrderItem{
				line("3", "Smart Watch Series 5", 15, 120.00, "", "Black"),
				line("5", "Cargador Rápido GaN 65W", 30, 29.99, "", ""),
			},
			ShippingCost: d(50.30), TotalAmount: d(2750.00),
			PaymentTerms: 0, DueDate: day("2024-03-08"), PaymentStatus: entity.PaymentPaid,
			CreatedAt: day("2024-03-08"), UpdatedAt: day("2024-03-08"),
		},
		{
			ID: "ORD-2024-003", CompanyID: companyID, CustomerID: "1", CustomerName: "Alice Johnson",
			Date: day("2024-02-28"), Status: entity.OrderStatusDelivered,
			Items: []entity.OrderItem{
				line("2", "Jeans Slim Fit Denim", 100, 45.00, "32", "Azul Indigo"),
			},
			ShippingCost: d(100), TotalAmount: d(4600.00),
			TrackingNumber: "DHL-2291", LogisticsProvider: "DHL",
			PaymentTerms: 15, DueDate: day("2024-03-14"), PaymentStatus: entity.PaymentOverdue, RemindersSent: 1,
			CreatedAt: day("2024-02-28"), UpdatedAt: day("2024-02-28"),
		},
	}
}

// SupplyOrders órdenes de abastecimiento de demostración.
func SupplyOrders(companyID string) []*entity.SupplyOrder {
	return []*entity.SupplyOrder{
		{
			ID: "SUP-001", CompanyID: companyID, Type: entity.SupplyPurchaseOrder,
			ProductID: "3", ProductName: "Smart Watch Series 5", Quantity: 200,
			CostPerUnit: d(45), ShippingCost: d(500), TotalCost: d(9500),
			SupplierOrFacility: "TechShenzhen Ltd", OrderDate: day("2024-02-15"), ExpectedArrivalDate: dayPtr("2024-03-25"),
			Status: entity.SupplyStatusInTransit, TrackingNumber: "OOLU8849201",
			CreatedAt: day("2024-02-15"), UpdatedAt: day("2024-02-15"),
		},
		{
			ID: "SUP-002", CompanyID: companyID, Type: entity.SupplyProductionOrder,
			ProductID: "2", ProductName: "Jeans Slim Fit Denim", Quantity: 500,
			CostPerUnit: d(12), TotalCost: d(6000),
			SupplierOrFacility: "Planta Norte", OrderDate: day("2024-03-01"), ExpectedArrivalDate: dayPtr("2024-03-20"),
			Status: entity.SupplyStatusInProduction, TrackingNumber: "LOTE-24-A",
			CreatedAt: day("2024-03-01"), UpdatedAt: day("2024-03-01"),
		},
		{
			ID: "SUP-003", CompanyID: companyID, Type: entity.SupplyPurchaseOrder,
			ProductID: "5", ProductName: "Cargador Rápido GaN 65W", Quantity: 1000,
			CostPerUnit: d(8.5), ShippingCost: d(300), TotalCost: d(8800),
			SupplierOrFacility: "TechShenzhen Ltd", OrderDate: day("2024-01-10"), ExpectedArrivalDate: dayPtr("2024-02-15"),
			Status: entity.SupplyStatusReceived, TrackingNumber: "DHL-992812",
			CreatedAt: day("2024-01-10"), UpdatedAt: day("2024-01-10"),
		},
	}
}

// Apply carga los datos de demostración. Las empresas ya existentes se omiten completas.
func Apply(ctx context.Context, r Repos) error {
	for _, c := range Companies() {
		existing, err := r.Companies.GetByID(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("seed: leer empresa %s: %w", c.ID, err)
		}
		if existing != nil {
			continue
		}
		if err := r.Companies.Create(ctx, c); err != nil {
			return fmt.Errorf("seed: empresa %s: %w", c.ID, err)
		}
		if err := Company(ctx, r, c.ID); err != nil {
			return err
		}
	}
	return nil
}

// Company carga el catálogo de demostración en una empresa ya creada.
func Company(ctx context.Context, r Repos, companyID string) error {
	for _, ch := range entity.DefaultChannels(companyID) {
		ch := ch
		if err := r.Channels.Create(ctx, &ch); err != nil {
			return fmt.Errorf("seed: canal %s: %w", ch.ID, err)
		}
	}
	for _, p := range Products(companyID) {
		if err := r.Products.Create(ctx, p); err != nil {
			return fmt.Errorf("seed: producto %s: %w", p.ID, err)
		}
	}
	for _, c := range Customers(companyID) {
		if err := r.Customers.Create(ctx, c); err != nil {
			return fmt.Errorf("seed: cliente %s: %w", c.ID, err)
		}
	}
	for _, o := range Orders(companyID) {
		if err := r.Orders.Create(ctx, o); err != nil {
			return fmt.Errorf("seed: pedido %s: %w", o.ID, err)
		}
	}
	for _, s := range SupplyOrders(companyID) {
		if err := r.SupplyOrders.Create(ctx, s); err != nil {
			return fmt.Errorf("seed: abastecimiento %s: %w", s.ID, err)
		}
	}
	return nil
}
