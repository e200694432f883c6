package inventory_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/application/inventory"
	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
	"github.com/jhoicas/Operaciones-api/internal/infrastructure/memory"
)

const company = "1"

type fixture struct {
	store    *memory.Store
	repos    memory.Repos
	tx       *memory.TxRunner
	ledger   *inventory.Ledger
	products *inventory.ProductUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := memory.NewSeededStore(context.Background())
	require.NoError(t, err)
	repos := store.Repos()
	tx := memory.NewTxRunner(store)
	ledger := inventory.NewLedger()
	return &fixture{
		store:    store,
		repos:    repos,
		tx:       tx,
		ledger:   ledger,
		products: inventory.NewProductUseCase(repos.Products, repos.Companies, tx, ledger),
	}
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.repos.Products.GetByID(context.Background(), company, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

// ── Ledger ───────────────────────────────────────────────────────────────────

func TestLedger_DeduccionNuncaNegativa(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		qty := rng.Intn(40) + 1
		order := &entity.Order{CompanyID: company, Items: []entity.OrderItem{{ProductID: "3", Quantity: qty}}}
		err := f.tx.Run(ctx, func(repo repository.ProductRepository) error {
			_, err := f.ledger.Deduct(ctx, repo, order)
			return err
		})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, f.stock(t, "3"), 0)
	}
	assert.Equal(t, 0, f.stock(t, "3"))
}

func TestLedger_DescuentaSoloLineasDelPedido(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := &entity.Order{CompanyID: company, Items: []entity.OrderItem{
		{ProductID: "1", Quantity: 5},
		{ProductID: "2", Quantity: 3},
		{ProductID: "no-existe", Quantity: 9},
	}}

	var units int
	err := f.tx.Run(ctx, func(repo repository.ProductRepository) error {
		var err error
		units, err = f.ledger.Deduct(ctx, repo, order)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 8, units)
	assert.Equal(t, 495, f.stock(t, "1"))
	assert.Equal(t, 42, f.stock(t, "2"))
	assert.Equal(t, 12, f.stock(t, "3"))
	assert.Equal(t, 150, f.stock(t, "4"))
}

func TestLedger_CreditoSumaCantidad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	err := f.tx.Run(ctx, func(repo repository.ProductRepository) error {
		return f.ledger.Credit(ctx, repo, &entity.SupplyOrder{CompanyID: company, ProductID: "3", Quantity: 200})
	})
	require.NoError(t, err)
	assert.Equal(t, 212, f.stock(t, "3"))

	err = f.tx.Run(ctx, func(repo repository.ProductRepository) error {
		return f.ledger.Credit(ctx, repo, &entity.SupplyOrder{CompanyID: company, ProductID: "fantasma", Quantity: 5})
	})
	assert.NoError(t, err)
}

func TestLedger_AjusteManual(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.products.AdjustStock(ctx, company, "2", 70)
	require.NoError(t, err)
	assert.Equal(t, 70, p.Stock)
	assert.False(t, p.IsLowStock)
	assert.Equal(t, 70, f.stock(t, "2"))

	_, err = f.products.AdjustStock(ctx, company, "2", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.products.AdjustStock(ctx, company, "nada", 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 70, f.stock(t, "2"))
}

// ── Productos ────────────────────────────────────────────────────────────────

func TestProducts_CrearConValoresPorDefecto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.products.Create(ctx, company, dto.CreateProductRequest{
		SKU: "NEW-01", Name: "Gorra Bordada", SalePrice: decimal.NewFromInt(15),
		RawMaterialCost: decimal.NewFromInt(4), LaborCost: decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "General", p.Category)
	assert.Equal(t, 10, p.LowStockThreshold)
	assert.Equal(t, 1, p.PackSize)
	assert.Equal(t, entity.OriginManufactured, p.OriginType)
	assert.True(t, p.UnitCost.Equal(decimal.NewFromInt(6)))
	assert.True(t, p.Margin.Equal(decimal.NewFromInt(9)))
	assert.True(t, p.MarginPercent.Equal(decimal.NewFromInt(60)))

	_, err = f.products.Create(ctx, company, dto.CreateProductRequest{SKU: "NEW-01", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = f.products.Create(ctx, company, dto.CreateProductRequest{SKU: "", Name: "Sin SKU"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	trader, err := f.products.Create(ctx, "2", dto.CreateProductRequest{SKU: "IMP-1", Name: "Importado"})
	require.NoError(t, err)
	assert.Equal(t, entity.OriginImported, trader.OriginType)
}

func TestProducts_BusquedaSinTildesYFiltros(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	list, err := f.products.List(ctx, company, dto.ProductFilter{Search: "valvula"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "IND-VLV-02", list[0].SKU)

	list, err = f.products.List(ctx, company, dto.ProductFilter{OriginType: entity.OriginManufactured})
	require.NoError(t, err)
	assert.Len(t, list, 3)

	list, err = f.products.List(ctx, company, dto.ProductFilter{LowStock: true})
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestProducts_ActualizarNoTocaStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	name := "Jeans Slim Fit Negro"
	price := decimal.NewFromInt(50)

	p, err := f.products.Update(ctx, company, "2", dto.UpdateProductRequest{Name: &name, SalePrice: &price})
	require.NoError(t, err)
	assert.Equal(t, name, p.Name)
	assert.Equal(t, 45, p.Stock)

	bad := "LOCAL"
	_, err = f.products.Update(ctx, company, "2", dto.UpdateProductRequest{OriginType: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.products.Update(ctx, company, "x", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProducts_EtiquetaQR(t *testing.T) {
	f := newFixture(t)
	label, err := f.products.QRLabel(context.Background(), company, "4")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"4"}`, label.Payload)
	assert.Equal(t, "AUD-NC-PRO", label.SKU)
}

// ── Auditoría ────────────────────────────────────────────────────────────────

func TestAudit_AplicaConteosYDiferencias(t *testing.T) {
	f := newFixture(t)
	res, err := f.products.Audit(context.Background(), company, dto.AuditRequest{Counts: []dto.AuditCount{
		{ProductID: "1", Counted: 480},
		{ProductID: "2", Counted: 50},
	}})
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, 500, res[0].Previous)
	assert.Equal(t, -20, res[0].Difference)
	assert.Equal(t, 5, res[1].Difference)
	assert.Equal(t, 480, f.stock(t, "1"))
	assert.Equal(t, 50, f.stock(t, "2"))
}

func TestAudit_FalloRevierteTodoElLote(t *testing.T) {
	f := newFixture(t)
	_, err := f.products.Audit(context.Background(), company, dto.AuditRequest{Counts: []dto.AuditCount{
		{ProductID: "1", Counted: 1},
		{ProductID: "desconocido", Counted: 3},
	}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 500, f.stock(t, "1"))

	_, err = f.products.Audit(context.Background(), company, dto.AuditRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Packs ────────────────────────────────────────────────────────────────────

func TestPack_Surtido(t *testing.T) {
	f := newFixture(t)
	p, err := f.products.CreatePack(context.Background(), company, dto.CreatePackRequest{
		BaseProductID: "1",
		Distribution:  map[string]int{"M": 4, "S": 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "Camiseta Algodón Premium (Pack)", p.Name)
	assert.Equal(t, "TSH-001-PK6", p.SKU)
	assert.Equal(t, 6, p.PackSize)
	assert.Equal(t, 0, p.Stock)
	assert.True(t, p.SalePrice.Equal(decimal.RequireFromString("107.946")))
	assert.Equal(t, "Pack x6: 2 S, 4 M", p.Features[len(p.Features)-1])
}

func TestPack_TallaUnicaYValidacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.products.CreatePack(ctx, company, dto.CreatePackRequest{BaseProductID: "5", Name: "Caja x12", Units: 12})
	require.NoError(t, err)
	assert.Equal(t, "Caja x12", p.Name)
	assert.Equal(t, "PWR-GAN-65-PK12", p.SKU)
	assert.Contains(t, p.Features, "Pack x12 (Estándar/Surtido)")

	_, err = f.products.CreatePack(ctx, company, dto.CreatePackRequest{BaseProductID: "5"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.products.CreatePack(ctx, company, dto.CreatePackRequest{BaseProductID: "zz", Units: 2})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Reposición y exportación ─────────────────────────────────────────────────

func TestReplenishment_OrdenadoPorDeficit(t *testing.T) {
	f := newFixture(t)
	list, err := inventory.NewReplenishmentUseCase(f.repos.Products).GenerateReplenishmentList(context.Background(), company)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "7", list[0].ProductID)
	assert.Equal(t, 15, list[0].Deficit)
	assert.Equal(t, 55, list[0].SuggestedQuantity)
	assert.Equal(t, "3", list[1].ProductID)
	assert.Equal(t, 28, list[1].SuggestedQuantity)
	assert.Equal(t, "2", list[2].ProductID)
}

type stubExporter struct {
	company string
	rows    int
}

func (s *stubExporter) ExportProducts(_ context.Context, companyName string, products []dto.ProductResponse) ([]byte, error) {
	s.company, s.rows = companyName, len(products)
	return []byte("xlsx"), nil
}

func TestExport_UsaNombreDeEmpresaYFiltro(t *testing.T) {
	f := newFixture(t)
	exp := &stubExporter{}
	uc := inventory.NewExportUseCase(f.products, f.repos.Companies, exp)

	data, name, err := uc.Export(context.Background(), company, dto.ProductFilter{Category: "camisetas"})
	require.NoError(t, err)
	assert.Equal(t, "xlsx", string(data))
	assert.Equal(t, "inventario-1.xlsx", name)
	assert.Equal(t, "Global Textiles Ltd", exp.company)
	assert.Equal(t, 1, exp.rows)
}
