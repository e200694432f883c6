package supply_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/application/inventory"
	"github.com/jhoicas/Operaciones-api/internal/application/notification"
	"github.com/jhoicas/Operaciones-api/internal/application/supply"
	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/infrastructure/memory"
)

const company = "1"

// stubAnalyzer IA simulada. onQuality permite intervenir durante la llamada.
type stubAnalyzer struct {
	quality    entity.QualityResult
	standards  []string
	onQuality  func()
	invoice    dto.InvoiceDataDTO
	forecast   []dto.DemandForecastDTO
	forecasted int
}

func (s *stubAnalyzer) AnalyzeQuality(_ context.Context, _ string, standards string) entity.QualityResult {
	s.standards = append(s.standards, standards)
	if s.onQuality != nil {
		hook := s.onQuality
		s.onQuality = nil
		hook()
	}
	return s.quality
}

func (s *stubAnalyzer) ExtractInvoice(context.Context, string) dto.InvoiceDataDTO { return s.invoice }

func (s *stubAnalyzer) ForecastDemand(_ context.Context, products []*entity.Product) []dto.DemandForecastDTO {
	s.forecasted = len(products)
	return s.forecast
}

type fixture struct {
	uc    *supply.UseCase
	ai    *stubAnalyzer
	repos memory.Repos
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := memory.NewSeededStore(context.Background())
	require.NoError(t, err)
	repos := store.Repos()
	ai := &stubAnalyzer{quality: entity.QualityResult{Status: entity.QualityPass, Reason: "Cumple"}}
	notifier := notification.NewUseCase(repos.Notifications, nil, nil, nil)
	uc := supply.NewUseCase(repos.SupplyOrders, repos.Products, memory.NewTxRunner(store), inventory.NewLedger(), notifier, ai, nil)
	return &fixture{uc: uc, ai: ai, repos: repos}
}

func (f *fixture) stock(t *testing.T, productID string) int {
	t.Helper()
	p, err := f.repos.Products.GetByID(context.Background(), company, productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func (f *fixture) notifications(t *testing.T) []*entity.Notification {
	t.Helper()
	list, err := f.repos.Notifications.ListByCompany(context.Background(), company, false)
	require.NoError(t, err)
	return list
}

func TestUpdateStatus_RecibirAcreditaUnaSolaVez(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.Equal(t, 12, f.stock(t, "3"))

	o, err := f.uc.UpdateStatus(ctx, company, "SUP-001", entity.SupplyStatusReceived)
	require.NoError(t, err)
	assert.Equal(t, entity.SupplyStatusReceived, o.Status)
	assert.Equal(t, 212, f.stock(t, "3"))

	n := f.notifications(t)[0]
	assert.Equal(t, "Mercancía Recibida", n.Title)
	assert.Equal(t, "Orden #SUP-001 completada. 200 unidades ingresadas a inventario.", n.Message)
	assert.Equal(t, entity.NotificationSuccess, n.Type)

	_, err = f.uc.UpdateStatus(ctx, company, "SUP-001", entity.SupplyStatusReceived)
	require.NoError(t, err)
	assert.Equal(t, 212, f.stock(t, "3"))
	assert.Equal(t, "Actualización de Estado", f.notifications(t)[0].Title)
}

func TestUpdateStatus_ProduccionFinalizada(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.UpdateStatus(context.Background(), company, "SUP-002", entity.SupplyStatusFinished)
	require.NoError(t, err)
	assert.Equal(t, 545, f.stock(t, "2"))
	assert.Equal(t, "Producción Finalizada", f.notifications(t)[0].Title)
}

func TestUpdateStatus_OrdenYaRecibidaNoAcredita(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	before := f.stock(t, "5")

	_, err := f.uc.UpdateStatus(ctx, company, "SUP-003", entity.SupplyStatusFinished)
	require.NoError(t, err)
	assert.Equal(t, before, f.stock(t, "5"))

	// salir del estado completo y volver sí acredita de nuevo
	_, err = f.uc.UpdateStatus(ctx, company, "SUP-003", entity.SupplyStatusInTransit)
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(ctx, company, "SUP-003", entity.SupplyStatusReceived)
	require.NoError(t, err)
	assert.Equal(t, before+1000, f.stock(t, "5"))
}

func TestUpdateStatus_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.UpdateStatus(ctx, company, "SUP-001", "LOST")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = f.uc.UpdateStatus(ctx, company, "SUP-999", entity.SupplyStatusReceived)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_ProduccionConDiseno(t *testing.T) {
	f := newFixture(t)
	o, err := f.uc.Create(context.Background(), company, dto.CreateSupplyOrderRequest{
		Type:        entity.SupplyProductionOrder,
		ProductID:   "1",
		Quantity:    300,
		CostPerUnit: decimal.RequireFromString("5.50"),
		Attachments: []dto.SupplyAttachmentInput{{URL: "data:image/png;base64,AA==", Type: entity.SupplyAttachmentDesign}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SupplyStatusInProduction, o.Status)
	assert.Equal(t, "Internal Factory", o.SupplierOrFacility)
	assert.Equal(t, "1650.00", o.TotalCost.StringFixed(2))
	assert.Regexp(t, `^SUP-[0-9A-F]{8}$`, o.ID)

	n := f.notifications(t)[0]
	assert.Equal(t, "Nueva Orden de Manufactura", n.Title)
	assert.Equal(t, "Orden #"+o.ID+" creada para 300u de Camiseta Algodón Premium. Se adjuntaron especificaciones de diseño.", n.Message)
	assert.Equal(t, []string{notification.RoleProduction, notification.RolePurchasing, notification.RoleCEO}, n.TargetRoles)
	assert.Empty(t, f.ai.standards)
}

func TestCreate_CompraYValidaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.uc.Create(ctx, company, dto.CreateSupplyOrderRequest{
		Type:               entity.SupplyPurchaseOrder,
		ProductID:          "4",
		Quantity:           10,
		CostPerUnit:        decimal.NewFromInt(25),
		ShippingCost:       decimal.NewFromInt(40),
		InsuranceCost:      decimal.NewFromInt(10),
		SupplierOrFacility: "AudioGlobal CN",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SupplyStatusOrdered, o.Status)
	assert.Equal(t, "300", o.TotalCost.String())
	n := f.notifications(t)[0]
	assert.Equal(t, "Nueva Orden de Compra", n.Title)
	assert.Equal(t, "Orden #"+o.ID+" al proveedor AudioGlobal CN.", n.Message)

	_, err = f.uc.Create(ctx, company, dto.CreateSupplyOrderRequest{Type: entity.SupplyPurchaseOrder, ProductID: "404", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.Create(ctx, company, dto.CreateSupplyOrderRequest{Type: entity.SupplyPurchaseOrder, ProductID: "4", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.Create(ctx, company, dto.CreateSupplyOrderRequest{Type: "GIFT", ProductID: "4", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddAttachment_AnalisisAutomaticoAlertaDefecto(t *testing.T) {
	f := newFixture(t)
	f.ai.quality = entity.QualityResult{Status: entity.QualityFail, Reason: "Costura abierta"}

	att, err := f.uc.AddAttachment(context.Background(), company, "SUP-002", dto.SupplyAttachmentInput{URL: "data:image/jpeg;base64,AA==", Type: entity.SupplyAttachmentProductionProgress})
	require.NoError(t, err)

	require.NotNil(t, att.AIAnalysis)
	assert.Equal(t, entity.QualityFail, att.AIAnalysis.Status)
	require.Len(t, f.ai.standards, 1)
	assert.Contains(t, f.ai.standards[0], "Remaches metálicos")

	n := f.notifications(t)[0]
	assert.Equal(t, "Alerta de Control de Calidad", n.Title)
	assert.Equal(t, entity.NotificationAlert, n.Type)
	assert.Equal(t, `La IA detectó un posible defecto en la orden #SUP-002: "Costura abierta". Se requiere inspección humana inmediata.`, n.Message)
}

func TestAddAttachment_SinAnalisisParaDisenoYFactura(t *testing.T) {
	f := newFixture(t)
	att, err := f.uc.AddAttachment(context.Background(), company, "SUP-001", dto.SupplyAttachmentInput{URL: "data:image/png;base64,AA==", Type: entity.SupplyAttachmentInvoice, Note: "Factura"})
	require.NoError(t, err)
	assert.Nil(t, att.AIAnalysis)
	assert.Empty(t, f.ai.standards)
	assert.Empty(t, f.notifications(t))

	_, err = f.uc.AddAttachment(context.Background(), company, "SUP-001", dto.SupplyAttachmentInput{URL: "x", Type: "VIDEO"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAnalyze_ManualNoNotifica(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	att, err := f.uc.AddAttachment(ctx, company, "SUP-001", dto.SupplyAttachmentInput{URL: "AA==", Type: entity.SupplyAttachmentQualityAlert})
	require.NoError(t, err)
	before := len(f.notifications(t))

	f.ai.quality = entity.QualityResult{Status: entity.QualityWarning, Reason: "Imagen borrosa"}
	again, err := f.uc.Analyze(ctx, company, "SUP-001", att.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QualityWarning, again.AIAnalysis.Status)
	assert.Equal(t, int64(2), again.AnalysisEpoch)
	assert.Len(t, f.notifications(t), before)

	_, err = f.uc.Analyze(ctx, company, "SUP-001", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnalyze_RespuestaViejaNoPisaLaNueva(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	att, err := f.uc.AddAttachment(ctx, company, "SUP-001", dto.SupplyAttachmentInput{URL: "AA==", Type: entity.SupplyAttachmentInvoice})
	require.NoError(t, err)

	// mientras la primera solicitud espera a la IA llega una segunda que responde antes
	f.ai.quality = entity.QualityResult{Status: entity.QualityFail, Reason: "viejo"}
	f.ai.onQuality = func() {
		f.ai.quality = entity.QualityResult{Status: entity.QualityPass, Reason: "nuevo"}
		_, err := f.uc.Analyze(ctx, company, "SUP-001", att.ID)
		require.NoError(t, err)
		f.ai.quality = entity.QualityResult{Status: entity.QualityFail, Reason: "viejo"}
	}

	got, err := f.uc.Analyze(ctx, company, "SUP-001", att.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AIAnalysis)
	assert.Equal(t, "nuevo", got.AIAnalysis.Reason)
	assert.Equal(t, int64(2), got.AnalysisEpoch)

	stored, err := f.uc.Get(ctx, company, "SUP-001")
	require.NoError(t, err)
	require.Len(t, stored.Attachments, 1)
	assert.Equal(t, "nuevo", stored.Attachments[0].AIAnalysis.Reason)
}

func TestSmartScan_SugerenciasDeCosto(t *testing.T) {
	f := newFixture(t)
	f.ai.invoice = dto.InvoiceDataDTO{SupplierName: "TechShenzhen Ltd", TotalAmount: decimal.NewFromInt(9500), Date: "2024-03-25"}

	res, err := f.uc.SmartScan(context.Background(), dto.SmartScanRequest{Image: "AA==", Quantity: 200})
	require.NoError(t, err)
	assert.Equal(t, "TechShenzhen Ltd", res.SuggestedSupplier)
	assert.Equal(t, "47.5", res.SuggestedCostPerUnit.String())
	assert.Equal(t, "2024-03-25", res.SuggestedETA)

	res, err = f.uc.SmartScan(context.Background(), dto.SmartScanRequest{Image: "AA=="})
	require.NoError(t, err)
	assert.Equal(t, "9500", res.SuggestedCostPerUnit.String())
}

func TestForecast_UsaProductosDeLaEmpresa(t *testing.T) {
	f := newFixture(t)
	f.ai.forecast = []dto.DemandForecastDTO{{ProductID: "3", PredictedDemand: 50}}

	got, err := f.uc.Forecast(context.Background(), company)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 8, f.ai.forecasted)
}

func TestList_FiltraPorTipoYEstado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	purchases, err := f.uc.List(ctx, company, dto.SupplyFilter{Type: entity.SupplyPurchaseOrder})
	require.NoError(t, err)
	assert.Len(t, purchases, 2)

	inTransit, err := f.uc.List(ctx, company, dto.SupplyFilter{Status: entity.SupplyStatusInTransit})
	require.NoError(t, err)
	require.Len(t, inTransit, 1)
	assert.Equal(t, "SUP-001", inTransit[0].ID)
}
