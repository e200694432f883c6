package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/application/ports"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

// stubLLM devuelve una respuesta fija y guarda el último prompt.
type stubLLM struct {
	text   string
	err    error
	last   ports.Prompt
	called int
}

func (s *stubLLM) Generate(_ context.Context, p ports.Prompt) (string, error) {
	s.called++
	s.last = p
	return s.text, s.err
}

func newAI(llm ports.LLMService) *AIUseCase {
	return NewAIUseCase(llm, nil, nil, nil, time.Second)
}

func TestAnalyzeQuality_SinCredencialesDevuelveWarning(t *testing.T) {
	uc := newAI(&stubLLM{err: ports.ErrNoAPIKey})

	res := uc.AnalyzeQuality(context.Background(), "data:image/png;base64,AAAA", "")

	assert.Equal(t, entity.QualityWarning, res.Status)
	assert.Equal(t, QualityNoKeyReason, res.Reason)
}

func TestAnalyzeQuality_SinAdaptadorDevuelveWarning(t *testing.T) {
	res := newAI(nil).AnalyzeQuality(context.Background(), "AAAA", "")
	assert.Equal(t, entity.QualityWarning, res.Status)
	assert.NotEmpty(t, res.Reason)
}

func TestAnalyzeQuality_ParseaRespuestaConTextoAlrededor(t *testing.T) {
	llm := &stubLLM{text: "```json\n{\"status\":\"fail\",\"reason\":\"Mancha en la manga\"}\n```"}
	uc := newAI(llm)

	res := uc.AnalyzeQuality(context.Background(), "data:image/png;base64,QUJD", "Sin manchas")

	assert.Equal(t, entity.QualityFail, res.Status)
	assert.Equal(t, "Mancha en la manga", res.Reason)
	assert.Equal(t, "image/png", llm.last.MIME)
	assert.Equal(t, "QUJD", llm.last.ImageBase64)
	assert.Contains(t, llm.last.Text, "Sin manchas")
}

func TestAnalyzeQuality_EstadoDesconocidoOErrorEsWarning(t *testing.T) {
	ctx := context.Background()

	res := newAI(&stubLLM{text: `{"status":"MAYBE","reason":"x"}`}).AnalyzeQuality(ctx, "AAAA", "")
	assert.Equal(t, entity.QualityResult{Status: entity.QualityWarning, Reason: QualityErrorReason}, res)

	res = newAI(&stubLLM{err: errors.New("timeout")}).AnalyzeQuality(ctx, "AAAA", "")
	assert.Equal(t, entity.QualityResult{Status: entity.QualityWarning, Reason: QualityErrorReason}, res)
}

func TestAnalyzeQuality_UsaEstandarPorDefecto(t *testing.T) {
	llm := &stubLLM{text: `{"status":"PASS","reason":"ok"}`}
	newAI(llm).AnalyzeQuality(context.Background(), "AAAA", "  ")
	assert.Contains(t, llm.last.Text, defaultQualityContext)
	assert.Equal(t, "image/jpeg", llm.last.MIME)
}

func TestExtractInvoice(t *testing.T) {
	ctx := context.Background()
	llm := &stubLLM{text: `Aquí está: {"supplierName":"TechShenzhen Ltd","totalAmount":9500.5,"date":"2024-03-25","itemsSummary":"200 relojes"}`}

	got := newAI(llm).ExtractInvoice(ctx, "AAAA")
	assert.Equal(t, "TechShenzhen Ltd", got.SupplierName)
	assert.True(t, decimal.RequireFromString("9500.5").Equal(got.TotalAmount))
	assert.Equal(t, "2024-03-25", got.Date)

	empty := newAI(&stubLLM{text: "no hay factura"}).ExtractInvoice(ctx, "AAAA")
	assert.Equal(t, dto.InvoiceDataDTO{}, empty)

	nulls := newAI(&stubLLM{text: `{"supplierName":null,"totalAmount":null}`}).ExtractInvoice(ctx, "AAAA")
	assert.Empty(t, nulls.SupplierName)
	assert.True(t, nulls.TotalAmount.IsZero())
}

func TestForecastDemand_DescartaProductosDesconocidos(t *testing.T) {
	products := []*entity.Product{
		{ID: "1", Name: "Camiseta", Stock: 5, LowStockThreshold: 10},
		{ID: "2", Name: "Jeans", Stock: 50, LowStockThreshold: 10},
	}
	llm := &stubLLM{text: `[{"productId":"1","productName":"Camiseta","predictedDemand":40,"suggestedReorder":35.6,"reasoning":"stock bajo"},{"productId":"99","predictedDemand":1}]`}

	got := newAI(llm).ForecastDemand(context.Background(), products)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ProductID)
	assert.Equal(t, 40, got[0].PredictedDemand)
	assert.Equal(t, 36, got[0].SuggestedReorder)
	assert.Contains(t, llm.last.Text, `"currentStock":5`)

	none := newAI(&stubLLM{err: errors.New("boom")}).ForecastDemand(context.Background(), products)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestHistoricalTrendYCobranza_ValoresPorDefecto(t *testing.T) {
	ctx := context.Background()
	noKey := newAI(&stubLLM{err: ports.ErrNoAPIKey})
	failing := newAI(&stubLLM{err: errors.New("500")})

	assert.Equal(t, TrendNoKeyMessage, noKey.HistoricalTrend(ctx, nil))
	assert.Equal(t, TrendErrorMessage, failing.HistoricalTrend(ctx, nil))
	assert.Equal(t, CollectionsFallback, failing.CollectionsMessage(ctx, "Alice", decimal.NewFromInt(10), 3, "INV-001-0"))
}

func TestCollectionsMessage_AvisoPrevioVsVencido(t *testing.T) {
	llm := &stubLLM{text: " Hola Alice "}
	uc := newAI(llm)

	msg := uc.CollectionsMessage(context.Background(), "Alice", decimal.RequireFromString("1949.4"), -3, "INV-001-0")
	assert.Equal(t, "Hola Alice", msg)
	assert.Contains(t, llm.last.Text, "friendly reminder")
	assert.Contains(t, llm.last.Text, "$1949.40")

	uc.CollectionsMessage(context.Background(), "Alice", decimal.NewFromInt(10), 12, "INV-001-0")
	assert.Contains(t, llm.last.Text, "12 days OVERDUE")
}

func TestMarketingCopy_FallaDevuelveVacio(t *testing.T) {
	p := &entity.Product{Name: "Camiseta", Category: "Camisetas", Features: []string{"Transpirable"}}
	llm := &stubLLM{text: "## Diapositiva 1"}

	assert.Equal(t, "## Diapositiva 1", newAI(llm).MarketingCopy(context.Background(), p, dto.CopySalesPitch))
	assert.Contains(t, llm.last.Text, "Transpirable")
	assert.Empty(t, newAI(&stubLLM{err: ports.ErrNoAPIKey}).MarketingCopy(context.Background(), p, dto.CopyEmailDraft))
}
