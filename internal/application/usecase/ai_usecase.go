package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/application/ports"
	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
	"github.com/jhoicas/Operaciones-api/pkg/lenientjson"
	"github.com/jhoicas/Operaciones-api/pkg/logger"
)

// Respuestas por defecto cuando la IA no está disponible.
const (
	QualityNoKeyReason    = "API Key missing."
	QualityErrorReason    = "Error al analizar la imagen."
	TrendNoKeyMessage     = "Por favor configure su API Key para ver análisis de tendencias."
	TrendErrorMessage     = "Error al analizar los datos históricos."
	CollectionsFallback   = "Estimado cliente, le recordamos su pago pendiente."
	defaultQualityContext = "Standard commercial quality criteria. No damage, no stains, proper packaging."
)

// AIUseCase frontera con el modelo generativo. Ninguna función devuelve error: ante cualquier
// falla (sin credenciales, timeout, respuesta inválida) se devuelve un valor por defecto seguro.
// Cada llamada al LLM lleva su propio context.WithTimeout para no bloquear goroutines del servidor.
type AIUseCase struct {
	llm      ports.LLMService
	products repository.ProductRepository
	metrics  ports.MetricsRecorder
	log      *logger.Logger
	timeout  time.Duration
}

// NewAIUseCase construye el caso de uso inyectando el puerto LLMService.
func NewAIUseCase(llm ports.LLMService, products repository.ProductRepository, metrics ports.MetricsRecorder, log *logger.Logger, timeout time.Duration) *AIUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AIUseCase{llm: llm, products: products, metrics: metrics, log: log, timeout: timeout}
}

func (uc *AIUseCase) generate(ctx context.Context, function string, p ports.Prompt) (string, error) {
	if uc.llm == nil {
		return "", ports.ErrNoAPIKey
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	text, err := uc.llm.Generate(ctx, p)
	uc.metrics.AICall(function, err == nil)
	if err != nil && !errors.Is(err, ports.ErrNoAPIKey) {
		uc.log.Warn().Err(err).Str("function", function).Msg("llamada IA fallida")
	}
	return text, err
}

// splitDataURL separa "data:image/png;base64,XXXX" en MIME y datos. Sin prefijo asume JPEG.
func splitDataURL(image string) (mime, data string) {
	mime = "image/jpeg"
	if !strings.HasPrefix(image, "data:") {
		return mime, image
	}
	head, body, ok := strings.Cut(image, ",")
	if !ok {
		return mime, image
	}
	if m := strings.TrimPrefix(strings.Split(head, ";")[0], "data:"); m != "" {
		mime = m
	}
	return mime, body
}

// ── (a) Contenido comercial ─────────────────────────────────────────────────

// MarketingCopy genera un guion de ventas o un correo en frío. "" si falla.
func (uc *AIUseCase) MarketingCopy(ctx context.Context, p *entity.Product, kind string) string {
	var prompt string
	if kind == dto.CopySalesPitch {
		prompt = fmt.Sprintf(`Crea un esquema de presentación de ventas estructurado para un producto mayorista.
Producto: %s
Características: %s
Consideración de costo para el revendedor: Potencial de alto margen.

Formato de salida: Markdown en Español. Incluye 3 diapositivas: 1. Gancho/Problema, 2. Solución (Producto), 3. Valor Comercial (Rentabilidad).`,
			p.Name, strings.Join(p.Features, ", "))
	} else {
		prompt = fmt.Sprintf(`Escribe un correo electrónico profesional y persuasivo de venta en frío para un minorista presentando este producto.
Producto: %s
Categoría: %s
Punto de venta clave: Grandes márgenes de ganancia.

Formato de salida: Texto plano en Español, listo para copiar.`, p.Name, p.Category)
	}
	text, err := uc.generate(ctx, "marketing_copy", ports.Prompt{Text: prompt})
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// GenerateMarketingCopy versión HTTP: resuelve el producto de la empresa.
func (uc *AIUseCase) GenerateMarketingCopy(ctx context.Context, companyID string, in dto.MarketingCopyRequest) (*dto.MarketingCopyResponse, error) {
	if in.Type != dto.CopySalesPitch && in.Type != dto.CopyEmailDraft {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.products.GetByID(ctx, companyID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.MarketingCopyResponse{ProductID: p.ID, Type: in.Type, Content: uc.MarketingCopy(ctx, p, in.Type)}, nil
}

// ── (b) Control de calidad por imagen ───────────────────────────────────────

// AnalyzeQuality compara la foto con los estándares del producto.
// Sin credenciales: {WARNING, "API Key missing."}; cualquier otra falla: {WARNING, "Error al analizar la imagen."}.
func (uc *AIUseCase) AnalyzeQuality(ctx context.Context, image, standards string) entity.QualityResult {
	if strings.TrimSpace(standards) == "" {
		standards = defaultQualityContext
	}
	mime, data := splitDataURL(image)
	prompt := fmt.Sprintf(`You are a strict Quality Control Inspector.
Specific Quality Standards for this product (Training Context): "%s".

Analyze this image of the product.
Compare it against the standards above.
Look for defects like: damage, stains, errors, poor finish, or packaging issues.

Respond with a JSON object ONLY, no markdown formatting:
{
    "status": "PASS" (if meets standards), "FAIL" (if defects found), or "WARNING" (if unclear/minor issue),
    "reason": "A short description in Spanish of what you see and if it complies (max 20 words)."
}`, standards)

	text, err := uc.generate(ctx, "quality_check", ports.Prompt{Text: prompt, ImageBase64: data, MIME: mime, JSON: true})
	if errors.Is(err, ports.ErrNoAPIKey) {
		uc.metrics.QualityAnalyzed(entity.QualityWarning)
		return entity.QualityResult{Status: entity.QualityWarning, Reason: QualityNoKeyReason}
	}
	result := entity.QualityResult{Status: entity.QualityWarning, Reason: QualityErrorReason}
	if err == nil {
		var parsed struct {
			Status string `json:"status"`
			Reason string `json:"reason"`
		}
		if lenientjson.Object(text, &parsed) {
			status := strings.ToUpper(strings.TrimSpace(parsed.Status))
			switch status {
			case entity.QualityPass, entity.QualityFail, entity.QualityWarning:
				result = entity.QualityResult{Status: status, Reason: strings.TrimSpace(parsed.Reason)}
			}
		}
	}
	uc.metrics.QualityAnalyzed(result.Status)
	return result
}

// ── (c) Lectura de facturas ─────────────────────────────────────────────────

// ExtractInvoice extrae proveedor, total, fecha y resumen de la foto de una factura. Vacío si falla.
func (uc *AIUseCase) ExtractInvoice(ctx context.Context, image string) dto.InvoiceDataDTO {
	mime, data := splitDataURL(image)
	prompt := `Analyze this invoice image. Extract the following details into a JSON object.
If a field is not found, leave it as null or 0.

Response JSON format:
{
    "supplierName": "string",
    "totalAmount": number,
    "date": "YYYY-MM-DD",
    "itemsSummary": "string (short summary of what is being bought)"
}`
	text, err := uc.generate(ctx, "invoice_scan", ports.Prompt{Text: prompt, ImageBase64: data, MIME: mime, JSON: true})
	if err != nil {
		return dto.InvoiceDataDTO{}
	}
	var parsed struct {
		SupplierName *string     `json:"supplierName"`
		TotalAmount  json.Number `json:"totalAmount"`
		Date         *string     `json:"date"`
		ItemsSummary *string     `json:"itemsSummary"`
	}
	if !lenientjson.Object(text, &parsed) {
		return dto.InvoiceDataDTO{}
	}
	var out dto.InvoiceDataDTO
	if parsed.SupplierName != nil {
		out.SupplierName = strings.TrimSpace(*parsed.SupplierName)
	}
	if parsed.Date != nil {
		out.Date = strings.TrimSpace(*parsed.Date)
	}
	if parsed.ItemsSummary != nil {
		out.ItemsSummary = strings.TrimSpace(*parsed.ItemsSummary)
	}
	if parsed.TotalAmount != "" {
		if amount, err := decimal.NewFromString(parsed.TotalAmount.String()); err == nil && !amount.IsNegative() {
			out.TotalAmount = amount
		}
	}
	return out
}

// ── (d) Pronóstico de demanda ───────────────────────────────────────────────

// ForecastDemand productos en riesgo de quiebre el próximo mes. [] si falla.
func (uc *AIUseCase) ForecastDemand(ctx context.Context, products []*entity.Product) []dto.DemandForecastDTO {
	out := []dto.DemandForecastDTO{}
	if len(products) == 0 {
		return out
	}
	type stockContext struct {
		ID                string `json:"id"`
		Name              string `json:"name"`
		CurrentStock      int    `json:"currentStock"`
		LowStockThreshold int    `json:"lowStockThreshold"`
	}
	names := make(map[string]string, len(products))
	ctxRows := make([]stockContext, 0, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
		ctxRows = append(ctxRows, stockContext{ID: p.ID, Name: p.Name, CurrentStock: p.Stock, LowStockThreshold: p.LowStockThreshold})
	}
	inventoryJSON, _ := json.Marshal(ctxRows)

	prompt := fmt.Sprintf(`Act as a Supply Chain Demand Planner.
Here is the current inventory status: %s.
Here is recent sales data (mock context): Generally high demand for items with low stock. Seasonal trends apply.

Constraint: Respond in Spanish. Keep the reasoning very brief.

Predict which items are at risk of stockout next month.
Return a JSON array of objects. ONLY return items that need reordering.

Format:
[
    {
        "productId": "id",
        "productName": "name",
        "predictedDemand": number,
        "suggestedReorder": number,
        "reasoning": "short spanish explanation"
    }
]`, inventoryJSON)

	text, err := uc.generate(ctx, "demand_forecast", ports.Prompt{Text: prompt, JSON: true})
	if err != nil {
		return out
	}
	var parsed []struct {
		ProductID        string  `json:"productId"`
		ProductName      string  `json:"productName"`
		PredictedDemand  float64 `json:"predictedDemand"`
		SuggestedReorder float64 `json:"suggestedReorder"`
		Reasoning        string  `json:"reasoning"`
	}
	if !lenientjson.Array(text, &parsed) {
		return out
	}
	for _, f := range parsed {
		name, known := names[f.ProductID]
		if !known {
			continue
		}
		if f.ProductName != "" {
			name = f.ProductName
		}
		out = append(out, dto.DemandForecastDTO{
			ProductID:        f.ProductID,
			ProductName:      name,
			PredictedDemand:  nonNegative(f.PredictedDemand),
			SuggestedReorder: nonNegative(f.SuggestedReorder),
			Reasoning:        f.Reasoning,
		})
	}
	return out
}

func nonNegative(v float64) int {
	if v < 0 {
		return 0
	}
	return int(v + 0.5)
}

// ── (e) Tendencia histórica ─────────────────────────────────────────────────

// HistoricalTrend análisis en Markdown de la serie de cinco años.
func (uc *AIUseCase) HistoricalTrend(ctx context.Context, points []dto.HistoricalPointDTO) string {
	series, _ := json.Marshal(points)
	prompt := fmt.Sprintf(`Act as a Senior Operations Manager.

Here is the 5-year historical data (Monthly resolution):
%s

Fields: units_sold, units_manufactured, units_imported.

Tasks:
1. Compare ACTUAL TREND vs HISTORICAL averages.
2. Predict FUTURE CONSUMPTION for the next season.
3. Recommend specific mix (Manufacture vs Import).

CRITICAL CONSTRAINTS:
- Response MUST be under 300 words.
- Response MUST be in Spanish.
- Use Markdown.
- Be direct and actionable. No fluff.`, series)

	text, err := uc.generate(ctx, "historical_trend", ports.Prompt{Text: prompt})
	switch {
	case errors.Is(err, ports.ErrNoAPIKey):
		return TrendNoKeyMessage
	case err != nil || strings.TrimSpace(text) == "":
		return TrendErrorMessage
	}
	return strings.TrimSpace(text)
}

// ── (f) Cobranza ────────────────────────────────────────────────────────────

// CollectionsMessage recordatorio de pago para email/WhatsApp. daysOverdue < 0 es un aviso previo al vencimiento.
func (uc *AIUseCase) CollectionsMessage(ctx context.Context, customerName string, amount decimal.Decimal, daysOverdue int, invoiceID string) string {
	situation := fmt.Sprintf("The payment is %d days OVERDUE. Request immediate payment. Be professional.", daysOverdue)
	if daysOverdue < 0 {
		situation = "The payment is due in upcoming days. This is a friendly reminder."
	}
	prompt := fmt.Sprintf(`Act as a polite but firm Accounts Receivable specialist.
Generate a short message (for Email/WhatsApp) to customer "%s".
Invoice ID: %s
Amount: $%s

Context:
%s

Format: Plain text in Spanish. Keep it under 50 words for WhatsApp friendly reading.`,
		customerName, invoiceID, amount.StringFixed(2), situation)

	text, err := uc.generate(ctx, "collections_message", ports.Prompt{Text: prompt})
	if err != nil || strings.TrimSpace(text) == "" {
		return CollectionsFallback
	}
	return strings.TrimSpace(text)
}
