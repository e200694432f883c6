package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/bootstrap"
	"github.com/jhoicas/Operaciones-api/internal/infrastructure/ai"
	apphttp "github.com/jhoicas/Operaciones-api/internal/interfaces/http"
	"github.com/jhoicas/Operaciones-api/pkg/config"
	pkgjwt "github.com/jhoicas/Operaciones-api/pkg/jwt"
)

// newTestAPI levanta el router completo sobre el store en memoria sembrado. La IA no tiene credenciales.
func newTestAPI(t *testing.T) *fiber.App {
	t.Helper()
	stores, err := bootstrap.MemoryStores(context.Background())
	require.NoError(t, err)
	cfg := &config.Config{AI: config.AIConfig{TimeoutSeconds: 2}, Finance: config.FinanceConfig{DefaultPaymentTerms: 30}}
	c := bootstrap.Build(cfg, stores, ai.NewGeminiService("", "gemini-2.5-flash"), nil, nil)

	app := fiber.New()
	apphttp.Router(app, c.RouterDeps(testJWTSecret))
	return app
}

func bearer(t *testing.T, companyID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, companyID, "CEO", testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func call(t *testing.T, app *fiber.App, method, path, auth string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func productStock(t *testing.T, app *fiber.App, auth, id string) int {
	t.Helper()
	resp, body := call(t, app, http.MethodGet, "/api/products/"+id, auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var p dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &p))
	return p.Stock
}

func TestRouter_SinTokenRetorna401(t *testing.T) {
	app := newTestAPI(t)
	resp, _ := call(t, app, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_ModuloInactivoRetorna403(t *testing.T) {
	app := newTestAPI(t)
	// La empresa 1 no tiene AI_STUDIO.
	resp, body := call(t, app, http.MethodPost, "/api/ai/marketing-copy", bearer(t, "1"),
		dto.MarketingCopyRequest{ProductID: "1", Type: dto.CopySalesPitch})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(body), "MODULE_DISABLED")
}

func TestRouter_ProductoInexistenteRetorna404(t *testing.T) {
	app := newTestAPI(t)
	resp, body := call(t, app, http.MethodGet, "/api/products/no-existe", bearer(t, "1"), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "NOT_FOUND")
}

func TestRouter_FlujoDeDespachoVerificado(t *testing.T) {
	app := newTestAPI(t)
	auth := bearer(t, "1")
	before := productStock(t, app, auth, "1")

	resp, body := call(t, app, http.MethodPost, "/api/orders", auth, dto.CreateOrderRequest{
		CustomerID: "1",
		Items:      []dto.OrderItemRequest{{ProductID: "1", Quantity: 2, SelectedSize: "M"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var order dto.OrderResponse
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, "Pendiente", order.Status)
	base := "/api/orders/" + order.ID

	// Pasar a Enviado abre la verificación sin cambiar el estado.
	resp, body = call(t, app, http.MethodPut, base+"/status", auth, dto.StatusChangeRequest{Status: "Enviado"})
	require.Equal(t, http.StatusAccepted, resp.StatusCode, string(body))
	var change dto.StatusChangeResponse
	require.NoError(t, json.Unmarshal(body, &change))
	assert.True(t, change.VerificationRequired)
	assert.Equal(t, before, productStock(t, app, auth, "1"))

	scan := func(payload string) (*http.Response, []byte) {
		return call(t, app, http.MethodPost, base+"/verification/scan", auth, dto.ScanRequest{Payload: payload})
	}

	resp, body = scan(`{"id":"3"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(body), "FOREIGN_PRODUCT")

	resp, body = scan("no-es-json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "INVALID_SCAN")

	resp, _ = scan(`{"id":"1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body = scan(`{"id":"1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sr dto.ScanResponse
	require.NoError(t, json.Unmarshal(body, &sr))
	assert.Equal(t, 100, sr.Verification.Percent)
	assert.True(t, sr.Verification.Complete)

	resp, body = scan(`{"id":"1"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "ITEM_COMPLETE")

	resp, body = call(t, app, http.MethodPost, base+"/verification/confirm", auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, "Enviado", order.Status)
	assert.Equal(t, before-2, productStock(t, app, auth, "1"))

	// Sin sesión activa ya no se puede confirmar.
	resp, _ = call(t, app, http.MethodPost, base+"/verification/confirm", auth, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = call(t, app, http.MethodGet, "/api/notifications", auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var inbox dto.NotificationListResponse
	require.NoError(t, json.Unmarshal(body, &inbox))
	require.NotEmpty(t, inbox.Items)
	assert.Equal(t, "Pedido Enviado", inbox.Items[0].Title)
}

func TestRouter_RecepcionAcreditaUnaSolaVez(t *testing.T) {
	app := newTestAPI(t)
	auth := bearer(t, "1")
	before := productStock(t, app, auth, "3")

	for i := 0; i < 2; i++ {
		resp, body := call(t, app, http.MethodPut, "/api/supply-orders/SUP-001/status", auth, dto.SupplyStatusRequest{Status: "RECEIVED"})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	}
	assert.Equal(t, before+200, productStock(t, app, auth, "3"))

	resp, body := call(t, app, http.MethodPut, "/api/supply-orders/SUP-001/status", auth, dto.SupplyStatusRequest{Status: "PERDIDA"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "VALIDATION")
}

func TestRouter_AislamientoEntreEmpresas(t *testing.T) {
	app := newTestAPI(t)
	resp, body := call(t, app, http.MethodPost, "/api/orders", bearer(t, "1"), dto.CreateOrderRequest{
		CustomerID: "1",
		Items:      []dto.OrderItemRequest{{ProductID: "1", Quantity: 1}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var order dto.OrderResponse
	require.NoError(t, json.Unmarshal(body, &order))

	resp, _ = call(t, app, http.MethodGet, "/api/orders/"+order.ID, bearer(t, "2"), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_DocumentosDeFactura(t *testing.T) {
	app := newTestAPI(t)
	auth := bearer(t, "1")

	req := httptest.NewRequest(http.MethodGet, "/api/finance/invoices/ORD-2024-001/pdf", nil)
	req.Header.Set("Authorization", auth)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "factura_")
	data, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	xmlResp, body := call(t, app, http.MethodGet, "/api/finance/invoices/ORD-2024-001/xml", auth, nil)
	require.Equal(t, http.StatusOK, xmlResp.StatusCode)
	assert.True(t, strings.Contains(string(body), "DigestValue"))

	missing, _ := call(t, app, http.MethodGet, "/api/finance/invoices/ORD-9999/pdf", auth, nil)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestRouter_ExportacionExcel(t *testing.T) {
	app := newTestAPI(t)
	resp, body := call(t, app, http.MethodGet, "/api/inventory/export", bearer(t, "1"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	// XLSX es un ZIP.
	assert.True(t, bytes.HasPrefix(body, []byte("PK")))
}

func TestRouter_ControlDeCalidadSinCredenciales(t *testing.T) {
	app := newTestAPI(t)
	// La empresa 2 tiene AI_STUDIO.
	resp, body := call(t, app, http.MethodPost, "/api/ai/quality-check", bearer(t, "2"),
		dto.QualityCheckRequest{Image: "data:image/png;base64,iVBORw0KGgo=", Standards: "Costuras rectas"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var q dto.QualityResultDTO
	require.NoError(t, json.Unmarshal(body, &q))
	assert.Equal(t, "WARNING", q.Status)
	assert.Equal(t, "API Key missing.", q.Reason)
}

func TestRouter_AdministracionDeEmpresasSoloAdmin(t *testing.T) {
	app := newTestAPI(t)
	resp, _ := call(t, app, http.MethodGet, "/api/companies", bearer(t, "1"), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "1", apphttp.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)
	resp, body := call(t, app, http.MethodGet, "/api/companies", "Bearer "+tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ListResponse[dto.CompanyResponse]
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, 3, list.Total)
}

func TestRouter_ModulosSoloLosCambiaAdmin(t *testing.T) {
	app := newTestAPI(t)
	ceo := bearer(t, "1")
	all := dto.UpdateModulesRequest{ActiveModules: []string{
		"INVENTORY", "ORDERS", "SUPPLY_CHAIN", "CRM", "AI_STUDIO", "FINANCE", "HISTORY", "CHANNELS",
	}}
	copyReq := dto.MarketingCopyRequest{ProductID: "1", Type: dto.CopySalesPitch}

	resp, body := call(t, app, http.MethodPut, "/api/company/modules", ceo, all)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(body), "FORBIDDEN")

	resp, _ = call(t, app, http.MethodPost, "/api/ai/marketing-copy", ceo, copyReq)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "AI_STUDIO sigue inactivo")

	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "1", apphttp.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)
	resp, body = call(t, app, http.MethodPut, "/api/company/modules", "Bearer "+tok, all)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, _ = call(t, app, http.MethodPost, "/api/ai/marketing-copy", ceo, copyReq)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
