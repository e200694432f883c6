package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Operaciones-api/internal/application/billing"
	"github.com/jhoicas/Operaciones-api/internal/application/dto"
)

// FinanceHandler facturas derivadas de pedidos, cobranza y documentos (módulo FINANCE).
type FinanceHandler struct {
	uc   *billing.UseCase
	docs *billing.DocumentsUseCase
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(uc *billing.UseCase, docs *billing.DocumentsUseCase) *FinanceHandler {
	return &FinanceHandler{uc: uc, docs: docs}
}

// Invoices godoc
// @Summary      Listar facturas
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "PAID | PENDING | OVERDUE"
// @Success      200  {object}  dto.ListResponse[dto.InvoiceResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/finance/invoices [get]
func (h *FinanceHandler) Invoices(c *fiber.Ctx) error {
	out, err := h.uc.Invoices(c.UserContext(), GetCompanyID(c), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// Invoice godoc
// @Summary      Detalle de factura
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        orderId  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/finance/invoices/{orderId} [get]
func (h *FinanceHandler) Invoice(c *fiber.Ctx) error {
	out, err := h.uc.Invoice(c.UserContext(), GetCompanyID(c), c.Params("orderId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen financiero
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FinanceSummaryResponse
// @Router       /api/finance/summary [get]
func (h *FinanceHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Collections godoc
// @Summary      Cartera vencida y próxima a vencer
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CollectionsResponse
// @Router       /api/finance/collections [get]
func (h *FinanceHandler) Collections(c *fiber.Ctx) error {
	out, err := h.uc.Collections(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reminder godoc
// @Summary      Generar recordatorio de pago
// @Description  Mensaje redactado por IA; incrementa el contador de recordatorios de la factura.
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        orderId  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.ReminderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/finance/invoices/{orderId}/reminder [post]
func (h *FinanceHandler) Reminder(c *fiber.Ctx) error {
	out, err := h.uc.Reminder(c.UserContext(), GetCompanyID(c), c.Params("orderId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// InvoicePDF godoc
// @Summary      Factura en PDF
// @Tags         finance
// @Security     Bearer
// @Produce      application/pdf
// @Param        orderId  path  string  true  "ID del pedido"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/finance/invoices/{orderId}/pdf [get]
func (h *FinanceHandler) InvoicePDF(c *fiber.Ctx) error {
	data, name, err := h.docs.InvoicePDF(c.UserContext(), GetCompanyID(c), c.Params("orderId"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, data, name, "application/pdf")
}

// InvoiceXML godoc
// @Summary      Factura en XML
// @Description  Documento con digest SHA-256 sobre la forma canónica (C14N) en ext:UBLExtensions.
// @Tags         finance
// @Security     Bearer
// @Produce      application/xml
// @Param        orderId  path  string  true  "ID del pedido"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/finance/invoices/{orderId}/xml [get]
func (h *FinanceHandler) InvoiceXML(c *fiber.Ctx) error {
	data, name, err := h.docs.InvoiceXML(c.UserContext(), GetCompanyID(c), c.Params("orderId"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, data, name, "application/xml")
}

// RunOverdue godoc
// @Summary      Ejecutar el job de cartera vencida
// @Description  Marca como OVERDUE los pedidos pendientes vencidos de la empresa; es el mismo trabajo que corre el cron diario.
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OverdueRunResult
// @Router       /api/finance/run-overdue [post]
func (h *FinanceHandler) RunOverdue(c *fiber.Ctx) error {
	out, err := h.uc.RunOverdue(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
