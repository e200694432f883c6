package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/application/supply"
)

// SupplyHandler maneja órdenes de compra y de producción (módulo SUPPLY_CHAIN).
type SupplyHandler struct {
	uc *supply.UseCase
}

// NewSupplyHandler construye el handler.
func NewSupplyHandler(uc *supply.UseCase) *SupplyHandler {
	return &SupplyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de abastecimiento
// @Tags         supply
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplyOrderRequest  true  "PURCHASE_ORDER o PRODUCTION_ORDER"
// @Success      201   {object}  dto.SupplyOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supply-orders [post]
func (h *SupplyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplyOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.ProductID == "" {
		return validation(c, "product_id es requerido")
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes de abastecimiento
// @Tags         supply
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  false  "PURCHASE_ORDER | PRODUCTION_ORDER"
// @Param        status  query  string  false  "Estado"
// @Success      200  {object}  dto.ListResponse[dto.SupplyOrderResponse]
// @Router       /api/supply-orders [get]
func (h *SupplyHandler) List(c *fiber.Ctx) error {
	var f dto.SupplyFilter
	if err := c.QueryParser(&f); err != nil {
		return validation(c, "filtros inválidos")
	}
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// Get godoc
// @Summary      Obtener orden de abastecimiento
// @Tags         supply
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.SupplyOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supply-orders/{id} [get]
func (h *SupplyHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la orden
// @Description  RECEIVED o FINISHED acreditan el inventario una sola vez; repetir el estado final no vuelve a sumar.
// @Tags         supply
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.SupplyStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.SupplyOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supply-orders/{id}/status [put]
func (h *SupplyHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.SupplyStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Status == "" {
		return validation(c, "status es requerido")
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), GetCompanyID(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddAttachment godoc
// @Summary      Adjuntar archivo a la orden
// @Description  PRODUCTION_PROGRESS y QUALITY_ALERT disparan el control de calidad con IA.
// @Tags         supply
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.SupplyAttachmentInput  true  "Archivo (data URL)"
// @Success      201   {object}  dto.SupplyAttachmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supply-orders/{id}/attachments [post]
func (h *SupplyHandler) AddAttachment(c *fiber.Ctx) error {
	var in dto.SupplyAttachmentInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddAttachment(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Analyze godoc
// @Summary      Re-analizar calidad de un adjunto
// @Tags         supply
// @Security     Bearer
// @Produce      json
// @Param        id            path  string  true  "ID de la orden"
// @Param        attachmentId  path  string  true  "ID del adjunto"
// @Success      200  {object}  dto.SupplyAttachmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supply-orders/{id}/attachments/{attachmentId}/analyze [post]
func (h *SupplyHandler) Analyze(c *fiber.Ctx) error {
	out, err := h.uc.Analyze(c.UserContext(), GetCompanyID(c), c.Params("id"), c.Params("attachmentId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SmartScan godoc
// @Summary      Escaneo inteligente de factura de proveedor
// @Tags         supply
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SmartScanRequest  true  "Imagen de la factura y cantidad"
// @Success      200   {object}  dto.SmartScanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/supply-orders/smart-scan [post]
func (h *SupplyHandler) SmartScan(c *fiber.Ctx) error {
	var in dto.SmartScanRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Image == "" {
		return validation(c, "image es requerido")
	}
	out, err := h.uc.SmartScan(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Forecast godoc
// @Summary      Pronóstico de demanda
// @Tags         supply
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.DemandForecastDTO]
// @Router       /api/supply-orders/forecast [get]
func (h *SupplyHandler) Forecast(c *fiber.Ctx) error {
	out, err := h.uc.Forecast(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}
