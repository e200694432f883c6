package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/application/orders"
)

// OrderHandler maneja pedidos de venta y su verificación de despacho (módulo ORDERS).
type OrderHandler struct {
	uc *orders.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Cliente e ítems"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if len(in.Items) == 0 {
		return validation(c, "el pedido requiere al menos un ítem")
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pedidos
// @Description  Más recientes primero. search busca en id y nombre del cliente sin distinguir tildes.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Texto a buscar"
// @Param        status  query  string  false  "Pendiente | Procesando | Enviado | Entregado | Cancelado"
// @Success      200  {object}  dto.ListResponse[dto.OrderResponse]
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var f dto.OrderFilter
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
// @Summary      Obtener pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado del pedido
// @Description  Pasar a Enviado no cambia el estado: inicia la verificación por escaneo (verification_required=true).
// @Description  El resto de transiciones se aplican de inmediato.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.StatusChangeRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.StatusChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [put]
func (h *OrderHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.StatusChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Status == "" {
		return validation(c, "status es requerido")
	}
	out, err := h.uc.RequestStatusChange(c.UserContext(), GetCompanyID(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	if out.VerificationRequired {
		return c.Status(fiber.StatusAccepted).JSON(out)
	}
	return c.JSON(out)
}

// Verification godoc
// @Summary      Estado de la verificación de despacho
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.VerificationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/verification [get]
func (h *OrderHandler) Verification(c *fiber.Ctx) error {
	out, err := h.uc.Verification(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Scan godoc
// @Summary      Registrar lectura del escáner
// @Description  payload es el texto del QR: {"id":"<productId>"}. Un producto ajeno al pedido devuelve 422 FOREIGN_PRODUCT
// @Description  y un ítem ya completo 409 ITEM_COMPLETE; en ambos casos los conteos no cambian.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.ScanRequest  true  "Lectura"
// @Success      200   {object}  dto.ScanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/verification/scan [post]
func (h *OrderHandler) Scan(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Scan(c.UserContext(), GetCompanyID(c), c.Params("id"), in.Payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ConfirmShipment godoc
// @Summary      Confirmar despacho
// @Description  Cierra la verificación y marca el pedido como Enviado, descontando el stock.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/verification/confirm [post]
func (h *OrderHandler) ConfirmShipment(c *fiber.Ctx) error {
	out, err := h.uc.ConfirmShipment(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CancelVerification godoc
// @Summary      Cancelar verificación
// @Tags         orders
// @Security     Bearer
// @Param        id   path  string  true  "ID del pedido"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/verification [delete]
func (h *OrderHandler) CancelVerification(c *fiber.Ctx) error {
	if err := h.uc.CancelVerification(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateTracking godoc
// @Summary      Actualizar datos logísticos
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.TrackingRequest  true  "Guía, transportadora y entrega estimada"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/tracking [put]
func (h *OrderHandler) UpdateTracking(c *fiber.Ctx) error {
	var in dto.TrackingRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateTracking(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddAttachment godoc
// @Summary      Adjuntar archivo al pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.AttachmentRequest  true  "Archivo (data URL)"
// @Success      201   {object}  dto.OrderAttachmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/attachments [post]
func (h *OrderHandler) AddAttachment(c *fiber.Ctx) error {
	var in dto.AttachmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddAttachment(c.UserContext(), GetCompanyID(c), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAttachments godoc
// @Summary      Listar adjuntos del pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.ListResponse[dto.OrderAttachmentResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/attachments [get]
func (h *OrderHandler) ListAttachments(c *fiber.Ctx) error {
	out, err := h.uc.ListAttachments(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// UpdatePayment godoc
// @Summary      Cambiar estado de pago
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.PaymentStatusRequest  true  "PAID | PENDING | OVERDUE"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/payment [put]
func (h *OrderHandler) UpdatePayment(c *fiber.Ctx) error {
	var in dto.PaymentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdatePaymentStatus(c.UserContext(), GetCompanyID(c), c.Params("id"), in.PaymentStatus)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
