package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Operaciones-api/internal/application/analytics"
	"github.com/jhoicas/Operaciones-api/internal/application/dto"
)

// ChannelHandler configuración de canales de venta y su rentabilidad (módulo CHANNELS).
type ChannelHandler struct {
	uc *analytics.ChannelUseCase
}

// NewChannelHandler construye el handler.
func NewChannelHandler(uc *analytics.ChannelUseCase) *ChannelHandler {
	return &ChannelHandler{uc: uc}
}

// List godoc
// @Summary      Listar canales
// @Tags         channels
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.ChannelConfigResponse]
// @Router       /api/channels [get]
func (h *ChannelHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// Create godoc
// @Summary      Crear canal
// @Tags         channels
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChannelConfigRequest  true  "Canal"
// @Success      201   {object}  dto.ChannelConfigResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/channels [post]
func (h *ChannelHandler) Create(c *fiber.Ctx) error {
	var in dto.ChannelConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar canal
// @Tags         channels
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del canal"
// @Param        body  body  dto.ChannelConfigRequest  true  "Canal"
// @Success      200   {object}  dto.ChannelConfigResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/channels/{id} [put]
func (h *ChannelHandler) Update(c *fiber.Ctx) error {
	var in dto.ChannelConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar canal
// @Tags         channels
// @Security     Bearer
// @Param        id   path  string  true  "ID del canal"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/channels/{id} [delete]
func (h *ChannelHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Profitability godoc
// @Summary      Rentabilidad por canal
// @Tags         channels
// @Security     Bearer
// @Produce      json
// @Param        range  query  string  false  "MONTH | QUARTER | YEAR | ALL"  default(YEAR)
// @Success      200  {object}  dto.ChannelProfitabilityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/channels/profitability [get]
func (h *ChannelHandler) Profitability(c *fiber.Ctx) error {
	out, err := h.uc.Profitability(c.UserContext(), GetCompanyID(c), c.Query("range"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
