package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Operaciones-api/internal/application/analytics"
	"github.com/jhoicas/Operaciones-api/internal/application/dto"
)

// DashboardHandler maneja el endpoint del resumen del dashboard.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del dashboard
// @Description  Serie mensual de ventas y utilidad, estadísticas netas, alertas de stock y contadores de cobranza.
// @Description  Sin mode se usa el modo que corresponde al tipo de empresa.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        mode  query  string  false  "GENERAL | MANUFACTURER | TRADER"
// @Success      200  {object}  dto.DashboardResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.Get(c.UserContext(), companyID, c.Query("mode"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
