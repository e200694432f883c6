package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Operaciones-api/internal/application/analytics"
)

// HistoryHandler serie histórica de cinco años (módulo HISTORY).
type HistoryHandler struct {
	uc *analytics.HistoryUseCase
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(uc *analytics.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// Get godoc
// @Summary      Serie histórica
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Año; sin valor devuelve los cinco años"
// @Success      200  {object}  dto.HistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/history [get]
func (h *HistoryHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCompanyID(c), c.QueryInt("year", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Trend godoc
// @Summary      Análisis de tendencia con IA
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Año"
// @Success      200  {object}  dto.TrendAnalysisResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/history/trend [get]
func (h *HistoryHandler) Trend(c *fiber.Ctx) error {
	out, err := h.uc.Trend(c.UserContext(), GetCompanyID(c), c.QueryInt("year", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
