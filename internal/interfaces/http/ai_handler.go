package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/application/usecase"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

// AIHandler maneja los endpoints del estudio de IA (módulo AI_STUDIO).
// Las funciones de IA nunca fallan por el proveedor: devuelven su valor de respaldo.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// MarketingCopy godoc
// @Summary      Generar contenido comercial
// @Description  sales_pitch o email_draft para un producto. content vacío si la IA no está disponible.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MarketingCopyRequest  true  "Producto y tipo"
// @Success      200   {object}  dto.MarketingCopyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ai/marketing-copy [post]
func (h *AIHandler) MarketingCopy(c *fiber.Ctx) error {
	var req dto.MarketingCopyRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if req.ProductID == "" {
		return validation(c, "product_id es requerido")
	}
	if req.Type != dto.CopySalesPitch && req.Type != dto.CopyEmailDraft {
		return validation(c, "type debe ser sales_pitch o email_draft")
	}
	out, err := h.uc.GenerateMarketingCopy(c.UserContext(), GetCompanyID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// QualityCheck godoc
// @Summary      Control de calidad ad hoc
// @Description  Analiza una imagen contra los estándares indicados. Sin credenciales devuelve WARNING.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QualityCheckRequest  true  "Imagen (data URL) y estándares"
// @Success      200   {object}  dto.QualityResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ai/quality-check [post]
func (h *AIHandler) QualityCheck(c *fiber.Ctx) error {
	var req dto.QualityCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if req.Image == "" {
		return validation(c, "image es requerido")
	}
	res := h.uc.AnalyzeQuality(c.UserContext(), req.Image, req.Standards)
	return c.JSON(toQualityDTO(res))
}

func toQualityDTO(r entity.QualityResult) dto.QualityResultDTO {
	return dto.QualityResultDTO{Status: r.Status, Reason: r.Reason}
}
