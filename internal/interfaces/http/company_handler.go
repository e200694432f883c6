package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/application/usecase"
)

// CompanyHandler maneja la empresa del token y, para ADMIN, el alta y listado de empresas.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear empresa
// @Description  Solo rol ADMIN. Crea costos fijos, cobranza y canales por defecto.
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Name == "" {
		return validation(c, "name es requerido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar empresas
// @Description  Solo rol ADMIN.
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.CompanyResponse]
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// Me godoc
// @Summary      Empresa del token
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company [get]
func (h *CompanyHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateModules godoc
// @Summary      Reemplazar módulos activos
// @Description  Requiere rol ADMIN.
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateModulesRequest  true  "Módulos"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/company/modules [put]
func (h *CompanyHandler) UpdateModules(c *fiber.Ctx) error {
	var in dto.UpdateModulesRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateModules(c.UserContext(), GetCompanyID(c), in.ActiveModules)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FixedCosts godoc
// @Summary      Costos fijos mensuales
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.FixedCostItemDTO]
// @Router       /api/company/fixed-costs [get]
func (h *CompanyHandler) FixedCosts(c *fiber.Ctx) error {
	out, err := h.uc.FixedCosts(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// ReplaceFixedCosts godoc
// @Summary      Reemplazar costos fijos
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FixedCostsRequest  true  "Costos"
// @Success      200   {object}  dto.ListResponse[dto.FixedCostItemDTO]
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/company/fixed-costs [put]
func (h *CompanyHandler) ReplaceFixedCosts(c *fiber.Ctx) error {
	var in dto.FixedCostsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ReplaceFixedCosts(c.UserContext(), GetCompanyID(c), in.Items)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// CollectionSettings godoc
// @Summary      Parámetros de cobranza
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CollectionSettingsDTO
// @Router       /api/company/collection-settings [get]
func (h *CompanyHandler) CollectionSettings(c *fiber.Ctx) error {
	out, err := h.uc.CollectionSettings(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateCollectionSettings godoc
// @Summary      Actualizar parámetros de cobranza
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CollectionSettingsDTO  true  "Parámetros"
// @Success      200   {object}  dto.CollectionSettingsDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/company/collection-settings [put]
func (h *CompanyHandler) UpdateCollectionSettings(c *fiber.Ctx) error {
	var in dto.CollectionSettingsDTO
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateCollectionSettings(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
