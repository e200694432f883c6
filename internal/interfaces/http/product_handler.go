package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/application/inventory"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProductHandler maneja las peticiones HTTP de inventario (protegido, módulo INVENTORY).
type ProductHandler struct {
	uc            *inventory.ProductUseCase
	replenishment *inventory.ReplenishmentUseCase
	export        *inventory.ExportUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *inventory.ProductUseCase, replenishment *inventory.ReplenishmentUseCase, export *inventory.ExportUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, replenishment: replenishment, export: export}
}

// Create godoc
// @Summary      Crear producto
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.SKU == "" || in.Name == "" {
		return validation(c, "sku y name son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Description  Búsqueda por nombre o SKU sin distinguir tildes. low_stock=true filtra los que están en o bajo el umbral.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        search     query  string  false  "Texto a buscar"
// @Param        origin     query  string  false  "MANUFACTURED | IMPORTED"
// @Param        category   query  string  false  "Categoría"
// @Param        low_stock  query  bool    false  "Solo stock bajo"
// @Success      200  {object}  dto.ListResponse[dto.ProductResponse]
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var f dto.ProductFilter
	if err := c.QueryParser(&f); err != nil {
		return validation(c, "filtros inválidos")
	}
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AdjustStock godoc
// @Summary      Ajuste manual de stock
// @Description  Sobrescribe el stock con el valor indicado; valores negativos se rechazan.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "Nuevo stock"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [put]
func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Stock == nil {
		return validation(c, "stock es requerido")
	}
	out, err := h.uc.AdjustStock(c.UserContext(), GetCompanyID(c), c.Params("id"), *in.Stock)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Audit godoc
// @Summary      Auditoría física
// @Description  Aplica los conteos físicos como ajustes manuales y devuelve las diferencias.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AuditRequest  true  "Conteos"
// @Success      200   {object}  dto.ListResponse[dto.AuditResultItem]
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/audit [post]
func (h *ProductHandler) Audit(c *fiber.Ctx) error {
	var in dto.AuditRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if len(in.Counts) == 0 {
		return validation(c, "counts es requerido")
	}
	out, err := h.uc.Audit(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// QRLabel godoc
// @Summary      Etiqueta QR del producto
// @Description  Devuelve el payload {"id": "..."} que lee el escáner de despacho.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.QRLabelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/qr [get]
func (h *ProductHandler) QRLabel(c *fiber.Ctx) error {
	out, err := h.uc.QRLabel(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreatePack godoc
// @Summary      Crear pack
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePackRequest  true  "Producto base y composición"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/packs [post]
func (h *ProductHandler) CreatePack(c *fiber.Ctx) error {
	var in dto.CreatePackRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.BaseProductID == "" {
		return validation(c, "base_product_id es requerido")
	}
	out, err := h.uc.CreatePack(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Replenishment godoc
// @Summary      Lista de reposición
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.ReplenishmentItem]
// @Router       /api/inventory/replenishment [get]
func (h *ProductHandler) Replenishment(c *fiber.Ctx) error {
	out, err := h.replenishment.GenerateReplenishmentList(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// Export godoc
// @Summary      Exportar inventario a Excel
// @Tags         inventory
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        search     query  string  false  "Texto a buscar"
// @Param        origin     query  string  false  "MANUFACTURED | IMPORTED"
// @Success      200  {file}  file
// @Router       /api/inventory/export [get]
func (h *ProductHandler) Export(c *fiber.Ctx) error {
	var f dto.ProductFilter
	if err := c.QueryParser(&f); err != nil {
		return validation(c, "filtros inválidos")
	}
	data, name, err := h.export.Export(c.UserContext(), GetCompanyID(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, data, name, xlsxContentType)
}
