package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bom-inventario-api/internal/application/bom"
	"github.com/jhoicas/bom-inventario-api/internal/application/dto"
)

// BOMHandler maneja las plantillas BOM y su disponibilidad (protegido).
type BOMHandler struct {
	svc *bom.Service
}

// NewBOMHandler construye el handler.
func NewBOMHandler(svc *bom.Service) *BOMHandler {
	return &BOMHandler{svc: svc}
}

// ListTemplates godoc
// @Summary      Listar plantillas BOM
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.BOMTemplateSummaryResponse
// @Router       /api/bom/templates [get]
func (h *BOMHandler) ListTemplates(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, h.svc.ListTemplates(c.UserContext()))
}

// CreateTemplate godoc
// @Summary      Crear plantilla BOM
// @Description  Crea la cabecera y todas las partes en una sola transacción. custom_id duplicado → 409.
// @Tags         bom
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBOMTemplateRequest  true  "name, description, custom_id, parts"
// @Success      201   {object}  dto.CreateBOMTemplateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/bom/templates [post]
func (h *BOMHandler) CreateTemplate(c *fiber.Ctx) error {
	var in dto.CreateBOMTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	return respond(c, fiber.StatusCreated, h.svc.CreateTemplate(c.UserContext(), GetUserID(c), in))
}

// GetTemplate godoc
// @Summary      Obtener plantilla BOM con sus partes
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Param        bom_id  path  string  true  "ID de la plantilla"
// @Success      200  {object}  dto.BOMTemplateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bom/templates/{bom_id} [get]
func (h *BOMHandler) GetTemplate(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, h.svc.GetTemplate(c.UserContext(), c.Params("bom_id")))
}

// CheckAvailability godoc
// @Summary      Disponibilidad de una plantilla
// @Description  Cruza cada parte con el stock actual. Orden: Unavailable, Partial, Available.
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Param        bom_id  path  string  true  "ID de la plantilla"
// @Success      200  {object}  dto.AvailabilityReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bom/templates/{bom_id}/availability [get]
func (h *BOMHandler) CheckAvailability(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, h.svc.CheckAvailability(c.UserContext(), c.Params("bom_id")))
}
