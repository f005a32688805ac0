package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bom-inventario-api/internal/application/bom"
	"github.com/jhoicas/bom-inventario-api/internal/application/dto"
)

// InventoryHandler maneja las peticiones HTTP de inventario (protegido).
type InventoryHandler struct {
	svc *bom.Service
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(svc *bom.Service) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// List godoc
// @Summary      Listar inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.InventoryItemResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, h.svc.ListInventory(c.UserContext()))
}

// Create godoc
// @Summary      Crear ítem de inventario
// @Description  inventory_value se calcula como current_stock * unit_cost.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryItemRequest  true  "part_number, component_name, current_stock, min_stock, unit_cost"
// @Success      201   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryItemRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	return respond(c, fiber.StatusCreated, h.svc.CreateInventoryItem(c.UserContext(), GetUserID(c), in))
}

// LowStock godoc
// @Summary      Reporte de stock bajo
// @Description  Ítems con current_stock < min_stock, mayor faltante primero.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LowStockItemResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, h.svc.LowStockReport(c.UserContext()))
}

// Get godoc
// @Summary      Obtener ítem de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        part_number  path  string  true  "Número de parte"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{part_number} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, h.svc.GetInventoryItem(c.UserContext(), c.Params("part_number")))
}

// UpdateStock godoc
// @Summary      Fijar stock
// @Description  Valor absoluto (no delta). Recalcula inventory_value. El actor es el subject del token.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        part_number  path  string                  true  "Número de parte"
// @Param        body         body  dto.UpdateStockRequest  true  "new_stock"
// @Success      200  {object}  dto.StockUpdateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{part_number}/stock [put]
func (h *InventoryHandler) UpdateStock(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if err := dto.Validate(in); err != nil {
		return respond(c, fiber.StatusOK, dto.Fail[dto.StockUpdateResponse](err))
	}
	res := h.svc.SetStock(c.UserContext(), c.Params("part_number"), *in.NewStock, GetUserID(c))
	return respond(c, fiber.StatusOK, res)
}
