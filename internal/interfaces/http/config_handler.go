package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bom-inventario-api/internal/application/bom"
)

// ConfigHandler configuración del sistema (protegido, solo lectura).
type ConfigHandler struct {
	svc *bom.Service
}

// NewConfigHandler construye el handler.
func NewConfigHandler(svc *bom.Service) *ConfigHandler {
	return &ConfigHandler{svc: svc}
}

// System godoc
// @Summary      Configuración del sistema
// @Description  settings y fieldMappings de la fila system_settings; {} si no existe.
// @Tags         config
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SystemConfigurationResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/config/system [get]
func (h *ConfigHandler) System(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, h.svc.SystemConfiguration(c.UserContext()))
}
