package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/bom-inventario-api/internal/application/bom"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Service     *bom.Service
	ServiceName string
	JWTSecret   string
	WriteRoles  []string            // vacío = cualquier usuario autenticado puede escribir
	Gatherer    prometheus.Gatherer // nil = sin /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Público
	app.Get("/health", HealthHandler(deps.ServiceName, deps.Service))
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	canWrite := RequireRole(deps.WriteRoles...)

	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Service)
	inv.Get("/", inventoryHandler.List)
	inv.Post("/", canWrite, inventoryHandler.Create)
	inv.Get("/low-stock", inventoryHandler.LowStock)
	inv.Get("/:part_number", inventoryHandler.Get)
	inv.Put("/:part_number/stock", canWrite, inventoryHandler.UpdateStock)

	templates := api.Group("/bom/templates")
	bomHandler := NewBOMHandler(deps.Service)
	templates.Get("/", bomHandler.ListTemplates)
	templates.Post("/", canWrite, bomHandler.CreateTemplate)
	templates.Get("/:bom_id", bomHandler.GetTemplate)
	templates.Get("/:bom_id/availability", bomHandler.CheckAvailability)

	configHandler := NewConfigHandler(deps.Service)
	api.Get("/config/system", configHandler.System)
}
