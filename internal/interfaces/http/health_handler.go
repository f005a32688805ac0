package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// healthChecker lo implementa *bom.Service.
type healthChecker interface {
	Ping(ctx context.Context) error
	StockPath() string
}

// HealthHandler GET /health: estado del almacén y estrategia de stock activa.
func HealthHandler(service string, hc healthChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		body := fiber.Map{
			"status":     "ok",
			"service":    service,
			"store":      "ok",
			"stock_path": hc.StockPath(),
		}
		if err := hc.Ping(ctx); err != nil {
			body["status"] = "degraded"
			body["store"] = err.Error()
			return c.Status(fiber.StatusServiceUnavailable).JSON(body)
		}
		return c.JSON(body)
	}
}
