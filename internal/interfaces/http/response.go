package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bom-inventario-api/internal/application/dto"
	"github.com/jhoicas/bom-inventario-api/internal/domain"
)

// envelope respuesta HTTP: el resultado del núcleo más código y detalle de error para el cliente.
type envelope[T any] struct {
	dto.Result[T]
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// respond escribe el resultado con el status que corresponde a su tipo de error.
func respond[T any](c *fiber.Ctx, okStatus int, res dto.Result[T]) error {
	if res.Success {
		return c.Status(okStatus).JSON(envelope[T]{Result: res})
	}
	status, code := statusFor(res.Err)
	msg := res.Error
	if status == fiber.StatusInternalServerError && code == "INTERNAL" {
		msg = "error interno"
	}
	res.Error = msg
	return c.Status(status).JSON(envelope[T]{Result: res, Code: code, Details: res.ValidationDetails()})
}

// statusFor mapea el error de dominio a status HTTP y código.
func statusFor(err error) (int, string) {
	switch domain.Kind(err) {
	case domain.ErrValidation:
		return fiber.StatusBadRequest, "VALIDATION"
	case domain.ErrNotFound:
		return fiber.StatusNotFound, "NOT_FOUND"
	case domain.ErrDuplicateKey:
		return fiber.StatusConflict, "DUPLICATE"
	case domain.ErrConnection:
		return fiber.StatusServiceUnavailable, "UNAVAILABLE"
	case domain.ErrTransaction:
		return fiber.StatusInternalServerError, "TRANSACTION"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// writeError respuesta de error fuera del núcleo (auth, cuerpo inválido).
func writeError(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(envelope[any]{
		Result: dto.Result[any]{Success: false, Error: msg, Timestamp: time.Now().UTC()},
		Code:   code,
	})
}
