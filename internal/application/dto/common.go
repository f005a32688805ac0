package dto

import (
	"errors"
	"time"

	"github.com/jhoicas/bom-inventario-api/internal/domain"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Result resultado uniforme de las operaciones expuestas por el núcleo.
// Err conserva el error tipado para que los adaptadores elijan el código de estado; no se serializa.
type Result[T any] struct {
	Success      bool      `json:"success"`
	Data         T         `json:"data"`
	Error        string    `json:"error,omitempty"`
	RowsAffected *int64    `json:"rows_affected,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	Err          error     `json:"-"`
}

// OK construye un resultado exitoso.
func OK[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data, Timestamp: time.Now().UTC()}
}

// OKRows construye un resultado exitoso de una mutación con filas afectadas.
func OKRows[T any](data T, rows int64) Result[T] {
	r := OK(data)
	r.RowsAffected = &rows
	return r
}

// Fail construye un resultado fallido a partir de un error.
func Fail[T any](err error) Result[T] {
	return Result[T]{Success: false, Error: err.Error(), Timestamp: time.Now().UTC(), Err: err}
}

// From elige OK o Fail según err.
func From[T any](data T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return OK(data)
}

// ValidationDetails devuelve los errores por campo si el resultado falló por validación.
func (r Result[T]) ValidationDetails() map[string]string {
	var ve *ValidationError
	if errors.As(r.Err, &ve) {
		return ve.Fields
	}
	return nil
}

// Kind clasifica el error del resultado (nil si fue exitoso o el error no es de dominio).
func (r Result[T]) Kind() error {
	if r.Err == nil {
		return nil
	}
	return domain.Kind(r.Err)
}
