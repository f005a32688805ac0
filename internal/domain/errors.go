package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los adaptadores envuelven la causa original con fmt.Errorf("%w: ...: %w", kind, cause)
// para que errors.Is funcione tanto con el tipo como con el error del driver.
var (
	ErrValidation   = errors.New("entrada inválida")
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrDuplicateKey = errors.New("clave duplicada")
	ErrTransaction  = errors.New("fallo en la transacción")
	ErrConnection   = errors.New("almacén no disponible")
)

// Kind devuelve el error de dominio que clasifica err, o nil si no es de dominio.
func Kind(err error) error {
	for _, k := range []error{ErrValidation, ErrNotFound, ErrDuplicateKey, ErrConnection, ErrTransaction} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// Label nombre corto y estable del tipo de error, para métricas y logs.
func Label(err error) string {
	switch Kind(err) {
	case nil:
		if err == nil {
			return "ok"
		}
		return "error"
	case ErrValidation:
		return "validation"
	case ErrNotFound:
		return "not_found"
	case ErrDuplicateKey:
		return "duplicate"
	case ErrConnection:
		return "connection"
	default:
		return "transaction"
	}
}

// Classify anota err con la operación. Si err no es de dominio se clasifica como ErrTransaction
// conservando la causa original.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if Kind(err) != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrTransaction, op, err)
}
