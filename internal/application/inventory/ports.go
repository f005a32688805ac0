package inventory

import (
	"context"

	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén de inventario,
// pasando un repositorio atado a esa transacción. Commit si fn no falla, Rollback en otro caso.
type TxRunner interface {
	RunInventory(ctx context.Context, fn func(repo repository.InventoryRepository) error) error
}
