package repository

import (
	"context"

	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para ítems de inventario (DIP).
// Los métodos de lectura devuelven (nil, nil) cuando el ítem no existe.
type InventoryRepository interface {
	ListAll(ctx context.Context) ([]entity.InventoryItem, error)
	GetByPartNumber(ctx context.Context, partNumber string) (*entity.InventoryItem, error)
	// GetMany devuelve solo los ítems existentes entre los números de parte pedidos, indexados por número de parte.
	GetMany(ctx context.Context, partNumbers []string) (map[string]entity.InventoryItem, error)
	Create(ctx context.Context, item *entity.InventoryItem) error
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, partNumber string) (*entity.InventoryItem, error)
	// UpdateStock persiste CurrentStock, InventoryValue y LastUpdated del ítem.
	UpdateStock(ctx context.Context, item *entity.InventoryItem) (int64, error)
	Ping(ctx context.Context) error
}

// StockProcedure capacidad opcional del almacén: actualización atómica de stock del lado del servidor
// (fija stock, recalcula valor y marca last_updated en una sola operación).
type StockProcedure interface {
	HasUpdateStockProcedure(ctx context.Context) (bool, error)
	CallUpdateStock(ctx context.Context, partNumber string, newStock int, actorID string) (int64, error)
}
