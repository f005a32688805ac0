package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/bom-inventario-api/internal/domain"
	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
)

// Nombres de estrategia de actualización de stock (config INVENTORY_STOCK_STRATEGY).
const (
	StrategyAuto      = "auto"
	StrategyProcedure = "procedure"
	StrategyDirect    = "direct"
)

// StockUpdater fija el stock absoluto de un ítem y recalcula su valor.
// Devuelve las filas afectadas; 0 significa que el número de parte no existe.
type StockUpdater interface {
	Path() string
	SetStock(ctx context.Context, partNumber string, newStock int, actorID string) (int64, error)
}

var (
	_ StockUpdater = (*AtomicUpdater)(nil)
	_ StockUpdater = (*ReadModifyWriteUpdater)(nil)
)

// AtomicUpdater delega en el procedimiento del almacén (una sola operación del lado del servidor).
type AtomicUpdater struct {
	proc repository.StockProcedure
}

// NewAtomicUpdater construye la estrategia atómica.
func NewAtomicUpdater(proc repository.StockProcedure) *AtomicUpdater {
	return &AtomicUpdater{proc: proc}
}

// Path implementa StockUpdater.
func (u *AtomicUpdater) Path() string { return StrategyProcedure }

// SetStock implementa StockUpdater.
func (u *AtomicUpdater) SetStock(ctx context.Context, partNumber string, newStock int, actorID string) (int64, error) {
	rows, err := u.proc.CallUpdateStock(ctx, partNumber, newStock, actorID)
	if err != nil {
		return 0, domain.Classify("sp_update_inventory_stock", err)
	}
	return rows, nil
}

// ReadModifyWriteUpdater bloquea la fila, recalcula el valor en la aplicación y la reescribe,
// todo dentro de una transacción de inventario.
type ReadModifyWriteUpdater struct {
	tx  TxRunner
	now func() time.Time
}

// NewReadModifyWriteUpdater construye la estrategia directa.
func NewReadModifyWriteUpdater(tx TxRunner) *ReadModifyWriteUpdater {
	return &ReadModifyWriteUpdater{tx: tx, now: time.Now}
}

// Path implementa StockUpdater.
func (u *ReadModifyWriteUpdater) Path() string { return StrategyDirect }

// SetStock implementa StockUpdater.
func (u *ReadModifyWriteUpdater) SetStock(ctx context.Context, partNumber string, newStock int, _ string) (int64, error) {
	var rows int64
	err := u.tx.RunInventory(ctx, func(repo repository.InventoryRepository) error {
		item, err := repo.GetForUpdate(ctx, partNumber)
		if err != nil {
			return err
		}
		if item == nil {
			return nil // rows = 0
		}
		item.ApplyStock(newStock, u.now().UTC())
		rows, err = repo.UpdateStock(ctx, item)
		return err
	})
	if err != nil {
		return 0, domain.Classify("update stock", err)
	}
	return rows, nil
}

// SelectStockUpdater elige la estrategia una sola vez al arranque.
//   - procedure: exige que el almacén tenga el procedimiento.
//   - direct: siempre lectura-modificación-escritura.
//   - auto (o vacío): sondea el procedimiento y usa direct si no está.
func SelectStockUpdater(
	ctx context.Context,
	strategy string,
	repo repository.InventoryRepository,
	tx TxRunner,
	log zerolog.Logger,
) (StockUpdater, error) {
	proc, hasProc := repo.(repository.StockProcedure)

	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case StrategyDirect:
		return NewReadModifyWriteUpdater(tx), nil

	case StrategyProcedure:
		if !hasProc {
			return nil, fmt.Errorf("estrategia %q: el almacén no soporta procedimientos", StrategyProcedure)
		}
		ok, err := proc.HasUpdateStockProcedure(ctx)
		if err != nil {
			return nil, fmt.Errorf("estrategia %q: %w", StrategyProcedure, err)
		}
		if !ok {
			return nil, fmt.Errorf("estrategia %q: sp_update_inventory_stock no existe", StrategyProcedure)
		}
		return NewAtomicUpdater(proc), nil

	case StrategyAuto, "":
		if !hasProc {
			return NewReadModifyWriteUpdater(tx), nil
		}
		ok, err := proc.HasUpdateStockProcedure(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("no se pudo sondear sp_update_inventory_stock, se usa actualización directa")
			return NewReadModifyWriteUpdater(tx), nil
		}
		if !ok {
			return NewReadModifyWriteUpdater(tx), nil
		}
		return NewAtomicUpdater(proc), nil
	}
	return nil, fmt.Errorf("estrategia de stock desconocida: %q", strategy)
}
