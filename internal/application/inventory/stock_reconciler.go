package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/bom-inventario-api/internal/application/audit"
	"github.com/jhoicas/bom-inventario-api/internal/application/dto"
	"github.com/jhoicas/bom-inventario-api/internal/domain"
	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
	"github.com/jhoicas/bom-inventario-api/pkg/metrics"
)

// StockReconciler aplica cambios absolutos de stock con la estrategia elegida al arranque.
// Es la única vía de mutación de stock.
type StockReconciler struct {
	updater StockUpdater
	audit   *audit.Recorder
	metrics *metrics.BOMMetrics
	log     zerolog.Logger
}

// NewStockReconciler construye el reconciliador.
func NewStockReconciler(updater StockUpdater, rec *audit.Recorder, m *metrics.BOMMetrics, log zerolog.Logger) *StockReconciler {
	return &StockReconciler{updater: updater, audit: rec, metrics: m, log: log}
}

// Path nombre de la estrategia activa.
func (r *StockReconciler) Path() string { return r.updater.Path() }

// SetStock reemplaza current_stock (no es un delta) y recalcula inventory_value.
// Número de parte vacío o stock fuera de [0, MaxQuantity] se rechazan antes de escribir.
func (r *StockReconciler) SetStock(ctx context.Context, partNumber string, newStock int, actorID string) (int64, error) {
	partNumber = strings.TrimSpace(partNumber)
	if partNumber == "" {
		return 0, dto.NewValidationError("part_number", "es requerido")
	}
	if newStock < 0 {
		return 0, dto.NewValidationError("new_stock", "no puede ser negativo")
	}
	if newStock > entity.MaxQuantity {
		return 0, dto.NewValidationError("new_stock", fmt.Sprintf("no puede superar %d", entity.MaxQuantity))
	}

	rows, err := r.updater.SetStock(ctx, partNumber, newStock, actorID)
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, fmt.Errorf("%w: ítem %s", domain.ErrNotFound, partNumber)
	}

	r.metrics.IncStockUpdate(r.updater.Path())
	r.log.Info().
		Str("part_number", partNumber).
		Int("new_stock", newStock).
		Str("path", r.updater.Path()).
		Msg("stock actualizado")
	r.audit.Record(ctx, entity.AuditActionUpdateStock, entity.AuditEntityInventoryItem, partNumber,
		map[string]any{"new_stock": newStock, "path": r.updater.Path()}, actorID)
	return rows, nil
}
