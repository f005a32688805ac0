package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/bom-inventario-api/internal/domain"
	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
)

var (
	_ repository.InventoryRepository = (*InventoryRepo)(nil)
	_ repository.StockProcedure      = (*InventoryRepo)(nil)
)

// InventoryRepo implementación en memoria de InventoryRepository y StockProcedure.
// Con locked=true el llamador ya tiene el lock del Store (repositorio atado a una transacción).
type InventoryRepo struct {
	s      *Store
	locked bool
}

func (r *InventoryRepo) rlock() func() {
	if r.locked {
		return func() {}
	}
	r.s.mu.RLock()
	return r.s.mu.RUnlock
}

func (r *InventoryRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

// ListAll ítems ordenados por número de parte.
func (r *InventoryRepo) ListAll(ctx context.Context) ([]entity.InventoryItem, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	defer r.rlock()()
	out := make([]entity.InventoryItem, 0, len(r.s.items))
	for _, it := range r.s.items {
		out = append(out, cloneItem(it))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PartNumber < out[j].PartNumber })
	return out, nil
}

// GetByPartNumber devuelve (nil, nil) si no existe.
func (r *InventoryRepo) GetByPartNumber(ctx context.Context, partNumber string) (*entity.InventoryItem, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	defer r.rlock()()
	it, ok := r.s.items[partNumber]
	if !ok {
		return nil, nil
	}
	it = cloneItem(it)
	return &it, nil
}

// GetMany devuelve solo los existentes.
func (r *InventoryRepo) GetMany(ctx context.Context, partNumbers []string) (map[string]entity.InventoryItem, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	defer r.rlock()()
	out := make(map[string]entity.InventoryItem, len(partNumbers))
	for _, pn := range partNumbers {
		if it, ok := r.s.items[pn]; ok {
			out[pn] = cloneItem(it)
		}
	}
	return out, nil
}

// Create inserta un ítem nuevo; ErrDuplicateKey si el número de parte ya existe.
func (r *InventoryRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	if err := alive(ctx); err != nil {
		return err
	}
	defer r.lock()()
	if _, ok := r.s.items[item.PartNumber]; ok {
		return fmt.Errorf("%w: part_number %s", domain.ErrDuplicateKey, item.PartNumber)
	}
	r.s.items[item.PartNumber] = cloneItem(*item)
	return nil
}

// GetForUpdate en memoria equivale a GetByPartNumber: la transacción ya tiene el lock exclusivo.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, partNumber string) (*entity.InventoryItem, error) {
	return r.GetByPartNumber(ctx, partNumber)
}

// UpdateStock persiste stock, valor y fecha. Devuelve 0 si el ítem no existe.
func (r *InventoryRepo) UpdateStock(ctx context.Context, item *entity.InventoryItem) (int64, error) {
	if err := alive(ctx); err != nil {
		return 0, err
	}
	defer r.lock()()
	cur, ok := r.s.items[item.PartNumber]
	if !ok {
		return 0, nil
	}
	cur.CurrentStock = item.CurrentStock
	cur.InventoryValue = item.InventoryValue
	cur.LastUpdated = item.LastUpdated
	r.s.items[item.PartNumber] = cur
	return 1, nil
}

// Ping siempre disponible mientras el contexto siga vivo.
func (r *InventoryRepo) Ping(ctx context.Context) error {
	return alive(ctx)
}

// HasUpdateStockProcedure implementa repository.StockProcedure.
func (r *InventoryRepo) HasUpdateStockProcedure(ctx context.Context) (bool, error) {
	if err := alive(ctx); err != nil {
		return false, err
	}
	return r.s.procedure, nil
}

// CallUpdateStock fija stock, recalcula valor y marca la fecha bajo un único lock.
func (r *InventoryRepo) CallUpdateStock(ctx context.Context, partNumber string, newStock int, _ string) (int64, error) {
	if err := alive(ctx); err != nil {
		return 0, err
	}
	if !r.s.procedure {
		return 0, fmt.Errorf("%w: procedimiento de stock no disponible", domain.ErrConnection)
	}
	if newStock < 0 {
		return 0, fmt.Errorf("%w: new_stock negativo", domain.ErrValidation)
	}
	defer r.lock()()
	cur, ok := r.s.items[partNumber]
	if !ok {
		return 0, nil
	}
	cur.ApplyStock(newStock, r.s.now().UTC())
	r.s.items[partNumber] = cur
	return 1, nil
}
