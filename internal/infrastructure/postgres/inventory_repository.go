package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
)

var (
	_ repository.InventoryRepository = (*InventoryRepo)(nil)
	_ repository.StockProcedure      = (*InventoryRepo)(nil)
)

const inventoryColumns = `part_number, component_name, current_stock, min_stock, unit_cost, inventory_value,
		COALESCE(digikey_pn, ''), lead_time, status, COALESCE(supplier, ''), COALESCE(category, ''),
		last_updated, created_at`

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.PartNumber, &it.ComponentName, &it.CurrentStock, &it.MinStock, &it.UnitCost, &it.InventoryValue,
		&it.DigikeyPN, &it.LeadTime, &it.Status, &it.Supplier, &it.Category,
		&it.LastUpdated, &it.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *InventoryRepo) queryItems(ctx context.Context, op, query string, args ...any) ([]entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	var list []entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		list = append(list, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return list, nil
}

// ListAll lista el inventario ordenado por número de parte.
func (r *InventoryRepo) ListAll(ctx context.Context) ([]entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items ORDER BY part_number`
	list, err := r.queryItems(ctx, "list inventory", query)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []entity.InventoryItem{}
	}
	return list, nil
}

// GetByPartNumber obtiene un ítem; (nil, nil) si no existe.
func (r *InventoryRepo) GetByPartNumber(ctx context.Context, partNumber string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE part_number = $1`
	it, err := scanItem(r.q.QueryRow(ctx, query, partNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get inventory item", err)
	}
	return it, nil
}

// GetMany obtiene los ítems existentes entre los números de parte dados (una sola consulta).
func (r *InventoryRepo) GetMany(ctx context.Context, partNumbers []string) (map[string]entity.InventoryItem, error) {
	out := make(map[string]entity.InventoryItem, len(partNumbers))
	if len(partNumbers) == 0 {
		return out, nil
	}
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE part_number = ANY($1)`
	list, err := r.queryItems(ctx, "get inventory items", query, partNumbers)
	if err != nil {
		return nil, err
	}
	for _, it := range list {
		out[it.PartNumber] = it
	}
	return out, nil
}

// Create inserta un ítem. Clave duplicada → domain.ErrDuplicateKey.
func (r *InventoryRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (part_number, component_name, current_stock, min_stock, unit_cost, inventory_value,
			digikey_pn, lead_time, status, supplier, category, last_updated, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, NULLIF($10, ''), NULLIF($11, ''), $12, $13)`
	_, err := r.q.Exec(ctx, query,
		item.PartNumber, item.ComponentName, item.CurrentStock, item.MinStock, item.UnitCost, item.InventoryValue,
		item.DigikeyPN, item.LeadTime, item.Status, item.Supplier, item.Category, item.LastUpdated, item.CreatedAt,
	)
	if err != nil {
		return classify("insert inventory item", err)
	}
	return nil
}

// GetForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE). Solo tiene sentido dentro de una tx.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, partNumber string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE part_number = $1 FOR UPDATE`
	it, err := scanItem(r.q.QueryRow(ctx, query, partNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get inventory item for update", err)
	}
	return it, nil
}

// UpdateStock persiste current_stock, inventory_value y last_updated.
func (r *InventoryRepo) UpdateStock(ctx context.Context, item *entity.InventoryItem) (int64, error) {
	query := `
		UPDATE inventory_items
		SET current_stock = $2, inventory_value = $3, last_updated = $4
		WHERE part_number = $1`
	tag, err := r.q.Exec(ctx, query, item.PartNumber, item.CurrentStock, item.InventoryValue, item.LastUpdated)
	if err != nil {
		return 0, classify("update inventory stock", err)
	}
	return tag.RowsAffected(), nil
}

// Ping verifica la conexión.
func (r *InventoryRepo) Ping(ctx context.Context) error {
	var one int
	if err := r.q.QueryRow(ctx, `SELECT 1`).Scan(&one); err != nil {
		return classify("ping", err)
	}
	return nil
}

// HasUpdateStockProcedure sondea si existe la función sp_update_inventory_stock.
func (r *InventoryRepo) HasUpdateStockProcedure(ctx context.Context) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT to_regproc('sp_update_inventory_stock') IS NOT NULL`,
	).Scan(&exists)
	if err != nil {
		return false, classify("lookup sp_update_inventory_stock", err)
	}
	return exists, nil
}

// CallUpdateStock invoca sp_update_inventory_stock: fija stock, recalcula valor y marca fecha en una sola operación.
func (r *InventoryRepo) CallUpdateStock(ctx context.Context, partNumber string, newStock int, actorID string) (int64, error) {
	var rows int64
	err := r.q.QueryRow(ctx,
		`SELECT sp_update_inventory_stock($1, $2, $3)`,
		partNumber, newStock, actorID,
	).Scan(&rows)
	if err != nil {
		return 0, classify("call sp_update_inventory_stock", err)
	}
	return rows, nil
}
