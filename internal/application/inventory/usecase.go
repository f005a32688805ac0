package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bom-inventario-api/internal/application/audit"
	"github.com/jhoicas/bom-inventario-api/internal/application/dto"
	"github.com/jhoicas/bom-inventario-api/internal/domain"
	"github.com/jhoicas/bom-inventario-api/internal/domain/bom"
	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
)

// InventoryUseCase casos de uso de lectura y alta de ítems de inventario.
type InventoryUseCase struct {
	repo  repository.InventoryRepository
	audit *audit.Recorder
	now   func() time.Time
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.InventoryRepository, rec *audit.Recorder) *InventoryUseCase {
	return &InventoryUseCase{repo: repo, audit: rec, now: time.Now}
}

// List devuelve todos los ítems ordenados por número de parte.
func (uc *InventoryUseCase) List(ctx context.Context) ([]entity.InventoryItem, error) {
	items, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, domain.Classify("list inventory", err)
	}
	return items, nil
}

// Get devuelve un ítem o ErrNotFound.
func (uc *InventoryUseCase) Get(ctx context.Context, partNumber string) (*entity.InventoryItem, error) {
	partNumber = strings.TrimSpace(partNumber)
	if partNumber == "" {
		return nil, dto.NewValidationError("part_number", "es requerido")
	}
	item, err := uc.repo.GetByPartNumber(ctx, partNumber)
	if err != nil {
		return nil, domain.Classify("get inventory item", err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: ítem %s", domain.ErrNotFound, partNumber)
	}
	return item, nil
}

// Create da de alta un ítem. inventory_value se deriva de current_stock * unit_cost.
func (uc *InventoryUseCase) Create(ctx context.Context, actorID string, in dto.CreateInventoryItemRequest) (*entity.InventoryItem, error) {
	in.PartNumber = strings.TrimSpace(in.PartNumber)
	in.ComponentName = strings.TrimSpace(in.ComponentName)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.UnitCost.LessThan(decimal.Zero) {
		return nil, dto.NewValidationError("unit_cost", "no puede ser negativo")
	}

	now := uc.now().UTC()
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = entity.InventoryStatusInStock
	}
	item := &entity.InventoryItem{
		PartNumber:    in.PartNumber,
		ComponentName: in.ComponentName,
		MinStock:      in.MinStock,
		UnitCost:      in.UnitCost.Round(2),
		DigikeyPN:     in.DigikeyPN,
		LeadTime:      in.LeadTime,
		Status:        status,
		Supplier:      in.Supplier,
		Category:      in.Category,
		CreatedAt:     now,
	}
	item.ApplyStock(in.CurrentStock, now)

	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, domain.Classify("create inventory item", err)
	}

	uc.audit.Record(ctx, entity.AuditActionCreate, entity.AuditEntityInventoryItem, item.PartNumber,
		map[string]any{"component_name": item.ComponentName, "current_stock": item.CurrentStock}, actorID)
	return item, nil
}

// LowStock lee el inventario completo y deriva el reporte de stock bajo.
func (uc *InventoryUseCase) LowStock(ctx context.Context) ([]entity.LowStockEntry, error) {
	items, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	return bom.LowStockReport(items), nil
}

// Ping verifica el almacén de inventario (health check).
func (uc *InventoryUseCase) Ping(ctx context.Context) error {
	if err := uc.repo.Ping(ctx); err != nil {
		return domain.Classify("ping", err)
	}
	return nil
}
