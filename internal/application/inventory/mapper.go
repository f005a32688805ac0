package inventory

import (
	"time"

	"github.com/jhoicas/bom-inventario-api/internal/application/dto"
	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
)

// ToItemResponse convierte un ítem de dominio a su DTO.
func ToItemResponse(item entity.InventoryItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		PartNumber:     item.PartNumber,
		ComponentName:  item.ComponentName,
		CurrentStock:   item.CurrentStock,
		MinStock:       item.MinStock,
		UnitCost:       item.UnitCost,
		InventoryValue: item.InventoryValue,
		DigikeyPN:      item.DigikeyPN,
		LeadTime:       item.LeadTime,
		Status:         item.Status,
		Supplier:       item.Supplier,
		Category:       item.Category,
		LastUpdated:    timePtr(item.LastUpdated),
		CreatedAt:      timePtr(item.CreatedAt),
	}
}

// ToItemResponses convierte una lista; nunca devuelve nil.
func ToItemResponses(items []entity.InventoryItem) []dto.InventoryItemResponse {
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToItemResponse(it))
	}
	return out
}

// ToLowStockResponses convierte el reporte de stock bajo.
func ToLowStockResponses(entries []entity.LowStockEntry) []dto.LowStockItemResponse {
	out := make([]dto.LowStockItemResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.LowStockItemResponse{
			PartNumber:    e.PartNumber,
			ComponentName: e.ComponentName,
			CurrentStock:  e.CurrentStock,
			MinStock:      e.MinStock,
			Shortage:      e.Shortage,
			Status:        e.Status,
		})
	}
	return out
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
