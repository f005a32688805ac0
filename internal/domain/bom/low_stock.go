package bom

import (
	"sort"

	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
)

// LowStockReport proyecta los ítems con CurrentStock < MinStock, con el mayor faltante primero.
func LowStockReport(items []entity.InventoryItem) []entity.LowStockEntry {
	entries := make([]entity.LowStockEntry, 0)
	for _, it := range items {
		if it.CurrentStock >= it.MinStock {
			continue
		}
		entries = append(entries, entity.LowStockEntry{
			PartNumber:    it.PartNumber,
			ComponentName: it.ComponentName,
			CurrentStock:  it.CurrentStock,
			MinStock:      it.MinStock,
			Shortage:      it.MinStock - it.CurrentStock,
			Status:        it.Status,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Shortage != entries[j].Shortage {
			return entries[i].Shortage > entries[j].Shortage
		}
		return entries[i].PartNumber < entries[j].PartNumber
	})
	return entries
}
