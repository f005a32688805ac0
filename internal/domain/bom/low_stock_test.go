package bom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bom-inventario-api/internal/domain/bom"
	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
)

func TestLowStockReport_FiltraYOrdena(t *testing.T) {
	items := []entity.InventoryItem{
		{PartNumber: "R-10K", ComponentName: "Resistencia 10k", CurrentStock: 90, MinStock: 100, Status: "In Stock"},
		{PartNumber: "C-100N", ComponentName: "Capacitor 100nF", CurrentStock: 0, MinStock: 50, Status: "Out of Stock"},
		{PartNumber: "U-MCU", ComponentName: "Microcontrolador", CurrentStock: 20, MinStock: 20, Status: "In Stock"},
		{PartNumber: "D-LED", ComponentName: "LED rojo", CurrentStock: 500, MinStock: 10, Status: "In Stock"},
		{PartNumber: "J-USB", ComponentName: "Conector USB", CurrentStock: 1, MinStock: 11, Status: "Low Stock"},
	}

	report := bom.LowStockReport(items)

	if assert.Len(t, report, 3) {
		assert.Equal(t, "C-100N", report[0].PartNumber)
		assert.Equal(t, 50, report[0].Shortage)
		// R-10K y J-USB empatan en 10: desempate por número de parte
		assert.Equal(t, "J-USB", report[1].PartNumber)
		assert.Equal(t, "R-10K", report[2].PartNumber)
	}
	for _, e := range report {
		assert.Less(t, e.CurrentStock, e.MinStock, "nunca se reporta un ítem con stock >= mínimo")
		assert.Equal(t, e.MinStock-e.CurrentStock, e.Shortage)
		assert.Positive(t, e.Shortage)
	}
}

func TestLowStockReport_Vacio(t *testing.T) {
	report := bom.LowStockReport([]entity.InventoryItem{{PartNumber: "A", CurrentStock: 5, MinStock: 5}})
	assert.NotNil(t, report)
	assert.Empty(t, report)
}
