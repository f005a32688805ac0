package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Estado por defecto de un ítem recién creado.
const InventoryStatusInStock = "In Stock"

// MaxQuantity tope de las columnas INTEGER de stock y cantidades.
const MaxQuantity = math.MaxInt32

// InventoryItem representa un componente en inventario, identificado por su número de parte.
// InventoryValue es derivado (CurrentStock * UnitCost) y se recalcula en toda mutación de stock.
type InventoryItem struct {
	PartNumber     string
	ComponentName  string
	CurrentStock   int
	MinStock       int
	UnitCost       decimal.Decimal
	InventoryValue decimal.Decimal
	DigikeyPN      string
	LeadTime       *int // días
	Status         string
	Supplier       string
	Category       string
	LastUpdated    time.Time
	CreatedAt      time.Time
}

// ComputeInventoryValue devuelve CurrentStock * UnitCost redondeado a 2 decimales.
func (i *InventoryItem) ComputeInventoryValue() decimal.Decimal {
	return decimal.NewFromInt(int64(i.CurrentStock)).Mul(i.UnitCost).Round(2)
}

// ApplyStock fija el stock absoluto, recalcula el valor y marca la fecha de actualización.
func (i *InventoryItem) ApplyStock(newStock int, now time.Time) {
	i.CurrentStock = newStock
	i.InventoryValue = i.ComputeInventoryValue()
	i.LastUpdated = now
}
