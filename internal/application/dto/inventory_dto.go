package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest body para POST /api/inventory.
// inventory_value no se acepta: siempre se deriva de current_stock * unit_cost.
type CreateInventoryItemRequest struct {
	PartNumber    string          `json:"part_number" validate:"required,max=50"`
	ComponentName string          `json:"component_name" validate:"required,max=255"`
	CurrentStock  int             `json:"current_stock" validate:"min=0,max=2147483647"`
	MinStock      int             `json:"min_stock" validate:"min=0,max=2147483647"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	DigikeyPN     string          `json:"digikey_pn,omitempty" validate:"max=100"`
	LeadTime      *int            `json:"lead_time,omitempty" validate:"omitempty,min=0,max=2147483647"`
	Status        string          `json:"status,omitempty" validate:"max=50"`
	Supplier      string          `json:"supplier,omitempty" validate:"max=100"`
	Category      string          `json:"category,omitempty" validate:"max=100"`
}

// UpdateStockRequest body para PUT /api/inventory/:part_number/stock. Es un valor absoluto, no un delta.
// Las columnas de stock son INTEGER, de ahí el tope.
type UpdateStockRequest struct {
	NewStock *int `json:"new_stock" validate:"required,max=2147483647"`
}

// InventoryItemResponse respuesta de un ítem de inventario.
type InventoryItemResponse struct {
	PartNumber     string          `json:"part_number"`
	ComponentName  string          `json:"component_name"`
	CurrentStock   int             `json:"current_stock"`
	MinStock       int             `json:"min_stock"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	DigikeyPN      string          `json:"digikey_pn,omitempty"`
	LeadTime       *int            `json:"lead_time,omitempty"`
	Status         string          `json:"status"`
	Supplier       string          `json:"supplier,omitempty"`
	Category       string          `json:"category,omitempty"`
	LastUpdated    *time.Time      `json:"last_updated,omitempty"`
	CreatedAt      *time.Time      `json:"created_at,omitempty"`
}

// StockUpdateResponse respuesta de una actualización de stock.
type StockUpdateResponse struct {
	PartNumber string `json:"part_number"`
	NewStock   int    `json:"new_stock"`
	Path       string `json:"path"` // estrategia activa: procedure | direct
}

// LowStockItemResponse ítem del reporte de stock bajo.
type LowStockItemResponse struct {
	PartNumber    string `json:"part_number"`
	ComponentName string `json:"component_name"`
	CurrentStock  int    `json:"current_stock"`
	MinStock      int    `json:"min_stock"`
	Shortage      int    `json:"shortage"`
	Status        string `json:"status"`
}
