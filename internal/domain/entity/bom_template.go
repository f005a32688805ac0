package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valores por defecto de una plantilla nueva.
const (
	BOMDefaultVersion       = "1.0"
	BOMStatusDraft          = "draft"
	BOMDefaultCreatedBy     = "bom-generator"
	PartAvailabilityUnknown = "unknown"
)

// BOMTemplate cabecera de una lista de materiales. Es dueña exclusiva de sus partes.
type BOMTemplate struct {
	BOMID              string
	Name               string
	Description        string
	Version            string
	Status             string
	TotalEstimatedCost decimal.Decimal
	CreatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// BOMTemplatePart parte requerida por una plantilla. Referencia (no posee) un InventoryItem por PartNumber.
// Availability es informativo; la disponibilidad real la calcula el motor de disponibilidad.
type BOMTemplatePart struct {
	ID               int64
	BOMID            string
	PartNumber       string
	Description      string
	Category         string
	QuantityRequired int
	UnitCost         decimal.Decimal
	TotalCost        decimal.Decimal
	Supplier         string
	DigikeyPN        string
	Availability     string
}

// ComputeTotalCost devuelve QuantityRequired * UnitCost.
func (p *BOMTemplatePart) ComputeTotalCost() decimal.Decimal {
	return decimal.NewFromInt(int64(p.QuantityRequired)).Mul(p.UnitCost).Round(2)
}

// BOMTemplateWithParts plantilla con sus partes ordenadas por número de parte.
type BOMTemplateWithParts struct {
	BOMTemplate
	Parts []BOMTemplatePart
}

// BOMTemplateSummary fila del listado de plantillas.
type BOMTemplateSummary struct {
	BOMTemplate
	PartCount int
	TotalCost decimal.Decimal
}

// SumTotalCost suma el costo total de las partes.
func SumTotalCost(parts []BOMTemplatePart) decimal.Decimal {
	total := decimal.Zero
	for i := range parts {
		total = total.Add(parts[i].ComputeTotalCost())
	}
	return total
}
