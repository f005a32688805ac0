package entity

import "github.com/shopspring/decimal"

// AvailabilityStatus clasificación de disponibilidad de una parte.
type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "Available"
	AvailabilityPartial     AvailabilityStatus = "Partial"
	AvailabilityUnavailable AvailabilityStatus = "Unavailable"
)

// Rank ordena de peor a mejor: Unavailable (2) > Partial (1) > Available (0).
func (s AvailabilityStatus) Rank() int {
	switch s {
	case AvailabilityUnavailable:
		return 2
	case AvailabilityPartial:
		return 1
	default:
		return 0
	}
}

// AvailabilityCheck resultado calculado (no persistido) para una parte de la plantilla.
// Siempre se cumple AvailableQuantity + Shortage == QuantityRequired.
type AvailabilityCheck struct {
	PartNumber        string
	Description       string
	QuantityRequired  int
	CurrentStock      int
	AvailableQuantity int
	Shortage          int
	Status            AvailabilityStatus
	UnitCost          decimal.Decimal
	ShortageCost      decimal.Decimal
}

// AvailabilitySummary vista agregada de la disponibilidad de una plantilla.
type AvailabilitySummary struct {
	TotalParts         int
	AvailableParts     int
	PartialParts       int
	UnavailableParts   int
	RequiredUnits      int
	ShortageUnits      int
	TotalEstimatedCost decimal.Decimal
	ShortageCost       decimal.Decimal
	Status             AvailabilityStatus
}

// LowStockEntry ítem con stock por debajo del mínimo. Shortage = MinStock - CurrentStock (> 0).
type LowStockEntry struct {
	PartNumber    string
	ComponentName string
	CurrentStock  int
	MinStock      int
	Shortage      int
	Status        string
}
