// Package bom contiene los servicios de dominio puros de listas de materiales:
// disponibilidad de partes frente al inventario y reporte de stock bajo.
package bom

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
)

// CheckAvailability clasifica cada parte de la plantilla contra el stock dado.
// Una parte sin registro en stock cuenta con stock 0. No hace I/O.
// El resultado se ordena de peor a mejor (Unavailable, Partial, Available),
// luego por faltante descendente y por número de parte.
func CheckAvailability(parts []entity.BOMTemplatePart, stock map[string]entity.InventoryItem) []entity.AvailabilityCheck {
	checks := make([]entity.AvailabilityCheck, 0, len(parts))
	for _, p := range parts {
		stockQty := 0
		if item, ok := stock[p.PartNumber]; ok && item.CurrentStock > 0 {
			stockQty = item.CurrentStock
		}
		checks = append(checks, checkPart(p, stockQty))
	}

	sort.SliceStable(checks, func(i, j int) bool {
		a, b := checks[i], checks[j]
		if a.Status.Rank() != b.Status.Rank() {
			return a.Status.Rank() > b.Status.Rank()
		}
		if a.Shortage != b.Shortage {
			return a.Shortage > b.Shortage
		}
		return a.PartNumber < b.PartNumber
	})
	return checks
}

func checkPart(p entity.BOMTemplatePart, stockQty int) entity.AvailabilityCheck {
	required := p.QuantityRequired
	available := min(stockQty, required)
	shortage := max(required-stockQty, 0)

	var status entity.AvailabilityStatus
	switch {
	case stockQty >= required:
		status = entity.AvailabilityAvailable
	case stockQty > 0:
		status = entity.AvailabilityPartial
	default:
		status = entity.AvailabilityUnavailable
	}

	return entity.AvailabilityCheck{
		PartNumber:        p.PartNumber,
		Description:       p.Description,
		QuantityRequired:  required,
		CurrentStock:      stockQty,
		AvailableQuantity: available,
		Shortage:          shortage,
		Status:            status,
		UnitCost:          p.UnitCost,
		ShortageCost:      decimal.NewFromInt(int64(shortage)).Mul(p.UnitCost).Round(2),
	}
}

// Summarize agrega los resultados por parte. El estado global es Available si todas las partes
// lo están, Unavailable si ninguna tiene stock y Partial en otro caso.
func Summarize(checks []entity.AvailabilityCheck) entity.AvailabilitySummary {
	s := entity.AvailabilitySummary{
		TotalParts:         len(checks),
		TotalEstimatedCost: decimal.Zero,
		ShortageCost:       decimal.Zero,
	}
	for _, c := range checks {
		switch c.Status {
		case entity.AvailabilityAvailable:
			s.AvailableParts++
		case entity.AvailabilityPartial:
			s.PartialParts++
		default:
			s.UnavailableParts++
		}
		s.RequiredUnits += c.QuantityRequired
		s.ShortageUnits += c.Shortage
		s.TotalEstimatedCost = s.TotalEstimatedCost.Add(decimal.NewFromInt(int64(c.QuantityRequired)).Mul(c.UnitCost))
		s.ShortageCost = s.ShortageCost.Add(c.ShortageCost)
	}
	s.TotalEstimatedCost = s.TotalEstimatedCost.Round(2)

	switch {
	case s.AvailableParts == s.TotalParts:
		s.Status = entity.AvailabilityAvailable
	case s.UnavailableParts == s.TotalParts:
		s.Status = entity.AvailabilityUnavailable
	default:
		s.Status = entity.AvailabilityPartial
	}
	return s
}
