package bom

import (
	"context"

	"github.com/jhoicas/bom-inventario-api/internal/domain"
	engine "github.com/jhoicas/bom-inventario-api/internal/domain/bom"
	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
)

// AvailabilityReport disponibilidad por parte y agregada de una plantilla.
type AvailabilityReport struct {
	BOMID   string
	Checks  []entity.AvailabilityCheck
	Summary entity.AvailabilitySummary
}

// AvailabilityUseCase cruza las partes de una plantilla con el stock actual.
// Lee siempre del almacén; no hay caché.
type AvailabilityUseCase struct {
	templates *TemplateUseCase
	inventory repository.InventoryRepository
}

// NewAvailabilityUseCase construye el caso de uso.
func NewAvailabilityUseCase(templates *TemplateUseCase, inventory repository.InventoryRepository) *AvailabilityUseCase {
	return &AvailabilityUseCase{templates: templates, inventory: inventory}
}

// Check devuelve ErrNotFound si la plantilla no existe. Partes sin registro de inventario cuentan con stock 0.
func (uc *AvailabilityUseCase) Check(ctx context.Context, bomID string) (*AvailabilityReport, error) {
	tpl, err := uc.templates.Get(ctx, bomID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(tpl.Parts))
	partNumbers := make([]string, 0, len(tpl.Parts))
	for _, p := range tpl.Parts {
		if _, ok := seen[p.PartNumber]; ok {
			continue
		}
		seen[p.PartNumber] = struct{}{}
		partNumbers = append(partNumbers, p.PartNumber)
	}

	stock := map[string]entity.InventoryItem{}
	if len(partNumbers) > 0 {
		stock, err = uc.inventory.GetMany(ctx, partNumbers)
		if err != nil {
			return nil, domain.Classify("get stock", err)
		}
	}

	checks := engine.CheckAvailability(tpl.Parts, stock)
	return &AvailabilityReport{
		BOMID:   tpl.BOMID,
		Checks:  checks,
		Summary: engine.Summarize(checks),
	}, nil
}
