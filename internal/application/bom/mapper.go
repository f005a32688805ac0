package bom

import (
	"github.com/jhoicas/bom-inventario-api/internal/application/dto"
	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
)

// ToTemplateResponse convierte una plantilla con partes a su DTO.
func ToTemplateResponse(t entity.BOMTemplateWithParts) dto.BOMTemplateResponse {
	parts := make([]dto.BOMTemplatePartResponse, 0, len(t.Parts))
	for _, p := range t.Parts {
		parts = append(parts, dto.BOMTemplatePartResponse{
			ID:               p.ID,
			PartNumber:       p.PartNumber,
			Description:      p.Description,
			Category:         p.Category,
			QuantityRequired: p.QuantityRequired,
			UnitCost:         p.UnitCost,
			TotalCost:        p.TotalCost,
			Supplier:         p.Supplier,
			DigikeyPN:        p.DigikeyPN,
			Availability:     p.Availability,
		})
	}
	return dto.BOMTemplateResponse{
		BOMID:              t.BOMID,
		Name:               t.Name,
		Description:        t.Description,
		Version:            t.Version,
		Status:             t.Status,
		TotalEstimatedCost: t.TotalEstimatedCost,
		CreatedBy:          t.CreatedBy,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
		Parts:              parts,
	}
}

// ToSummaryResponses convierte el listado de plantillas.
func ToSummaryResponses(list []entity.BOMTemplateSummary) []dto.BOMTemplateSummaryResponse {
	out := make([]dto.BOMTemplateSummaryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.BOMTemplateSummaryResponse{
			BOMID:              s.BOMID,
			Name:               s.Name,
			Description:        s.Description,
			Version:            s.Version,
			Status:             s.Status,
			PartCount:          s.PartCount,
			TotalEstimatedCost: s.TotalCost,
			UpdatedAt:          s.UpdatedAt,
		})
	}
	return out
}

// ToAvailabilityResponse convierte el reporte de disponibilidad.
func ToAvailabilityResponse(r AvailabilityReport) dto.AvailabilityReportResponse {
	parts := make([]dto.AvailabilityCheckResponse, 0, len(r.Checks))
	for _, c := range r.Checks {
		parts = append(parts, dto.AvailabilityCheckResponse{
			PartNumber:         c.PartNumber,
			Description:        c.Description,
			QuantityRequired:   c.QuantityRequired,
			CurrentStock:       c.CurrentStock,
			AvailableQuantity:  c.AvailableQuantity,
			Shortage:           c.Shortage,
			AvailabilityStatus: string(c.Status),
			UnitCost:           c.UnitCost,
			ShortageCost:       c.ShortageCost,
		})
	}
	s := r.Summary
	return dto.AvailabilityReportResponse{
		BOMID: r.BOMID,
		Parts: parts,
		Summary: dto.AvailabilitySummaryResponse{
			TotalParts:         s.TotalParts,
			AvailableParts:     s.AvailableParts,
			PartialParts:       s.PartialParts,
			UnavailableParts:   s.UnavailableParts,
			RequiredUnits:      s.RequiredUnits,
			ShortageUnits:      s.ShortageUnits,
			TotalEstimatedCost: s.TotalEstimatedCost,
			ShortageCost:       s.ShortageCost,
			Status:             string(s.Status),
		},
	}
}
