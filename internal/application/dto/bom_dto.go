package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBOMTemplateRequest body para POST /api/bom/templates.
type CreateBOMTemplateRequest struct {
	Name        string                   `json:"name" validate:"required,max=255"`
	Description string                   `json:"description" validate:"max=1000"`
	CustomID    string                   `json:"custom_id,omitempty" validate:"max=50"`
	Parts       []BOMTemplatePartRequest `json:"parts" validate:"required,min=1,dive"`
}

// BOMTemplatePartRequest parte dentro de CreateBOMTemplateRequest.
type BOMTemplatePartRequest struct {
	PartNumber       string          `json:"part_number" validate:"required,max=50"`
	Description      string          `json:"description" validate:"required,max=255"`
	Category         string          `json:"category,omitempty" validate:"max=100"`
	QuantityRequired int             `json:"quantity_required" validate:"gt=0,max=2147483647"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	Supplier         string          `json:"supplier,omitempty" validate:"max=100"`
	DigikeyPN        string          `json:"digikey_pn,omitempty" validate:"max=100"`
	Availability     string          `json:"availability,omitempty" validate:"max=20"`
}

// CreateBOMTemplateResponse respuesta de creación.
type CreateBOMTemplateResponse struct {
	BOMID string `json:"bom_id"`
}

// BOMTemplatePartResponse parte de una plantilla.
type BOMTemplatePartResponse struct {
	ID               int64           `json:"id"`
	PartNumber       string          `json:"part_number"`
	Description      string          `json:"description"`
	Category         string          `json:"category,omitempty"`
	QuantityRequired int             `json:"quantity_required"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	Supplier         string          `json:"supplier,omitempty"`
	DigikeyPN        string          `json:"digikey_pn,omitempty"`
	Availability     string          `json:"availability,omitempty"`
}

// BOMTemplateResponse plantilla con sus partes.
type BOMTemplateResponse struct {
	BOMID              string                    `json:"bom_id"`
	Name               string                    `json:"name"`
	Description        string                    `json:"description"`
	Version            string                    `json:"version"`
	Status             string                    `json:"status"`
	TotalEstimatedCost decimal.Decimal           `json:"total_estimated_cost"`
	CreatedBy          string                    `json:"created_by"`
	CreatedAt          time.Time                 `json:"created_at"`
	UpdatedAt          time.Time                 `json:"updated_at"`
	Parts              []BOMTemplatePartResponse `json:"parts"`
}

// BOMTemplateSummaryResponse fila del listado de plantillas.
type BOMTemplateSummaryResponse struct {
	BOMID              string          `json:"bom_id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Version            string          `json:"version"`
	Status             string          `json:"status"`
	PartCount          int             `json:"part_count"`
	TotalEstimatedCost decimal.Decimal `json:"total_estimated_cost"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// AvailabilityCheckResponse disponibilidad de una parte.
type AvailabilityCheckResponse struct {
	PartNumber         string          `json:"part_number"`
	Description        string          `json:"description"`
	QuantityRequired   int             `json:"quantity_required"`
	CurrentStock       int             `json:"current_stock"`
	AvailableQuantity  int             `json:"available_quantity"`
	Shortage           int             `json:"shortage"`
	AvailabilityStatus string          `json:"availability_status"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	ShortageCost       decimal.Decimal `json:"shortage_cost"`
}

// AvailabilitySummaryResponse agregado de disponibilidad.
type AvailabilitySummaryResponse struct {
	TotalParts         int             `json:"total_parts"`
	AvailableParts     int             `json:"available_parts"`
	PartialParts       int             `json:"partial_parts"`
	UnavailableParts   int             `json:"unavailable_parts"`
	RequiredUnits      int             `json:"required_units"`
	ShortageUnits      int             `json:"shortage_units"`
	TotalEstimatedCost decimal.Decimal `json:"total_estimated_cost"`
	ShortageCost       decimal.Decimal `json:"shortage_cost"`
	Status             string          `json:"status"`
}

// AvailabilityReportResponse respuesta de GET /api/bom/templates/:bom_id/availability.
type AvailabilityReportResponse struct {
	BOMID   string                      `json:"bom_id"`
	Parts   []AvailabilityCheckResponse `json:"parts"`
	Summary AvailabilitySummaryResponse `json:"summary"`
}
