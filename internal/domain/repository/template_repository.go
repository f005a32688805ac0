package repository

import (
	"context"

	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
)

// TemplateRepository define el puerto de persistencia para plantillas BOM y sus partes.
// InsertHeader e InsertPart solo deben usarse dentro de una unidad de trabajo (TxRunner).
type TemplateRepository interface {
	GetHeader(ctx context.Context, bomID string) (*entity.BOMTemplate, error)
	// GetParts devuelve las partes ordenadas por número de parte.
	GetParts(ctx context.Context, bomID string) ([]entity.BOMTemplatePart, error)
	InsertHeader(ctx context.Context, header *entity.BOMTemplate) error
	InsertPart(ctx context.Context, part *entity.BOMTemplatePart) error
	// ListSummaries devuelve cabeceras con cantidad de partes y costo total, más recientes primero.
	ListSummaries(ctx context.Context) ([]entity.BOMTemplateSummary, error)
}
