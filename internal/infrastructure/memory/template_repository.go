package memory

import (
	"context"
	"errors"
	"sort"

	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
)

var _ repository.TemplateRepository = (*TemplateRepo)(nil)

var errOutsideTx = errors.New("las plantillas solo se insertan dentro de una unidad de trabajo")

// TemplateRepo lecturas de plantillas en memoria. Las inserciones pasan por TxRunner.RunTemplates.
type TemplateRepo struct {
	s *Store
}

// GetHeader devuelve (nil, nil) si no existe.
func (r *TemplateRepo) GetHeader(ctx context.Context, bomID string) (*entity.BOMTemplate, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	h, ok := r.s.headers[bomID]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

// GetParts partes ordenadas por número de parte.
func (r *TemplateRepo) GetParts(ctx context.Context, bomID string) ([]entity.BOMTemplatePart, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedParts(r.s.parts[bomID]), nil
}

// InsertHeader no se admite fuera de una unidad de trabajo.
func (r *TemplateRepo) InsertHeader(context.Context, *entity.BOMTemplate) error { return errOutsideTx }

// InsertPart no se admite fuera de una unidad de trabajo.
func (r *TemplateRepo) InsertPart(context.Context, *entity.BOMTemplatePart) error { return errOutsideTx }

// ListSummaries cabeceras con cantidad de partes y costo total, más recientes primero.
func (r *TemplateRepo) ListSummaries(ctx context.Context) ([]entity.BOMTemplateSummary, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.BOMTemplateSummary, 0, len(r.s.headers))
	for id, h := range r.s.headers {
		parts := r.s.parts[id]
		out = append(out, entity.BOMTemplateSummary{
			BOMTemplate: h,
			PartCount:   len(parts),
			TotalCost:   entity.SumTotalCost(parts),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].BOMID < out[j].BOMID
	})
	return out, nil
}

func sortedParts(parts []entity.BOMTemplatePart) []entity.BOMTemplatePart {
	out := append([]entity.BOMTemplatePart(nil), parts...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PartNumber != out[j].PartNumber {
			return out[i].PartNumber < out[j].PartNumber
		}
		return out[i].ID < out[j].ID
	})
	if out == nil {
		out = []entity.BOMTemplatePart{}
	}
	return out
}
