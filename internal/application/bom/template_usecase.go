package bom

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/bom-inventario-api/internal/application/dto"
	"github.com/jhoicas/bom-inventario-api/internal/domain"
	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
)

// TemplateUseCase lecturas de plantillas.
type TemplateUseCase struct {
	repo repository.TemplateRepository
}

// NewTemplateUseCase construye el caso de uso.
func NewTemplateUseCase(repo repository.TemplateRepository) *TemplateUseCase {
	return &TemplateUseCase{repo: repo}
}

// Get devuelve la cabecera con sus partes ordenadas por número de parte, o ErrNotFound.
func (uc *TemplateUseCase) Get(ctx context.Context, bomID string) (*entity.BOMTemplateWithParts, error) {
	header, err := uc.header(ctx, bomID)
	if err != nil {
		return nil, err
	}
	parts, err := uc.repo.GetParts(ctx, header.BOMID)
	if err != nil {
		return nil, domain.Classify("get template parts", err)
	}
	return &entity.BOMTemplateWithParts{BOMTemplate: *header, Parts: parts}, nil
}

// List devuelve el resumen de todas las plantillas, más recientes primero.
func (uc *TemplateUseCase) List(ctx context.Context) ([]entity.BOMTemplateSummary, error) {
	list, err := uc.repo.ListSummaries(ctx)
	if err != nil {
		return nil, domain.Classify("list templates", err)
	}
	return list, nil
}

func (uc *TemplateUseCase) header(ctx context.Context, bomID string) (*entity.BOMTemplate, error) {
	bomID = strings.TrimSpace(bomID)
	if bomID == "" {
		return nil, dto.NewValidationError("bom_id", "es requerido")
	}
	header, err := uc.repo.GetHeader(ctx, bomID)
	if err != nil {
		return nil, domain.Classify("get template", err)
	}
	if header == nil {
		return nil, fmt.Errorf("%w: plantilla %s", domain.ErrNotFound, bomID)
	}
	return header, nil
}
