package bom

import (
	"context"

	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una única unidad de trabajo del almacén de plantillas.
// Si fn falla no queda visible ninguna escritura (Rollback); si no, Commit.
type TxRunner interface {
	RunTemplates(ctx context.Context, fn func(repo repository.TemplateRepository) error) error
}
