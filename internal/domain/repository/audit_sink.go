package repository

import (
	"context"

	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
)

// AuditSink destino de registros de auditoría. Los errores nunca se propagan a la operación original.
type AuditSink interface {
	Record(ctx context.Context, entry entity.AuditEntry) error
}
