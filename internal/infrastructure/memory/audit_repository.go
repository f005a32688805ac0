package memory

import (
	"context"

	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
)

var _ repository.AuditSink = (*AuditRepo)(nil)

// AuditRepo guarda las entradas de auditoría en memoria.
type AuditRepo struct {
	s *Store
}

// Record implementa repository.AuditSink.
func (r *AuditRepo) Record(ctx context.Context, entry entity.AuditEntry) error {
	if err := alive(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.audit = append(r.s.audit, entry)
	return nil
}

// Entries copia de las entradas registradas, en orden de llegada.
func (r *AuditRepo) Entries() []entity.AuditEntry {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]entity.AuditEntry(nil), r.s.audit...)
}
