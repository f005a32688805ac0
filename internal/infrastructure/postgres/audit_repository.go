package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
)

var _ repository.AuditSink = (*AuditRepo)(nil)

// AuditRepo escribe en audit_log usando el pool, fuera de la transacción de la operación auditada.
type AuditRepo struct {
	pool *pgxpool.Pool
}

// NewAuditRepository construye el sink de auditoría.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

// Record implementa repository.AuditSink.
func (r *AuditRepo) Record(ctx context.Context, e entity.AuditEntry) error {
	query := `
		INSERT INTO audit_log (id, action, entity_type, entity_id, details, user_id, success, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	details := e.Details
	if len(details) == 0 {
		details = []byte(`{}`)
	}
	_, err := r.pool.Exec(ctx, query,
		e.ID, e.Action, e.EntityType, e.EntityID, string(details), e.ActorID, e.Success, e.Timestamp,
	)
	if err != nil {
		return classify("insert audit_log", err)
	}
	return nil
}
