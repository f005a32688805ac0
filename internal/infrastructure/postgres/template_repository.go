package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
)

var _ repository.TemplateRepository = (*TemplateRepo)(nil)

// TemplateRepo implementación de TemplateRepository sobre PostgreSQL (usable con pool o tx).
type TemplateRepo struct {
	q Querier
}

// NewTemplateRepository construye el adaptador de plantillas. Pasar pool o tx (Querier).
func NewTemplateRepository(q Querier) *TemplateRepo {
	return &TemplateRepo{q: q}
}

// GetHeader obtiene la cabecera; (nil, nil) si no existe.
func (r *TemplateRepo) GetHeader(ctx context.Context, bomID string) (*entity.BOMTemplate, error) {
	query := `
		SELECT bom_id, name, description, version, status, total_estimated_cost, created_by, created_at, updated_at
		FROM bom_templates WHERE bom_id = $1`
	var t entity.BOMTemplate
	err := r.q.QueryRow(ctx, query, bomID).Scan(
		&t.BOMID, &t.Name, &t.Description, &t.Version, &t.Status, &t.TotalEstimatedCost,
		&t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get bom template", err)
	}
	return &t, nil
}

// GetParts partes de la plantilla ordenadas por número de parte.
func (r *TemplateRepo) GetParts(ctx context.Context, bomID string) ([]entity.BOMTemplatePart, error) {
	query := `
		SELECT id, bom_id, part_number, description, COALESCE(category, ''), quantity_required,
			unit_cost, total_cost, COALESCE(supplier, ''), COALESCE(digikey_pn, ''), availability
		FROM bom_template_parts
		WHERE bom_id = $1
		ORDER BY part_number, id`
	rows, err := r.q.Query(ctx, query, bomID)
	if err != nil {
		return nil, classify("get bom template parts", err)
	}
	defer rows.Close()

	parts := []entity.BOMTemplatePart{}
	for rows.Next() {
		var p entity.BOMTemplatePart
		if err := rows.Scan(
			&p.ID, &p.BOMID, &p.PartNumber, &p.Description, &p.Category, &p.QuantityRequired,
			&p.UnitCost, &p.TotalCost, &p.Supplier, &p.DigikeyPN, &p.Availability,
		); err != nil {
			return nil, fmt.Errorf("get bom template parts scan: %w", err)
		}
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("get bom template parts", err)
	}
	return parts, nil
}

// InsertHeader inserta la cabecera. bom_id duplicado → domain.ErrDuplicateKey.
func (r *TemplateRepo) InsertHeader(ctx context.Context, h *entity.BOMTemplate) error {
	query := `
		INSERT INTO bom_templates (bom_id, name, description, version, status, total_estimated_cost, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		h.BOMID, h.Name, h.Description, h.Version, h.Status, h.TotalEstimatedCost, h.CreatedBy, h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		return classify("insert bom template", err)
	}
	return nil
}

// InsertPart inserta una parte y completa su ID generado.
func (r *TemplateRepo) InsertPart(ctx context.Context, p *entity.BOMTemplatePart) error {
	query := `
		INSERT INTO bom_template_parts (bom_id, part_number, description, category, quantity_required,
			unit_cost, total_cost, supplier, digikey_pn, availability)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.BOMID, p.PartNumber, p.Description, p.Category, p.QuantityRequired,
		p.UnitCost, p.TotalCost, p.Supplier, p.DigikeyPN, p.Availability,
	).Scan(&p.ID)
	if err != nil {
		return classify("insert bom template part", err)
	}
	return nil
}

// ListSummaries cabeceras con cantidad de partes y suma de costos, más recientes primero.
func (r *TemplateRepo) ListSummaries(ctx context.Context) ([]entity.BOMTemplateSummary, error) {
	query := `
		SELECT t.bom_id, t.name, t.description, t.version, t.status, t.total_estimated_cost,
			t.created_by, t.created_at, t.updated_at,
			COUNT(p.id) AS part_count,
			COALESCE(SUM(p.total_cost), 0) AS total_cost
		FROM bom_templates t
		LEFT JOIN bom_template_parts p ON p.bom_id = t.bom_id
		GROUP BY t.bom_id
		ORDER BY t.updated_at DESC, t.bom_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, classify("list bom templates", err)
	}
	defer rows.Close()

	list := []entity.BOMTemplateSummary{}
	for rows.Next() {
		var s entity.BOMTemplateSummary
		if err := rows.Scan(
			&s.BOMID, &s.Name, &s.Description, &s.Version, &s.Status, &s.TotalEstimatedCost,
			&s.CreatedBy, &s.CreatedAt, &s.UpdatedAt, &s.PartCount, &s.TotalCost,
		); err != nil {
			return nil, fmt.Errorf("list bom templates scan: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list bom templates", err)
	}
	return list, nil
}
