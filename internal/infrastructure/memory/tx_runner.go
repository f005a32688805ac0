package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/bom-inventario-api/internal/application/bom"
	"github.com/jhoicas/bom-inventario-api/internal/application/inventory"
	"github.com/jhoicas/bom-inventario-api/internal/domain"
	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
)

var (
	_ bom.TxRunner       = (*TxRunner)(nil)
	_ inventory.TxRunner = (*TxRunner)(nil)
)

// TxRunner unidades de trabajo en memoria.
type TxRunner struct {
	s *Store
}

// RunInventory ejecuta fn con el lock exclusivo del Store tomado (equivale a SELECT FOR UPDATE).
// Los cambios de fn se aplican directamente; si fn falla se restaura el estado previo.
func (r *TxRunner) RunInventory(ctx context.Context, fn func(repo repository.InventoryRepository) error) error {
	if err := alive(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snapshot := make(map[string]entity.InventoryItem, len(r.s.items))
	for k, v := range r.s.items {
		snapshot[k] = v
	}
	if err := fn(&InventoryRepo{s: r.s, locked: true}); err != nil {
		r.s.items = snapshot
		return err
	}
	return nil
}

// RunTemplates acumula las escrituras en un área de preparación y las aplica juntas al final,
// bajo un único lock. Si fn falla no se aplica nada.
func (r *TxRunner) RunTemplates(ctx context.Context, fn func(repo repository.TemplateRepository) error) error {
	if err := alive(ctx); err != nil {
		return err
	}
	tx := &templateTx{s: r.s, parts: map[string][]entity.BOMTemplatePart{}}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.commit()
}

// templateTx repositorio atado a una unidad de trabajo de plantillas.
type templateTx struct {
	s       *Store
	headers []entity.BOMTemplate
	parts   map[string][]entity.BOMTemplatePart
}

func (t *templateTx) stagedHeader(bomID string) (*entity.BOMTemplate, bool) {
	for i := range t.headers {
		if t.headers[i].BOMID == bomID {
			return &t.headers[i], true
		}
	}
	return nil, false
}

func (t *templateTx) GetHeader(ctx context.Context, bomID string) (*entity.BOMTemplate, error) {
	if h, ok := t.stagedHeader(bomID); ok {
		cp := *h
		return &cp, nil
	}
	return t.s.Templates().GetHeader(ctx, bomID)
}

func (t *templateTx) GetParts(ctx context.Context, bomID string) ([]entity.BOMTemplatePart, error) {
	if _, ok := t.stagedHeader(bomID); ok {
		return sortedParts(t.parts[bomID]), nil
	}
	return t.s.Templates().GetParts(ctx, bomID)
}

func (t *templateTx) InsertHeader(ctx context.Context, h *entity.BOMTemplate) error {
	if err := alive(ctx); err != nil {
		return err
	}
	if _, ok := t.stagedHeader(h.BOMID); ok {
		return fmt.Errorf("%w: bom_id %s", domain.ErrDuplicateKey, h.BOMID)
	}
	t.s.mu.RLock()
	_, exists := t.s.headers[h.BOMID]
	t.s.mu.RUnlock()
	if exists {
		return fmt.Errorf("%w: bom_id %s", domain.ErrDuplicateKey, h.BOMID)
	}
	t.headers = append(t.headers, *h)
	return nil
}

func (t *templateTx) InsertPart(ctx context.Context, p *entity.BOMTemplatePart) error {
	if err := alive(ctx); err != nil {
		return err
	}
	if _, ok := t.stagedHeader(p.BOMID); !ok {
		return fmt.Errorf("parte %s: la plantilla %s no existe en esta unidad de trabajo", p.PartNumber, p.BOMID)
	}
	t.parts[p.BOMID] = append(t.parts[p.BOMID], *p)
	return nil
}

func (t *templateTx) ListSummaries(ctx context.Context) ([]entity.BOMTemplateSummary, error) {
	return t.s.Templates().ListSummaries(ctx)
}

func (t *templateTx) commit() error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	// Otra unidad pudo confirmar el mismo bom_id mientras esta preparaba sus filas.
	for _, h := range t.headers {
		if _, exists := t.s.headers[h.BOMID]; exists {
			return fmt.Errorf("%w: bom_id %s", domain.ErrDuplicateKey, h.BOMID)
		}
	}
	for _, h := range t.headers {
		t.s.headers[h.BOMID] = h
		staged := t.parts[h.BOMID]
		parts := make([]entity.BOMTemplatePart, 0, len(staged))
		for _, p := range staged {
			t.s.nextPartID++
			p.ID = t.s.nextPartID
			parts = append(parts, p)
		}
		t.s.parts[h.BOMID] = parts
	}
	return nil
}
