// Package memory implementa los puertos de persistencia en memoria (STORE_DRIVER=memory).
// Sirve para desarrollo local y como almacén de los tests de aplicación y HTTP.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/bom-inventario-api/internal/domain"
	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
)

// Store estado compartido por los repositorios en memoria. Un único mutex protege todo.
type Store struct {
	mu         sync.RWMutex
	items      map[string]entity.InventoryItem
	headers    map[string]entity.BOMTemplate
	parts      map[string][]entity.BOMTemplatePart
	audit      []entity.AuditEntry
	config     map[string]entity.SystemConfiguration
	nextPartID int64
	procedure  bool
	now        func() time.Time
}

// Option configura el Store.
type Option func(*Store)

// WithoutProcedure simula un almacén sin procedimiento de stock (fuerza la estrategia directa en auto).
func WithoutProcedure() Option {
	return func(s *Store) { s.procedure = false }
}

// WithClock fija el reloj usado para last_updated.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore crea un almacén vacío.
func NewStore(opts ...Option) *Store {
	s := &Store{
		items:     make(map[string]entity.InventoryItem),
		headers:   make(map[string]entity.BOMTemplate),
		parts:     make(map[string][]entity.BOMTemplatePart),
		config:    make(map[string]entity.SystemConfiguration),
		procedure: true,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Inventory repositorio de inventario fuera de transacción.
func (s *Store) Inventory() *InventoryRepo { return &InventoryRepo{s: s} }

// Templates repositorio de plantillas fuera de transacción (solo lectura en la práctica).
func (s *Store) Templates() *TemplateRepo { return &TemplateRepo{s: s} }

// Audit sink de auditoría en memoria.
func (s *Store) Audit() *AuditRepo { return &AuditRepo{s: s} }

// Configuration tabla de configuración en memoria.
func (s *Store) Configuration() *ConfigurationRepo { return &ConfigurationRepo{s: s} }

// TxRunner unidades de trabajo sobre este almacén.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

func alive(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConnection, err)
	}
	return nil
}

func cloneItem(it entity.InventoryItem) entity.InventoryItem {
	if it.LeadTime != nil {
		lt := *it.LeadTime
		it.LeadTime = &lt
	}
	return it
}
