package memory

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
)

var _ repository.ConfigurationRepository = (*ConfigurationRepo)(nil)

// ConfigurationRepo configuración en memoria. Arranca vacía.
type ConfigurationRepo struct {
	s *Store
}

// Get implementa repository.ConfigurationRepository.
func (r *ConfigurationRepo) Get(ctx context.Context, configID string) (*entity.SystemConfiguration, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	cfg, ok := r.s.config[configID]
	if !ok {
		return nil, nil
	}
	return &entity.SystemConfiguration{
		Settings:      append(json.RawMessage(nil), cfg.Settings...),
		FieldMappings: append(json.RawMessage(nil), cfg.FieldMappings...),
	}, nil
}

// Put guarda o reemplaza la fila configID (carga inicial y tests).
func (r *ConfigurationRepo) Put(configID string, cfg entity.SystemConfiguration) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.config[configID] = cfg
}
