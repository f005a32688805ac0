package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
)

var _ repository.ConfigurationRepository = (*ConfigurationRepo)(nil)

// ConfigurationRepo lee la tabla configuration.
type ConfigurationRepo struct {
	q Querier
}

// NewConfigurationRepository construye el adaptador.
func NewConfigurationRepository(q Querier) *ConfigurationRepo {
	return &ConfigurationRepo{q: q}
}

// Get implementa repository.ConfigurationRepository. Columnas NULL quedan vacías.
func (r *ConfigurationRepo) Get(ctx context.Context, configID string) (*entity.SystemConfiguration, error) {
	var settings, mappings []byte
	err := r.q.QueryRow(ctx,
		`SELECT settings, field_mappings FROM configuration WHERE config_id = $1`, configID,
	).Scan(&settings, &mappings)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get configuration", err)
	}
	return &entity.SystemConfiguration{Settings: settings, FieldMappings: mappings}, nil
}
