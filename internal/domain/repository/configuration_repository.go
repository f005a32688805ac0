package repository

import (
	"context"

	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
)

// ConfigurationRepository lectura de la tabla configuration.
type ConfigurationRepository interface {
	// Get devuelve (nil, nil) si no existe la fila configID.
	Get(ctx context.Context, configID string) (*entity.SystemConfiguration, error)
}
