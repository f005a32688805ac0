package bom

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/bom-inventario-api/internal/application/dto"
	"github.com/jhoicas/bom-inventario-api/internal/domain"
	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
)

var emptyObject = json.RawMessage(`{}`)

// ConfigurationUseCase lectura de la configuración del sistema.
type ConfigurationUseCase struct {
	repo repository.ConfigurationRepository
}

// NewConfigurationUseCase construye el caso de uso.
func NewConfigurationUseCase(repo repository.ConfigurationRepository) *ConfigurationUseCase {
	return &ConfigurationUseCase{repo: repo}
}

// System devuelve la fila system_settings. Sin fila la respuesta queda vacía;
// con fila, cada columna NULL se devuelve como objeto vacío.
func (uc *ConfigurationUseCase) System(ctx context.Context) (dto.SystemConfigurationResponse, error) {
	cfg, err := uc.repo.Get(ctx, entity.SystemConfigID)
	if err != nil {
		return dto.SystemConfigurationResponse{}, domain.Classify("get system configuration", err)
	}
	if cfg == nil {
		return dto.SystemConfigurationResponse{}, nil
	}
	return dto.SystemConfigurationResponse{
		Settings:      orEmptyObject(cfg.Settings),
		FieldMappings: orEmptyObject(cfg.FieldMappings),
	}, nil
}

func orEmptyObject(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return emptyObject
	}
	return raw
}
