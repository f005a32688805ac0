package dto

import "encoding/json"

// SystemConfigurationResponse configuración general. Sin fila configurada se serializa como {}.
type SystemConfigurationResponse struct {
	Settings      json.RawMessage `json:"settings,omitempty" swaggertype:"object"`
	FieldMappings json.RawMessage `json:"fieldMappings,omitempty" swaggertype:"object"`
}
