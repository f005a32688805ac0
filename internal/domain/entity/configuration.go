package entity

import "encoding/json"

// SystemConfigID fila de configuración general del sistema.
const SystemConfigID = "system_settings"

// SystemConfiguration ajustes y mapeos de campos guardados como JSON libre.
// Un campo vacío significa que la columna es NULL.
type SystemConfiguration struct {
	Settings      json.RawMessage
	FieldMappings json.RawMessage
}
