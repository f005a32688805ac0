package entity

import (
	"encoding/json"
	"time"
)

// Acciones y tipos de entidad registrados en auditoría.
const (
	AuditActionCreate      = "CREATE"
	AuditActionUpdateStock = "UPDATE_STOCK"

	AuditEntityBOMTemplate   = "bom_template"
	AuditEntityInventoryItem = "inventory_item"

	AuditSystemActor = "system"
)

// AuditEntry registro de una acción mutante.
type AuditEntry struct {
	ID         string
	Action     string
	EntityType string
	EntityID   string
	Details    json.RawMessage
	ActorID    string
	Success    bool
	Timestamp  time.Time
}
