// Package audit registra las acciones mutantes del núcleo sin bloquear ni hacer fallar la operación original.
package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
	"github.com/jhoicas/bom-inventario-api/pkg/metrics"
)

const (
	defaultTimeout     = 5 * time.Second
	defaultMaxInFlight = 64
)

// Config límites del registrador.
type Config struct {
	Timeout     time.Duration // tiempo máximo por escritura
	MaxInFlight int           // escrituras simultáneas; al superarse se descarta la entrada
}

// Recorder escribe entradas de auditoría en segundo plano (fire-and-forget).
// Un Recorder sin sink no hace nada.
type Recorder struct {
	sink    repository.AuditSink
	log     zerolog.Logger
	metrics *metrics.BOMMetrics
	timeout time.Duration
	slots   chan struct{}
	wg      sync.WaitGroup
	now     func() time.Time
}

// NewRecorder construye el registrador. sink puede ser nil (auditoría deshabilitada).
func NewRecorder(sink repository.AuditSink, cfg Config, log zerolog.Logger, m *metrics.BOMMetrics) *Recorder {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = defaultMaxInFlight
	}
	return &Recorder{
		sink:    sink,
		log:     log,
		metrics: m,
		timeout: cfg.Timeout,
		slots:   make(chan struct{}, cfg.MaxInFlight),
		now:     time.Now,
	}
}

// Record arma la entrada y la escribe en una goroutine con contexto desacoplado del de la petición.
// Nunca bloquea: si ya hay MaxInFlight escrituras en curso, la entrada se descarta con un warning.
func (r *Recorder) Record(ctx context.Context, action, entityType, entityID string, details any, actorID string) {
	if r == nil || r.sink == nil {
		return
	}
	if actorID == "" {
		actorID = entity.AuditSystemActor
	}
	entry := entity.AuditEntry{
		ID:         uuid.New().String(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    r.encode(details),
		ActorID:    actorID,
		Success:    true,
		Timestamp:  r.now().UTC(),
	}

	select {
	case r.slots <- struct{}{}:
	default:
		r.metrics.IncAuditDropped()
		r.log.Warn().
			Str("action", action).
			Str("entity_type", entityType).
			Str("entity_id", entityID).
			Msg("auditoría descartada: demasiadas escrituras en curso")
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() { <-r.slots }()

		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()
		if err := r.sink.Record(wctx, entry); err != nil {
			r.metrics.IncAuditFailure()
			r.log.Error().Err(err).
				Str("audit_id", entry.ID).
				Str("action", action).
				Str("entity_id", entityID).
				Msg("error registrando auditoría")
		}
	}()
}

// Wait espera a que terminen las escrituras en curso (apagado ordenado y tests).
func (r *Recorder) Wait() {
	if r == nil {
		return
	}
	r.wg.Wait()
}

func (r *Recorder) encode(details any) json.RawMessage {
	if details == nil {
		return json.RawMessage(`{}`)
	}
	b, err := json.Marshal(details)
	if err != nil {
		r.log.Warn().Err(err).Msg("detalle de auditoría no serializable")
		return json.RawMessage(`{}`)
	}
	return b
}
