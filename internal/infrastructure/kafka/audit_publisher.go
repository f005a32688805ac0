// Package kafka publica las entradas de auditoría en un tópico de Kafka (sink opcional).
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bom-inventario-api/internal/domain"
	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
)

var _ repository.AuditSink = (*AuditPublisher)(nil)

// AuditEvent mensaje publicado por cada entrada de auditoría.
type AuditEvent struct {
	ID         string          `json:"id"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Details    json.RawMessage `json:"details"`
	ActorID    string          `json:"actor_id"`
	Success    bool            `json:"success"`
	Timestamp  time.Time       `json:"timestamp"`
}

// AuditPublisher sink de auditoría sobre un productor síncrono de sarama.
type AuditPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      zerolog.Logger
}

// NewSyncProducer crea el productor con la misma configuración de entrega que el resto de publicadores.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("%w: crear productor Kafka: %w", domain.ErrConnection, err)
	}
	return producer, nil
}

// NewAuditPublisher construye el publicador sobre un productor ya creado.
func NewAuditPublisher(producer sarama.SyncProducer, topic string, log zerolog.Logger) *AuditPublisher {
	return &AuditPublisher{producer: producer, topic: topic, log: log}
}

// Record publica la entrada con clave entity_type/entity_id para mantener el orden por entidad.
func (p *AuditPublisher) Record(ctx context.Context, e entity.AuditEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	details := e.Details
	if len(details) == 0 {
		details = json.RawMessage(`{}`)
	}
	body, err := json.Marshal(AuditEvent{
		ID:         e.ID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Details:    details,
		ActorID:    e.ActorID,
		Success:    e.Success,
		Timestamp:  e.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(e.EntityType + "/" + e.EntityID),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(e.Action)},
			{Key: []byte("event_id"), Value: []byte(e.ID)},
		},
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("%w: publicar auditoría en %s: %w", domain.ErrConnection, p.topic, err)
	}

	p.log.Debug().
		Str("audit_id", e.ID).
		Str("topic", p.topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("auditoría publicada")
	return nil
}

// Close cierra el productor.
func (p *AuditPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
