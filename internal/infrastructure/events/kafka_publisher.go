package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	appledger "github.com/jhoicas/rutastock-api/internal/application/ledger"
	"github.com/jhoicas/rutastock-api/pkg/logger"
)

var _ appledger.EventPublisher = (*KafkaPublisher)(nil)

// KafkaPublisher publica los eventos del ledger a un topic Kafka para
// consumidores externos (alertas de stock bajo, dashboards). Best-effort:
// los errores de publicación se registran y no afectan la operación confirmada.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *logger.Logger
}

// NewKafkaPublisher construye el publisher. La clave del mensaje es el driver_id
// para que los eventos de un mismo conductor conserven el orden de partición.
func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaPublisher{writer: writer, log: log}
}

// Publish serializa el evento a JSON y lo escribe al topic.
func (p *KafkaPublisher) Publish(ctx context.Context, event appledger.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.DriverID),
		Value: payload,
	})
	if err != nil {
		p.log.Error().Err(err).
			Str("type", event.Type).
			Str("driver_id", event.DriverID).
			Msg("publicar evento del ledger")
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// Close cierra el writer y vacía los batches pendientes.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
