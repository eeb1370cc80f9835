package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/segmentio/kafka-go"

	"github.com/Ramsey-B/laurel/pkg/models"
	"github.com/Ramsey-B/laurel/pkg/tracing"
)

// Producer handles Kafka event emission
type Producer struct {
	writer *kafka.Writer
	logger ectologger.Logger
	topic  string
}

// ProducerConfig holds Kafka producer configuration
type ProducerConfig struct {
	Brokers      []string
	Topic        string
	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int
	Compression  string
}

// NewProducer creates a new Kafka producer
func NewProducer(cfg ProducerConfig, logger ectologger.Logger) *Producer {
	compression := kafka.Snappy
	switch cfg.Compression {
	case "gzip":
		compression = kafka.Gzip
	case "lz4":
		compression = kafka.Lz4
	case "zstd":
		compression = kafka.Zstd
	case "none":
		compression = 0
	}

	requiredAcks := kafka.RequiredAcks(cfg.RequiredAcks)

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           requiredAcks,
		Compression:            compression,
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer: writer,
		logger: logger,
		topic:  cfg.Topic,
	}
}

// Close closes the producer
func (p *Producer) Close() error {
	return p.writer.Close()
}

// PropertyEvent represents an event about a corpus property
type PropertyEvent struct {
	EventType  string          `json:"event_type"` // created, comparable.selected
	PropertyID string          `json:"property_id"`
	SubjectID  string          `json:"subject_id,omitempty"`
	Score      float64         `json:"score,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

// PublishPropertyEvent publishes a property event to Kafka
func (p *Producer) PublishPropertyEvent(ctx context.Context, event *PropertyEvent) error {
	ctx, span := tracing.StartSpan(ctx, "kafka.Producer.PublishPropertyEvent")
	defer span.End()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.PropertyID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.WithContext(ctx).WithError(err).Error("Failed to publish property event")
		return err
	}

	p.logger.WithContext(ctx).WithFields(map[string]any{
		"event_type":  event.EventType,
		"property_id": event.PropertyID,
	}).Debug("Published property event")

	return nil
}

// PublishPropertyCreated publishes a created event for a new corpus row
func (p *Producer) PublishPropertyCreated(ctx context.Context, property *models.Property) error {
	data, err := json.Marshal(property)
	if err != nil {
		return err
	}

	return p.PublishPropertyEvent(ctx, &PropertyEvent{
		EventType:  "property.created",
		PropertyID: property.ID,
		Data:       data,
	})
}

// PublishComparableSelected publishes an event when a comparable is chosen
// for a report.
func (p *Producer) PublishComparableSelected(ctx context.Context, subjectID string, selected models.ScoredCandidate) error {
	return p.PublishPropertyEvent(ctx, &PropertyEvent{
		EventType:  "comparable.selected",
		PropertyID: selected.Candidate.ID,
		SubjectID:  subjectID,
		Score:      selected.Score,
	})
}
