package processor

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/laurel/pkg/kafka"
	"github.com/Ramsey-B/laurel/pkg/models"
	"github.com/Ramsey-B/laurel/pkg/tracing"
)

// PropertyStore persists extracted properties into the corpus
type PropertyStore interface {
	Ingest(ctx context.Context, documentID string, fields models.PropertyFields) (*models.Property, error)
}

// EventPublisher emits corpus lifecycle events
type EventPublisher interface {
	PublishPropertyCreated(ctx context.Context, property *models.Property) error
}

// DocumentProcessor persists extracted valuation documents into the corpus.
// Each consumed message carries the structured fields of one document; the
// processor writes the property row plus its sub-records and emits a created
// event.
type DocumentProcessor struct {
	logger       ectologger.Logger
	propertyRepo PropertyStore
	events       EventPublisher
}

// NewDocumentProcessor creates a new document processor. events may be nil.
func NewDocumentProcessor(logger ectologger.Logger, propertyRepo PropertyStore, events EventPublisher) *DocumentProcessor {
	return &DocumentProcessor{
		logger:       logger,
		propertyRepo: propertyRepo,
		events:       events,
	}
}

// ProcessMessage handles one extracted document message. Returning an error
// leaves the message uncommitted for redelivery.
func (p *DocumentProcessor) ProcessMessage(ctx context.Context, msg *kafka.IncomingMessage) error {
	ctx, span := tracing.StartSpan(ctx, "DocumentProcessor.ProcessMessage")
	defer span.End()

	log := p.logger.WithContext(ctx).WithFields(map[string]any{
		"document_id": msg.GetDocumentID(),
		"topic":       msg.Topic,
	})

	fields := msg.GetFields()
	if len(fields) == 0 {
		// Nothing usable to persist; drop rather than redeliver forever.
		log.Warn("Extracted document carries no fields; skipping")
		return nil
	}

	created, err := p.propertyRepo.Ingest(ctx, msg.GetDocumentID(), fields)
	if err != nil {
		log.WithError(err).Error("Failed to persist extracted property")
		return err
	}

	log.WithField("property_id", created.ID).Info("Persisted extracted property")

	if p.events != nil {
		if err := p.events.PublishPropertyCreated(ctx, created); err != nil {
			// Best effort; the row is already persisted.
			log.WithError(err).Warn("Failed to publish property created event")
		}
	}

	return nil
}
