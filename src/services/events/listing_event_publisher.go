package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"propertylisting/src/domain"
	"propertylisting/src/infra/kafka"
)

// KafkaProducer é a parte do KafkaClient usada para publicar.
type KafkaProducer interface {
	Producer(messages []kafka.Message, topic string) error
}

type ListingEventPublisher struct {
	logger   *slog.Logger
	producer KafkaProducer
	topic    string
}

func NewListingEventPublisher(
	logger *slog.Logger,
	producer KafkaProducer,
	topic string,
) *ListingEventPublisher {
	return &ListingEventPublisher{
		logger:   logger,
		producer: producer,
		topic:    topic,
	}
}

// PublishListingEvent envia o evento particionado pelo id do listing, preservando
// a ordem das mudanças de um mesmo registro.
func (p *ListingEventPublisher) PublishListingEvent(ctx context.Context, event domain.ListingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("ListingEventPublisher.PublishListingEvent - failed to marshal event %s: %w", event.EventID, err)
	}

	message := kafka.Message{
		Key:     event.ListingID.String(),
		Value:   payload,
		Headers: p.createEventHeaders(event),
	}

	if err := p.producer.Producer([]kafka.Message{message}, p.topic); err != nil {
		return fmt.Errorf("ListingEventPublisher.PublishListingEvent - failed to publish to topic %s: %w", p.topic, err)
	}

	p.logger.Debug("listing event published",
		"topic", p.topic,
		"event_id", event.EventID.String(),
		"event_type", event.EventType,
		"listing_id", event.ListingID.String())

	return nil
}

// createEventHeaders permite que consumidores filtrem sem desserializar o payload.
func (p *ListingEventPublisher) createEventHeaders(event domain.ListingEvent) map[string]string {
	headers := map[string]string{
		"event_type":     string(event.EventType),
		"source_service": "property-listing-api",
		"schema_version": "v1",
		"event_id":       event.EventID.String(),
	}

	if event.Listing != nil {
		headers["listing_type"] = string(event.Listing.Type)
	}

	return headers
}
