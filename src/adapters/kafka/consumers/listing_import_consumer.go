package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"propertylisting/src/domain"
	"propertylisting/src/infra/kafka"
)

type ListingCreator interface {
	Create(ctx context.Context, request domain.CreateListingRequest) (*domain.ListingResponse, error)
}

// MessageSource é a parte do KafkaClient usada para consumir.
type MessageSource interface {
	Consumer(ctx context.Context, handler kafka.Handler, topic string) error
}

// ListingImportConsumer cria listings a partir de payloads de criação publicados no Kafka.
type ListingImportConsumer struct {
	logger  *slog.Logger
	creator ListingCreator
}

func NewListingImportConsumer(
	logger *slog.Logger,
	creator ListingCreator,
) *ListingImportConsumer {
	return &ListingImportConsumer{
		logger:  logger,
		creator: creator,
	}
}

func (c *ListingImportConsumer) Start(ctx context.Context, source MessageSource, topic string) error {
	c.logger.Info("Starting listing import consumer", "topic", topic)
	return source.Consumer(ctx, c.HandleMessages, topic)
}

// HandleMessages descarta (com log) mensagens ilegíveis ou inválidas. Qualquer
// outra falha interrompe o lote para que ele seja reentregue.
func (c *ListingImportConsumer) HandleMessages(ctx context.Context, messages []kafka.Message) error {
	if len(messages) == 0 {
		return nil
	}

	created, skipped := 0, 0

	for _, msg := range messages {
		var request domain.CreateListingRequest
		if err := json.Unmarshal(msg.Value, &request); err != nil {
			c.logger.Error("Failed to unmarshal listing import message",
				"error", err,
				"key", msg.Key)
			skipped++
			continue
		}

		listing, err := c.creator.Create(ctx, request)
		if err != nil {
			var validationErr *domain.ValidationError
			if errors.As(err, &validationErr) {
				c.logger.Warn("Skipping invalid listing import message",
					"key", msg.Key,
					"violations", validationErr.Violations)
				skipped++
				continue
			}
			return fmt.Errorf("ListingImportConsumer.HandleMessages - failed to create listing from message %s: %w", msg.Key, err)
		}

		c.logger.Debug("Imported listing", "key", msg.Key, "listing_id", listing.ID.String())
		created++
	}

	c.logger.Info("Processed listing import batch", "created", created, "skipped", skipped)
	return nil
}
