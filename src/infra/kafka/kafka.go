package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/IBM/sarama"
)

type KafkaClient struct {
	logger    *slog.Logger
	consumer  sarama.ConsumerGroup
	producer  sarama.SyncProducer
	brokers   []string
	batchSize int
}

type Message struct {
	Key      string
	Value    []byte
	Headers  map[string]string
	internal *sarama.ConsumerMessage
}

type Handler func(ctx context.Context, messages []Message) error

// NewKafkaClient cria sempre o producer; o consumer group só existe quando groupID é informado.
func NewKafkaClient(logger *slog.Logger, brokers string, groupID string, batchSize int) (*KafkaClient, error) {
	brokerList := strings.Split(brokers, ",")
	if batchSize <= 0 {
		batchSize = 1
	}

	config := sarama.NewConfig()
	config.Version = sarama.V2_8_0_0

	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Consumer.Group.Session.Timeout = 30 * time.Second
	config.Consumer.Group.Heartbeat.Interval = 10 * time.Second
	config.Consumer.MaxProcessingTime = 60 * time.Second
	config.Consumer.MaxWaitTime = 100 * time.Millisecond
	config.ChannelBufferSize = batchSize * 2

	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1024 * 1024

	producer, err := sarama.NewSyncProducer(brokerList, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	var consumer sarama.ConsumerGroup
	if groupID != "" {
		consumer, err = sarama.NewConsumerGroup(brokerList, groupID, config)
		if err != nil {
			producer.Close()
			return nil, fmt.Errorf("failed to create consumer group: %w", err)
		}
	}

	logger.Info("kafka client initialized", "brokers", brokerList, "group_id", groupID, "batch_size", batchSize)

	return &KafkaClient{
		logger:    logger,
		consumer:  consumer,
		producer:  producer,
		brokers:   brokerList,
		batchSize: batchSize,
	}, nil
}

// Consumer bloqueia até ctx ser cancelado. Lotes cujo handler falha não têm
// offset marcado e voltam a ser entregues.
func (k *KafkaClient) Consumer(ctx context.Context, handler Handler, topic string) error {
	if k.consumer == nil {
		return errors.New("kafka client was created without a consumer group")
	}

	consumerHandler := &consumerGroupHandler{
		logger:    k.logger,
		handler:   handler,
		batchSize: k.batchSize,
	}

	for {
		if err := k.consumer.Consume(ctx, []string{topic}, consumerHandler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			k.logger.Error("error consuming from topic", "topic", topic, "error", err)

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(5 * time.Second):
			}
			continue
		}

		if ctx.Err() != nil {
			k.logger.Info("kafka consumer context cancelled", "topic", topic)
			return nil
		}
	}
}

func (k *KafkaClient) Producer(messages []Message, topic string) error {
	if len(messages) == 0 {
		return nil
	}

	batchSize := len(messages)

	kafkaMessages := make([]*sarama.ProducerMessage, batchSize)
	for i, msg := range messages {
		headers := make([]sarama.RecordHeader, 0, len(msg.Headers))
		for key, value := range msg.Headers {
			headers = append(headers, sarama.RecordHeader{Key: []byte(key), Value: []byte(value)})
		}

		kafkaMessages[i] = &sarama.ProducerMessage{
			Topic:   topic,
			Key:     sarama.StringEncoder(msg.Key),
			Value:   sarama.ByteEncoder(msg.Value),
			Headers: headers,
		}
	}

	type result struct {
		err   error
		index int
	}

	resultChan := make(chan result, batchSize)

	for i, kafkaMsg := range kafkaMessages {
		go func(idx int, msg *sarama.ProducerMessage) {
			_, _, err := k.producer.SendMessage(msg)
			resultChan <- result{err: err, index: idx}
		}(i, kafkaMsg)
	}

	var errs []error
	for i := 0; i < batchSize; i++ {
		res := <-resultChan
		if res.err != nil {
			errs = append(errs, fmt.Errorf("message %d failed: %w", res.index, res.err))
		}
	}

	if len(errs) > 0 {
		k.logger.Error("kafka batch completed with errors", "topic", topic, "failed", len(errs), "total", batchSize)
		return fmt.Errorf("batch send failed: %d/%d messages failed: %w", len(errs), batchSize, errors.Join(errs...))
	}

	k.logger.Debug("kafka batch sent", "topic", topic, "count", batchSize)
	return nil
}

func (k *KafkaClient) Close() error {
	var errs []error

	if k.consumer != nil {
		if err := k.consumer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close consumer: %w", err))
		}
	}

	if err := k.producer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close producer: %w", err))
	}

	return errors.Join(errs...)
}

// consumerGroupHandler implementa sarama.ConsumerGroupHandler
type consumerGroupHandler struct {
	logger    *slog.Logger
	handler   Handler
	batchSize int
}

func (h *consumerGroupHandler) Setup(session sarama.ConsumerGroupSession) error {
	h.logger.Info("kafka consumer group session setup", "batch_size", h.batchSize)
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	h.logger.Info("kafka consumer group session cleanup")
	return nil
}

// Um lote com falha encerra a sessão sem marcar offsets; o rejoin relê a partir
// do último offset confirmado.
func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	batchTimeout := 2 * time.Second

	messages := make([]Message, 0, h.batchSize)
	timer := time.NewTimer(batchTimeout)
	defer timer.Stop()

	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return h.processBatch(session, messages)
			}

			messages = append(messages, toMessage(message))

			if len(messages) >= h.batchSize {
				if err := h.processBatch(session, messages); err != nil {
					return err
				}
				messages = messages[:0]
				timer.Reset(batchTimeout)
			}

		case <-timer.C:
			if err := h.processBatch(session, messages); err != nil {
				return err
			}
			messages = messages[:0]
			timer.Reset(batchTimeout)

		case <-session.Context().Done():
			return nil
		}
	}
}

func toMessage(message *sarama.ConsumerMessage) Message {
	headers := make(map[string]string, len(message.Headers))
	for _, header := range message.Headers {
		if header != nil {
			headers[string(header.Key)] = string(header.Value)
		}
	}

	return Message{
		Key:      string(message.Key),
		Value:    message.Value,
		Headers:  headers,
		internal: message,
	}
}

func (h *consumerGroupHandler) processBatch(session sarama.ConsumerGroupSession, messages []Message) error {
	if len(messages) == 0 {
		return nil
	}

	if err := h.handler(session.Context(), messages); err != nil {
		h.logger.Error("handler error for batch", "count", len(messages), "error", err)
		return fmt.Errorf("batch of %d messages failed: %w", len(messages), err)
	}

	for _, msg := range messages {
		if msg.internal != nil {
			session.MarkMessage(msg.internal, "")
		}
	}

	h.logger.Debug("processed kafka batch", "count", len(messages))
	return nil
}
