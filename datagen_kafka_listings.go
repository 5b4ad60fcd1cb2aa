//go:build datagen_kafka_listings
// +build datagen_kafka_listings

package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"propertylisting/src/domain"
	"propertylisting/src/domain/entities"
	"propertylisting/src/infra/kafka"

	"github.com/go-faker/faker/v4"
	"github.com/shopspring/decimal"
)

// generateImportRequest cria um payload de criação; invalidPerc controla quantos
// saem sem preço para exercitar o descarte no consumer.
func generateImportRequest(invalidPerc float64) domain.CreateListingRequest {
	address := faker.GetRealAddress()
	listingType := entities.ListingTypes[rand.Intn(len(entities.ListingTypes))]
	price := decimal.NewFromInt(int64(50_000 + rand.Intn(1_950_000)))
	bedrooms := 1 + rand.Intn(5)
	area := float64(40 + rand.Intn(400))

	request := domain.CreateListingRequest{
		Title:       faker.Sentence(),
		Description: faker.Paragraph(),
		Price:       &price,
		Address:     address.Address,
		City:        address.City,
		Country:     "USA",
		Bedrooms:    &bedrooms,
		Area:        &area,
		Type:        &listingType,
	}

	if rand.Float64()*100 < invalidPerc {
		request.Price = nil
	}

	return request
}

func main() {
	totalMessages := flag.Int("count", 1000, "Total number of messages to generate. Use -1 for infinite.")
	batchSize := flag.Int("batch-size", 100, "Number of messages per batch")
	topic := flag.String("topic", "listing-import", "Kafka topic to send messages to")
	brokers := flag.String("brokers", "", "Kafka brokers (comma-separated) (required)")
	invalidPerc := flag.Float64("invalid-perc", 0, "Percentage of payloads generated without a price")
	delayMs := flag.Int("delay-ms", 100, "Delay in milliseconds between batches")
	flag.Parse()

	if *brokers == "" {
		log.Fatal("The 'brokers' flag is required")
	}

	isInfinite := *totalMessages == -1
	if isInfinite {
		log.Printf("Starting Kafka datagen in INFINITE mode with batches of %d", *batchSize)
	} else {
		log.Printf("Starting Kafka datagen with %d messages in batches of %d", *totalMessages, *batchSize)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	kafkaClient, err := kafka.NewKafkaClient(logger, *brokers, "", *batchSize)
	if err != nil {
		log.Fatalf("Failed to create Kafka client: %v", err)
	}
	defer kafkaClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal, stopping...")
		cancel()
	}()

	messagesSent := 0
	startTime := time.Now()

	for isInfinite || messagesSent < *totalMessages {
		select {
		case <-ctx.Done():
			log.Println("Shutdown requested, stopping message generation")
			return
		default:
		}

		currentBatchSize := *batchSize
		if !isInfinite && *totalMessages-messagesSent < currentBatchSize {
			currentBatchSize = *totalMessages - messagesSent
		}

		kafkaMessages := make([]kafka.Message, 0, currentBatchSize)
		for i := 0; i < currentBatchSize; i++ {
			payload, err := json.Marshal(generateImportRequest(*invalidPerc))
			if err != nil {
				log.Printf("Failed to marshal message: %v", err)
				continue
			}

			kafkaMessages = append(kafkaMessages, kafka.Message{
				Key:   faker.UUIDHyphenated(),
				Value: payload,
			})
		}

		if err := kafkaClient.Producer(kafkaMessages, *topic); err != nil {
			log.Printf("Failed to send batch: %v", err)
			continue
		}

		messagesSent += len(kafkaMessages)

		if messagesSent%500 == 0 || (!isInfinite && messagesSent == *totalMessages) {
			rate := float64(messagesSent) / time.Since(startTime).Seconds()
			log.Printf("Sent %d messages (%.1f msg/sec)", messagesSent, rate)
		}

		if *delayMs > 0 && (isInfinite || messagesSent < *totalMessages) {
			time.Sleep(time.Duration(*delayMs) * time.Millisecond)
		}
	}

	elapsed := time.Since(startTime)
	log.Printf("✅ Completed! Sent %d messages in %v (%.1f msg/sec)", messagesSent, elapsed, float64(messagesSent)/elapsed.Seconds())
}
