package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"propertylisting/src/adapters/kafka/consumers"
	"propertylisting/src/helper/env"
	"propertylisting/src/helper/logger"
	"propertylisting/src/infra/kafka"
	"propertylisting/src/infra/postgres"
	"propertylisting/src/infra/redis"
	"propertylisting/src/repositories"
	"propertylisting/src/services/events"
	"propertylisting/src/services/listings"

	"go.uber.org/fx"
)

func main() {
	if err := env.Load(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newReadWriteClient,
			newRedisClient,
			newKafkaClient,
			newListingService,
			newListingImportConsumer,
		),

		// Invocations
		fx.Invoke(startConsumer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start consumer application: %v", err)
	}

	<-app.Done()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()

	if err := app.Stop(stopCtx); err != nil {
		log.Printf("Failed to stop application gracefully: %v", err)
	}
}

func newLogger() *slog.Logger {
	return logger.New(os.Stdout, env.GetString("LOG_LEVEL", "info"), env.GetString("LOG_FORMAT", "json"), "property-listing-consumer")
}

func newReadWriteClient() (*postgres.ReadWriteClient, error) {
	dbWriteHost := env.MustGetString("DB_WRITE_HOST")
	dbReadHost := env.GetString("DB_READ_HOST", dbWriteHost)
	dbReadPort := env.GetString("DB_READ_PORT", "5432")
	dbWritePort := env.GetString("DB_WRITE_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 25)

	return postgres.NewReadWriteClient(dbReadHost, dbWriteHost, dbReadPort, dbWritePort, dbname, dbUser, dbPassword, maxConnections)
}

func newRedisClient() *redis.RedisClient {
	redisHosts := env.GetString("REDIS_HOSTS")
	if redisHosts == "" {
		return nil
	}

	redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 50)
	redisDefaultTTL := time.Duration(env.GetInt("REDIS_DEFAULT_TTL_SECONDS", 120)) * time.Second

	return redis.NewRedisClient(redisHosts, redisPoolSize, redisDefaultTTL, "property-listing:")
}

func newKafkaClient(logger *slog.Logger) (*kafka.KafkaClient, error) {
	brokers := env.MustGetString("KAFKA_BROKERS")
	groupID := env.GetString("KAFKA_LISTING_IMPORT_GROUP_ID", "property-listing-import")
	batchSize := env.GetInt("KAFKA_BATCH_SIZE", 100)

	return kafka.NewKafkaClient(logger, brokers, groupID, batchSize)
}

// listings importados também geram eventos listing.created.
func newListingService(
	logger *slog.Logger,
	readWriteClient *postgres.ReadWriteClient,
	redisClient *redis.RedisClient,
	kafkaClient *kafka.KafkaClient,
) *listings.ListingService {
	store := repositories.NewListingRepository(readWriteClient.GetReadPool(), readWriteClient.GetWritePool())
	cached := repositories.NewCachedListingRepository(logger, store, redisClient)
	publisher := events.NewListingEventPublisher(logger, kafkaClient, env.GetString("KAFKA_LISTING_EVENTS_TOPIC", "listing-events"))

	return listings.NewListingService(logger, cached, publisher)
}

func newListingImportConsumer(
	logger *slog.Logger,
	listingService *listings.ListingService,
) *consumers.ListingImportConsumer {
	return consumers.NewListingImportConsumer(logger, listingService)
}

func startConsumer(
	lc fx.Lifecycle,
	logger *slog.Logger,
	readWriteClient *postgres.ReadWriteClient,
	kafkaClient *kafka.KafkaClient,
	importConsumer *consumers.ListingImportConsumer,
) {
	consumerCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := postgres.EnsureSchema(ctx, readWriteClient.GetWritePool()); err != nil {
				return err
			}

			topic := env.GetString("KAFKA_LISTING_IMPORT_TOPIC", "listing-import")

			go func() {
				defer close(done)
				if err := importConsumer.Start(consumerCtx, kafkaClient, topic); err != nil {
					logger.Error("Consumer failed", "error", err)
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()

			select {
			case <-done:
			case <-ctx.Done():
				logger.Warn("Consumer did not stop before the deadline")
			}

			logger.Info("Shutting down Kafka client...")
			if err := kafkaClient.Close(); err != nil {
				logger.Error("Failed to close Kafka client", "error", err)
				return err
			}

			readWriteClient.Close()
			logger.Info("Listing import consumer shut down gracefully")
			return nil
		},
	})
}
