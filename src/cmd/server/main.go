package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	httpadapter "propertylisting/src/adapters/http"
	"propertylisting/src/helper/env"
	"propertylisting/src/helper/logger"
	"propertylisting/src/infra/kafka"
	"propertylisting/src/infra/postgres"
	"propertylisting/src/infra/redis"
	"propertylisting/src/repositories"
	"propertylisting/src/services/auth"
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
			newEventPublisher,
			newListingRepository,
			newCredentialRepository,
			newListingService,
			newTokenIssuer,
			newAuthService,
			newServer,
		),

		// Invocations
		fx.Invoke(registerInfraHooks, registerServerHooks),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	<-app.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.Stop(stopCtx); err != nil {
		log.Printf("Failed to stop application gracefully: %v", err)
	}
}

func newLogger() *slog.Logger {
	return logger.New(os.Stdout, env.GetString("LOG_LEVEL", "info"), env.GetString("LOG_FORMAT", "json"), "property-listing-api")
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

// newRedisClient devolve nil quando REDIS_HOSTS não está definido; o cache fica desligado.
func newRedisClient(logger *slog.Logger) *redis.RedisClient {
	redisHosts := env.GetString("REDIS_HOSTS")
	if redisHosts == "" {
		logger.Info("REDIS_HOSTS not set, listing cache disabled")
		return nil
	}

	redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 50)
	redisDefaultTTLSeconds := env.GetInt("REDIS_DEFAULT_TTL_SECONDS", 120)
	redisDefaultTTL := time.Duration(redisDefaultTTLSeconds) * time.Second

	return redis.NewRedisClient(redisHosts, redisPoolSize, redisDefaultTTL, "property-listing:")
}

// newKafkaClient devolve nil quando KAFKA_BROKERS não está definido; nenhum evento é publicado.
func newKafkaClient(logger *slog.Logger) (*kafka.KafkaClient, error) {
	brokers := env.GetString("KAFKA_BROKERS")
	if brokers == "" {
		logger.Info("KAFKA_BROKERS not set, listing events disabled")
		return nil, nil
	}

	return kafka.NewKafkaClient(logger, brokers, "", 1)
}

func newEventPublisher(logger *slog.Logger, kafkaClient *kafka.KafkaClient) listings.EventPublisher {
	if kafkaClient == nil {
		return nil
	}

	topic := env.GetString("KAFKA_LISTING_EVENTS_TOPIC", "listing-events")
	return events.NewListingEventPublisher(logger, kafkaClient, topic)
}

func newListingRepository(
	logger *slog.Logger,
	readWriteClient *postgres.ReadWriteClient,
	redisClient *redis.RedisClient,
) listings.ListingRepository {
	store := repositories.NewListingRepository(readWriteClient.GetReadPool(), readWriteClient.GetWritePool())
	return repositories.NewCachedListingRepository(logger, store, redisClient)
}

func newCredentialRepository(readWriteClient *postgres.ReadWriteClient) auth.CredentialRepository {
	return repositories.NewCredentialRepository(readWriteClient.GetWritePool())
}

func newListingService(
	logger *slog.Logger,
	repository listings.ListingRepository,
	publisher listings.EventPublisher,
) *listings.ListingService {
	return listings.NewListingService(logger, repository, publisher)
}

func newTokenIssuer() (*auth.TokenIssuer, error) {
	return auth.NewTokenIssuer(
		env.MustGetString("JWT_SECRET"),
		env.GetString("JWT_ISSUER", "property-listing-api"),
		env.GetDuration("JWT_TTL", time.Hour),
	)
}

func newAuthService(
	logger *slog.Logger,
	credentials auth.CredentialRepository,
	tokens *auth.TokenIssuer,
) *auth.AuthService {
	return auth.NewAuthService(logger, credentials, tokens)
}

func newServer(
	logger *slog.Logger,
	listingService *listings.ListingService,
	authService *auth.AuthService,
	tokens *auth.TokenIssuer,
	readWriteClient *postgres.ReadWriteClient,
	redisClient *redis.RedisClient,
) *httpadapter.Server {
	addr := env.GetString("SERVER_ADDR", ":8888")

	healthChecks := []httpadapter.HealthCheck{
		{Name: "postgres", Check: readWriteClient.HealthCheck},
	}
	if redisClient != nil {
		healthChecks = append(healthChecks, httpadapter.HealthCheck{Name: "redis", Check: redisClient.HealthCheck})
	}

	return httpadapter.NewServer(logger, addr, listingService, authService, tokens, healthChecks...)
}

// registerInfraHooks aplica o schema na subida e fecha as conexões na descida.
func registerInfraHooks(
	lc fx.Lifecycle,
	logger *slog.Logger,
	readWriteClient *postgres.ReadWriteClient,
	redisClient *redis.RedisClient,
	kafkaClient *kafka.KafkaClient,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return postgres.EnsureSchema(ctx, readWriteClient.GetWritePool())
		},
		OnStop: func(ctx context.Context) error {
			if kafkaClient != nil {
				if err := kafkaClient.Close(); err != nil {
					logger.Error("Failed to close Kafka client", "error", err)
				}
			}
			if redisClient != nil {
				if err := redisClient.Close(); err != nil {
					logger.Error("Failed to close Redis client", "error", err)
				}
			}
			readWriteClient.Close()
			return nil
		},
	})
}

// registerServerHooks registers lifecycle hooks for the HTTP server
func registerServerHooks(lc fx.Lifecycle, logger *slog.Logger, srv *httpadapter.Server, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil {
					logger.Error("Server failed", "error", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Server forced to shutdown", "error", err)
				return err
			}
			logger.Info("Server exited gracefully")
			return nil
		},
	})
}
