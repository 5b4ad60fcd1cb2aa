package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"propertylisting/src/helper/env"
	"propertylisting/src/helper/logger"
	"propertylisting/src/infra/postgres"
	"propertylisting/src/repositories"
	"propertylisting/src/services/auth"
)

// seed cria a credencial de demonstração. Nunca roda automaticamente e
// nunca sobrescreve uma credencial existente.
func main() {
	email := flag.String("email", "user@example.com", "email of the credential to create")
	password := flag.String("password", "password123", "plain password, stored as a bcrypt hash")
	flag.Parse()

	if err := env.Load(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	slogger := logger.New(os.Stdout, env.GetString("LOG_LEVEL", "info"), env.GetString("LOG_FORMAT", "text"), "property-listing-seed")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPostgresClient(
		env.MustGetString("DB_WRITE_HOST"),
		env.GetString("DB_WRITE_PORT", "5432"),
		env.MustGetString("DB_NAME"),
		env.MustGetString("DB_USER"),
		env.MustGetString("DB_PASSWORD"),
		2,
	)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	// o seed nunca emite tokens, mas o AuthService exige um emissor válido
	tokens, err := auth.NewTokenIssuer("seed-only", "property-listing-seed", time.Minute)
	if err != nil {
		log.Fatalf("Failed to create token issuer: %v", err)
	}

	authService := auth.NewAuthService(slogger, repositories.NewCredentialRepository(pool), tokens)

	inserted, err := authService.SeedCredential(ctx, *email, *password)
	if err != nil {
		log.Fatalf("Failed to seed credential: %v", err)
	}

	if !inserted {
		slogger.Info("nothing to do", "email", *email)
	}
}
