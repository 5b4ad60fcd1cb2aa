package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"propertylisting/src/domain"
	"propertylisting/src/domain/entities"

	"golang.org/x/crypto/bcrypt"
)

// CredentialRepository devolve nil, nil em FindByEmail quando o email não existe.
// Insert nunca sobrescreve: devolve false se a credencial já existia.
type CredentialRepository interface {
	FindByEmail(ctx context.Context, email string) (*entities.Credential, error)
	Insert(ctx context.Context, credential entities.Credential) (bool, error)
}

type AuthService struct {
	logger      *slog.Logger
	credentials CredentialRepository
	tokens      *TokenIssuer
}

func NewAuthService(
	logger *slog.Logger,
	credentials CredentialRepository,
	tokens *TokenIssuer,
) *AuthService {
	return &AuthService{
		logger:      logger,
		credentials: credentials,
		tokens:      tokens,
	}
}

// hash usado quando o email não existe, para que a resposta leve o mesmo tempo.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticate confere email e senha e emite um bearer token vinculado ao email.
// Email desconhecido e senha errada produzem o mesmo ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email string, password string) (*domain.AuthToken, error) {
	email = normalizeEmail(email)

	credential, err := s.credentials.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("AuthService.Authenticate - failed to FindByEmail: %w", err)
	}

	if credential == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		s.logger.Info("authentication rejected", "reason", "unknown_email")
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Error("stored password hash is unusable", "error", err)
		}
		s.logger.Info("authentication rejected", "reason", "password_mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(email)
	if err != nil {
		return nil, fmt.Errorf("AuthService.Authenticate - failed to issue token: %w", err)
	}

	return token, nil
}

// SeedCredential cria a credencial se ela ainda não existir. Uma credencial
// existente nunca é sobrescrita; o retorno indica se houve inserção.
func (s *AuthService) SeedCredential(ctx context.Context, email string, password string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, fmt.Errorf("AuthService.SeedCredential - email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("AuthService.SeedCredential - failed to hash password: %w", err)
	}

	inserted, err := s.credentials.Insert(ctx, entities.Credential{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return false, fmt.Errorf("AuthService.SeedCredential - failed to Insert credential: %w", err)
	}

	if inserted {
		s.logger.Info("credential seeded", "email", email)
	} else {
		s.logger.Info("credential already present, leaving it untouched", "email", email)
	}

	return inserted, nil
}
