package auth

import (
	"errors"
	"fmt"
	"time"

	"propertylisting/src/domain"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer assina e confere tokens HS256 cujo subject é o email autenticado.
type TokenIssuer struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
	now        func() time.Time
}

func NewTokenIssuer(signingKey string, issuer string, ttl time.Duration) (*TokenIssuer, error) {
	if signingKey == "" {
		return nil, fmt.Errorf("NewTokenIssuer - signing key cannot be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("NewTokenIssuer - ttl must be positive, got %s", ttl)
	}

	return &TokenIssuer{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		ttl:        ttl,
		now:        time.Now,
	}, nil
}

func (t *TokenIssuer) Issue(email string) (*domain.AuthToken, error) {
	now := t.now()
	expiresAt := now.Add(t.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   email,
		Issuer:    t.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.signingKey)
	if err != nil {
		return nil, fmt.Errorf("TokenIssuer.Issue - failed to sign token: %w", err)
	}

	return &domain.AuthToken{Token: signed, ExpiresAt: expiresAt.UTC().Truncate(time.Second)}, nil
}

// Verify devolve o email do token ou domain.ErrInvalidToken.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("TokenIssuer.Verify - token expired: %w", domain.ErrInvalidToken)
		}
		return "", fmt.Errorf("TokenIssuer.Verify - %v: %w", err, domain.ErrInvalidToken)
	}

	if !token.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}

	return claims.Subject, nil
}

// WithClock troca o relógio usado para emitir e conferir tokens.
func (t *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	t.now = now
	return t
}
