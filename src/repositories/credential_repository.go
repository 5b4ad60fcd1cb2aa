package repositories

import (
	"context"
	"fmt"

	"propertylisting/src/domain/entities"
	"propertylisting/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CredentialRepository struct {
	pool *pgxpool.Pool
}

func NewCredentialRepository(pool *pgxpool.Pool) *CredentialRepository {
	return &CredentialRepository{pool: pool}
}

// FindByEmail devolve nil, nil quando o email não está cadastrado.
func (r *CredentialRepository) FindByEmail(ctx context.Context, email string) (*entities.Credential, error) {
	var credential entities.Credential

	err := r.pool.QueryRow(ctx,
		`SELECT email, password_hash, created_at FROM credentials WHERE email = $1`,
		email,
	).Scan(&credential.Email, &credential.PasswordHash, &credential.CreatedAt)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("CredentialRepository.FindByEmail - failed to query credential: %w", err)
	}

	return &credential, nil
}

// Insert não sobrescreve credenciais existentes; devolve false nesse caso.
func (r *CredentialRepository) Insert(ctx context.Context, credential entities.Credential) (bool, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO credentials (email, password_hash, created_at) VALUES ($1, $2, $3)`,
		credential.Email, credential.PasswordHash, credential.CreatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("CredentialRepository.Insert - failed to insert credential: %w", err)
	}

	return true, nil
}
