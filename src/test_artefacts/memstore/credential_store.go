package memstore

import (
	"context"
	"sync"

	"propertylisting/src/domain/entities"
)

type CredentialStore struct {
	mu          sync.RWMutex
	credentials map[string]entities.Credential
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{credentials: make(map[string]entities.Credential)}
}

// FindByEmail devolve nil, nil quando o email não existe.
func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*entities.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	credential, ok := s.credentials[email]
	if !ok {
		return nil, nil
	}
	return &credential, nil
}

func (s *CredentialStore) Insert(ctx context.Context, credential entities.Credential) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.credentials[credential.Email]; ok {
		return false, nil
	}
	s.credentials[credential.Email] = credential
	return true, nil
}
