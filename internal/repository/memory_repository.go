package repository

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewMemoryRepository keeps credentials for the lifetime of the process.
func NewMemoryRepository() CredentialRepository {
	return &memoryRepository{tokens: make(map[string]string)}
}

func (r *memoryRepository) GetCredential(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	token, ok := r.tokens[key]
	if !ok {
		return "", ErrNotFound
	}
	return token, nil
}

func (r *memoryRepository) SaveCredential(_ context.Context, key, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[key] = token
	return nil
}

func (r *memoryRepository) DeleteCredential(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, key)
	return nil
}
