package tokens

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/constructhub/internal/client/models"
)

type memoryRepository struct {
	mu     sync.RWMutex
	tokens models.Tokens
}

// NewMemory returns a process-local repository; the session is lost on exit.
func NewMemory() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Load(_ context.Context) (models.Tokens, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tokens, nil
}

func (r *memoryRepository) Save(_ context.Context, t models.Tokens) error {
	r.mu.Lock()
	r.tokens = t
	r.mu.Unlock()
	return nil
}

func (r *memoryRepository) SaveAccess(_ context.Context, access string) error {
	r.mu.Lock()
	r.tokens.Access = access
	r.mu.Unlock()
	return nil
}

func (r *memoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	r.tokens = models.Tokens{}
	r.mu.Unlock()
	return nil
}

func (r *memoryRepository) Close() error { return nil }
