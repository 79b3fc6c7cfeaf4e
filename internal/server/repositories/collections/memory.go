package collections

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/shopsync/internal/server/models"
)

type key struct {
	userID string
	kind   models.CollectionKind
}

// MemoryRepository is a map-backed Repository used in tests and for running
// the server without a database.
type MemoryRepository struct {
	mu   sync.Mutex
	data map[key][]models.CollectionItem
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[key][]models.CollectionItem)}
}

func (r *MemoryRepository) Get(ctx context.Context, userID string, kind models.CollectionKind) ([]models.CollectionItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.data[key{userID, kind}]
	out := make([]models.CollectionItem, len(stored))
	copy(out, stored)
	return out, nil
}

func (r *MemoryRepository) Put(ctx context.Context, userID string, kind models.CollectionKind, items []models.CollectionItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]models.CollectionItem, len(items))
	copy(stored, items)
	r.data[key{userID, kind}] = stored
	return nil
}
