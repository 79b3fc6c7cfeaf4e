package orders

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/shopsync/internal/server/models"
)

// MemoryRepository is a map-backed Repository used in tests and for running
// the server without a database.
type MemoryRepository struct {
	mu     sync.Mutex
	byUser map[string][]models.Order
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byUser: make(map[string][]models.Order)}
}

func (r *MemoryRepository) Insert(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[order.UserID] = append(r.byUser[order.UserID], *order)
	return nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Order, len(r.byUser[userID]))
	copy(out, r.byUser[userID])
	return out, nil
}
