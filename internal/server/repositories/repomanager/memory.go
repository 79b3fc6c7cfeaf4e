package repomanager

import (
	"github.com/dmitrijs2005/shopsync/internal/server/repositories/collections"
	"github.com/dmitrijs2005/shopsync/internal/server/repositories/orders"
	"github.com/dmitrijs2005/shopsync/internal/server/repositories/users"
)

// MemoryRepositoryManager vends in-memory repositories. Used by tests and
// when the server runs without a database DSN.
type MemoryRepositoryManager struct {
	users       *users.MemoryRepository
	orders      *orders.MemoryRepository
	collections *collections.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:       users.NewMemoryRepository(),
		orders:      orders.NewMemoryRepository(),
		collections: collections.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *MemoryRepositoryManager) Orders() orders.Repository {
	return m.orders
}

func (m *MemoryRepositoryManager) Collections() collections.Repository {
	return m.collections
}
