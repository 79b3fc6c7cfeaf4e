// Package repomanager wires together the server's repository constructors
// and, for database-backed managers, schema migrations.
package repomanager

import (
	"github.com/dmitrijs2005/shopsync/internal/server/repositories/collections"
	"github.com/dmitrijs2005/shopsync/internal/server/repositories/orders"
	"github.com/dmitrijs2005/shopsync/internal/server/repositories/users"
)

// RepositoryManager vends the repository implementations of one backend.
type RepositoryManager interface {
	Users() users.Repository
	Orders() orders.Repository
	Collections() collections.Repository
}
