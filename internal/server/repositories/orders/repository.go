package orders

import (
	"context"

	"github.com/dmitrijs2005/shopsync/internal/server/models"
)

// Repository is the order store. ListByUser returns the user's orders in
// creation order; a user without orders gets an empty list, not an error.
type Repository interface {
	Insert(ctx context.Context, order *models.Order) error
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
}
