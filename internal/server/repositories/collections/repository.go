package collections

import (
	"context"

	"github.com/dmitrijs2005/shopsync/internal/server/models"
)

// Repository stores the user collections (cart, favourites, comparison set).
// Get returns an empty list for a user/kind pair that was never written.
// Put replaces the stored list wholesale.
type Repository interface {
	Get(ctx context.Context, userID string, kind models.CollectionKind) ([]models.CollectionItem, error)
	Put(ctx context.Context, userID string, kind models.CollectionKind, items []models.CollectionItem) error
}
