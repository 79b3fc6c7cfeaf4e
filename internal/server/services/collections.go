package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shopsync/internal/common"
	"github.com/dmitrijs2005/shopsync/internal/server/models"
	"github.com/dmitrijs2005/shopsync/internal/server/repositories/collections"
)

// CollectionsService loads and saves the user collections.
type CollectionsService struct {
	repo collections.Repository
}

func NewCollectionsService(repo collections.Repository) *CollectionsService {
	return &CollectionsService{repo: repo}
}

// Load returns the stored collection, empty if never written.
func (s *CollectionsService) Load(ctx context.Context, userID string, kind models.CollectionKind) ([]models.CollectionItem, error) {
	if !models.ValidCollectionKind(kind) {
		return nil, fmt.Errorf("%w: unknown collection %q", common.ErrInvalidInput, kind)
	}
	items, err := s.repo.Get(ctx, userID, kind)
	if err != nil {
		return nil, common.ErrInternal
	}
	return items, nil
}

// Save replaces the stored collection wholesale with the pushed snapshot.
func (s *CollectionsService) Save(ctx context.Context, userID string, kind models.CollectionKind, items []models.CollectionItem) error {
	if !models.ValidCollectionKind(kind) {
		return fmt.Errorf("%w: unknown collection %q", common.ErrInvalidInput, kind)
	}
	if err := s.repo.Put(ctx, userID, kind, items); err != nil {
		return common.ErrInternal
	}
	return nil
}
