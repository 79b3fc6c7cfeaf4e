package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/shopsync/internal/common"
	"github.com/dmitrijs2005/shopsync/internal/server/models"
	"github.com/dmitrijs2005/shopsync/internal/server/repositories/orders"
	"github.com/google/uuid"
)

// OrdersService creates and lists orders.
type OrdersService struct {
	repo orders.Repository
}

func NewOrdersService(repo orders.Repository) *OrdersService {
	return &OrdersService{repo: repo}
}

// Create confirms a draft for userID: the server assigns the id, the
// creation time and the initial pending status. A draft addressed to a
// different user fails with common.ErrForbidden.
func (s *OrdersService) Create(ctx context.Context, userID string, draft models.OrderDraft) (*models.Order, error) {
	if draft.UserID != "" && draft.UserID != userID {
		return nil, common.ErrForbidden
	}
	if len(draft.Items) == 0 {
		return nil, fmt.Errorf("%w: order has no items", common.ErrInvalidInput)
	}

	order := &models.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		Items:         draft.Items,
		Total:         draft.Total,
		CustomerInfo:  draft.CustomerInfo,
		PaymentMethod: draft.PaymentMethod,
		Status:        models.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, order); err != nil {
		return nil, common.ErrInternal
	}
	return order, nil
}

// ListByUser returns the user's orders in creation order.
func (s *OrdersService) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrInternal
	}
	return list, nil
}
