// Package orders maintains the per-user order ledger. Creation appends the
// server-confirmed order to the user's entry; a fetch replaces the entry
// wholesale, because order status transitions are server-owned and must not
// be merged field by field.
package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/shopsync/internal/client/models"
	"github.com/dmitrijs2005/shopsync/internal/client/transport"
	"github.com/dmitrijs2005/shopsync/internal/logging"
)

type createResponse struct {
	Order *models.Order `json:"order"`
}

// Ledger is the client-side order store, keyed by user ID.
type Ledger struct {
	api    transport.Requester
	logger logging.Logger

	mu      sync.Mutex
	entries map[string][]models.Order
}

func NewLedger(api transport.Requester, logger logging.Logger) *Ledger {
	return &Ledger{
		api:     api,
		logger:  logger.With("component", "orders"),
		entries: make(map[string][]models.Order),
	}
}

// Create submits draft to the server, which assigns id, createdAt and the
// initial pending status. The confirmed order is appended to the user's
// entry; concurrent creations therefore never clobber each other.
func (l *Ledger) Create(ctx context.Context, draft models.OrderDraft) (*models.Order, error) {
	var resp createResponse
	if err := l.api.Request(ctx, http.MethodPost, "/orders", draft, &resp); err != nil {
		return nil, fmt.Errorf("order creation failed: %w", err)
	}
	if resp.Order == nil {
		return nil, errors.New("order response missing order")
	}

	order := *resp.Order
	l.mu.Lock()
	l.entries[order.UserID] = append(l.entries[order.UserID], order)
	l.mu.Unlock()

	l.logger.Info(ctx, "order created", "order", order.ID, "user", order.UserID)
	return resp.Order, nil
}

// FetchByUser replaces the ledger entry for userID with the server's list
// and returns it. The server rejects a fetch for anyone but the
// authenticated user with transport.ErrForbidden.
func (l *Ledger) FetchByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var raw json.RawMessage
	if err := l.api.Request(ctx, http.MethodGet, "/orders/"+userID, nil, &raw); err != nil {
		return nil, fmt.Errorf("order fetch failed: %w", err)
	}

	orders := decodeOrders(raw)

	l.mu.Lock()
	l.entries[userID] = orders
	l.mu.Unlock()

	return l.Orders(userID), nil
}

// decodeOrders accepts both served shapes: the current {"orders": [...]} and
// the legacy bare array.
func decodeOrders(raw json.RawMessage) []models.Order {
	var wrapped struct {
		Orders []models.Order `json:"orders"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Orders != nil {
		return wrapped.Orders
	}

	var bare []models.Order
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare
	}
	return []models.Order{}
}

// Orders returns a copy of the ledger entry for userID.
func (l *Ledger) Orders(userID string) []models.Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Order, len(l.entries[userID]))
	copy(out, l.entries[userID])
	return out
}

// Clear drops the ledger entry for userID, typically on logout.
func (l *Ledger) Clear(userID string) {
	l.mu.Lock()
	delete(l.entries, userID)
	l.mu.Unlock()
}
