package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shopsync/internal/client/models"
	"github.com/dmitrijs2005/shopsync/internal/client/syncer"
)

// Checkout turns the current cart into an order draft, submits it, and
// empties the cart once the server confirms.
func (a *App) Checkout(ctx context.Context) error {
	identity := a.session.Identity()
	if identity == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	items := a.sync.Items(syncer.KindCart)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Cart is empty.")
		return nil
	}

	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}

	phone, err := getSimpleText(a.reader, "Contact phone", a.out)
	if err != nil {
		return err
	}
	address, err := getSimpleText(a.reader, "Delivery address", a.out)
	if err != nil {
		return err
	}
	payment, err := getSimpleText(a.reader, "Payment method (card/cash)", a.out)
	if err != nil {
		return err
	}
	if payment == "" {
		payment = "card"
	}

	draft := models.OrderDraft{
		UserID: identity.ID,
		Items:  items,
		Total:  total,
		CustomerInfo: models.CustomerInfo{
			FirstName: identity.FirstName,
			LastName:  identity.LastName,
			Email:     identity.Email,
			Phone:     phone,
			Address:   address,
		},
		PaymentMethod: payment,
	}

	order, err := a.ledger.Create(ctx, draft)
	if err != nil {
		fmt.Fprintf(a.out, "Checkout failed: %s\n", err)
		return err
	}

	a.sync.Set(syncer.KindCart, nil)
	fmt.Fprintf(a.out, "Order %s created, total %.2f\n", order.ID, order.Total)
	return nil
}

// Orders fetches and prints the user's order history.
func (a *App) Orders(ctx context.Context) error {
	identity := a.session.Identity()
	if identity == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	list, err := a.ledger.FetchByUser(ctx, identity.ID)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to fetch orders: %s\n", err)
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No orders yet.")
		return nil
	}
	for _, order := range list {
		fmt.Fprintf(a.out, "%s  %s  %.2f  %s\n", order.ID, order.CreatedAt, order.Total, order.Status)
	}
	return nil
}
