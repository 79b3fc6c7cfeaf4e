package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/shopsync/internal/client/models"
	"github.com/dmitrijs2005/shopsync/internal/client/syncer"
)

// Collection commands mutate local state only; the synchronizer pushes the
// change to the server in the background.

func (a *App) ShowCart(ctx context.Context) error {
	return a.showCollection(syncer.KindCart)
}

// AddToCart prompts for a product and adds it to the cart, bumping the
// quantity when the product is already there.
func (a *App) AddToCart(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	id, err := getSimpleText(a.reader, "Product id", a.out)
	if err != nil {
		return err
	}
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	priceText, err := getSimpleText(a.reader, "Price", a.out)
	if err != nil {
		return err
	}
	price, err := strconv.ParseFloat(priceText, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Invalid price.")
		return err
	}

	a.sync.Update(syncer.KindCart, func(items []models.Item) []models.Item {
		for i := range items {
			if items[i].ID == id {
				items[i].Quantity++
				return items
			}
		}
		return append(items, models.Item{ID: id, Title: title, Price: price, Quantity: 1})
	})

	fmt.Fprintln(a.out, "Added to cart.")
	return nil
}

// RemoveFromCart prompts for a product id and drops it from the cart.
func (a *App) RemoveFromCart(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	id, err := getSimpleText(a.reader, "Product id", a.out)
	if err != nil {
		return err
	}

	a.sync.Update(syncer.KindCart, func(items []models.Item) []models.Item {
		out := items[:0]
		for _, item := range items {
			if item.ID != id {
				out = append(out, item)
			}
		}
		return out
	})

	fmt.Fprintln(a.out, "Removed from cart.")
	return nil
}

func (a *App) ShowFavs(ctx context.Context) error {
	return a.showCollection(syncer.KindFavs)
}

// ToggleFav adds the product to the favourites, or removes it when already
// present. Favourites deduplicate by product identity.
func (a *App) ToggleFav(ctx context.Context) error {
	return a.toggle(syncer.KindFavs)
}

func (a *App) ShowCompare(ctx context.Context) error {
	return a.showCollection(syncer.KindCompare)
}

// ToggleCompare adds or removes a product from the comparison set.
func (a *App) ToggleCompare(ctx context.Context) error {
	return a.toggle(syncer.KindCompare)
}

func (a *App) toggle(kind syncer.Kind) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	id, err := getSimpleText(a.reader, "Product id", a.out)
	if err != nil {
		return err
	}
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}

	a.sync.Update(kind, func(items []models.Item) []models.Item {
		out := items[:0]
		removed := false
		for _, item := range items {
			if item.ID == id {
				removed = true
				continue
			}
			out = append(out, item)
		}
		if removed {
			return out
		}
		return append(out, models.Item{ID: id, Title: title})
	})

	fmt.Fprintln(a.out, "Done.")
	return nil
}

func (a *App) showCollection(kind syncer.Kind) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	items := a.sync.Items(kind)
	if len(items) == 0 {
		fmt.Fprintf(a.out, "%s is empty\n", kind)
		return nil
	}
	for _, item := range items {
		if item.Quantity > 0 {
			fmt.Fprintf(a.out, "%s  %s  x%d  %.2f\n", item.ID, item.Title, item.Quantity, item.Price)
		} else {
			fmt.Fprintf(a.out, "%s  %s\n", item.ID, item.Title)
		}
	}
	return nil
}
