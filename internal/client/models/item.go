package models

// Item is a product reference held in one of the user collections. Identity
// is the product ID; Quantity is meaningful for cart items only and stays
// zero for favourites and comparison entries.
type Item struct {
	ID       string  `json:"id"`
	Title    string  `json:"title,omitempty"`
	Price    float64 `json:"price,omitempty"`
	Quantity int     `json:"quantity,omitempty"`
	Image    string  `json:"image,omitempty"`
}

// CloneItems returns a copy of items that shares no backing storage with the
// original. A nil slice clones to an empty one so snapshots always marshal to
// a JSON array.
func CloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// ItemsEqual reports whether two snapshots are structurally equal: same
// length, same items in the same order.
func ItemsEqual(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
