package models

// CollectionKind identifies one user-scoped collection.
type CollectionKind string

const (
	CollectionCart    CollectionKind = "cart"
	CollectionFavs    CollectionKind = "favs"
	CollectionCompare CollectionKind = "compare"
)

// ValidCollectionKind reports whether k names a known collection.
func ValidCollectionKind(k CollectionKind) bool {
	switch k {
	case CollectionCart, CollectionFavs, CollectionCompare:
		return true
	}
	return false
}

// CollectionItem is one entry of a user collection. Quantity is meaningful
// for the cart only.
type CollectionItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title,omitempty"`
	Price    float64 `json:"price,omitempty"`
	Quantity int     `json:"quantity,omitempty"`
	Image    string  `json:"image,omitempty"`
}
