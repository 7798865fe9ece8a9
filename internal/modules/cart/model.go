package cart

import (
	"github.com/chamseddine-glitch/sha/internal/modules/settings"
)

// Item is a cart line. The product is an embedded snapshot taken at
// add-to-cart time, not a reference into the settings document — later admin
// edits must not rewrite what the customer put in their cart.
type Item struct {
	ID              string            `json:"id"` // creation-time timestamp string
	Product         settings.Product  `json:"product"`
	Quantity        int               `json:"quantity"`
	SelectedOptions map[string]string `json:"selectedOptions"`
}

func (i Item) LineTotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}

// SameItems reports whether two item sets hold exactly the same item IDs.
// Used to decide whether an order submission may clear the cart.
func SameItems(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	ids := make(map[string]int, len(a))
	for _, it := range a {
		ids[it.ID]++
	}
	for _, it := range b {
		ids[it.ID]--
		if ids[it.ID] < 0 {
			return false
		}
	}
	return true
}
