package orders

import (
	"sort"
	"time"

	"github.com/chamseddine-glitch/sha/internal/modules/cart"
)

// OrderDetails is the checkout form as filled by the customer.
type OrderDetails struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email,omitempty"`
	Wilaya         string `json:"wilaya"`
	Commune        string `json:"commune"`
	ShippingMethod string `json:"shippingMethod"` // home|office
	Address        string `json:"address,omitempty"`
}

// PlacedOrder is an immutable record appended to the shared order list. It is
// never mutated after creation; the only removal is the admin clear-all, which
// truncates the whole list.
type PlacedOrder struct {
	ID          string       `json:"id"` // creation-time timestamp string
	CreatedAt   time.Time    `json:"createdAt"`
	Customer    OrderDetails `json:"customer"`
	Items       []cart.Item  `json:"items"`
	TotalAmount float64      `json:"totalAmount"`
}

// SortNewestFirst orders by createdAt descending, ID descending as a stable
// tie-break.
func SortNewestFirst(list []PlacedOrder) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
}
