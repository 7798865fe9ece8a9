package view

import (
	"github.com/chamseddine-glitch/sha/internal/modules/orders"
)

type OrderList struct {
	Orders      []orders.PlacedOrder `json:"orders"`
	UnseenCount int                  `json:"unseenCount"`
}
