package view

import (
	"github.com/chamseddine-glitch/sha/internal/modules/cart"
)

type CartPage struct {
	Items    []cart.Item `json:"items"`
	Subtotal float64     `json:"subtotal"`
}

func NewCartPage(items []cart.Item) CartPage {
	sub := 0.0
	for _, it := range items {
		sub += it.LineTotal()
	}
	return CartPage{Items: items, Subtotal: sub}
}

// CheckoutSummary itemizes what a submission would cost per shipping method.
type CheckoutSummary struct {
	Items              []cart.Item `json:"items"`
	Subtotal           float64     `json:"subtotal"`
	HomeDeliveryCost   float64     `json:"homeDeliveryCost"`
	OfficeDeliveryCost float64     `json:"officeDeliveryCost"`
}

func NewCheckoutSummary(items []cart.Item, home, office float64) CheckoutSummary {
	sub := 0.0
	for _, it := range items {
		sub += it.LineTotal()
	}
	return CheckoutSummary{
		Items:              items,
		Subtotal:           sub,
		HomeDeliveryCost:   home,
		OfficeDeliveryCost: office,
	}
}
