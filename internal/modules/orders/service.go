package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chamseddine-glitch/sha/internal/mailer"
	"github.com/chamseddine-glitch/sha/internal/modules/cart"
	"github.com/chamseddine-glitch/sha/internal/modules/settings"
	"github.com/chamseddine-glitch/sha/internal/shared/apperr"
)

// CartAccess is the slice of the cart module the pipeline needs to decide the
// conditional clear after a successful submission.
type CartAccess interface {
	Items(ctx context.Context, cartID string) ([]cart.Item, error)
	Clear(ctx context.Context, cartID string) error
}

// Service runs the order submission pipeline: validate, total, record, then
// conditionally clear the cart.
type Service struct {
	store *Store
	carts CartAccess
	mail  mailer.Service
	log   *slog.Logger

	notifyFrom string
	notifyTo   string

	now func() time.Time
}

func NewService(store *Store, carts CartAccess, mail mailer.Service, notifyFrom, notifyTo string, log *slog.Logger) *Service {
	return &Service{
		store:      store,
		carts:      carts,
		mail:       mail,
		log:        log,
		notifyFrom: notifyFrom,
		notifyTo:   notifyTo,
		now:        time.Now,
	}
}

// PlaceInput is one direct order submission.
type PlaceInput struct {
	CartID   string
	Details  OrderDetails
	Items    []cart.Item // the checkout set, snapshot or buy-now
	Shipping settings.StoreSettings
}

// ValidateDetails checks the checkout form, naming every missing field. An
// address is required only for home delivery.
func ValidateDetails(d OrderDetails) error {
	fields := map[string]string{}
	if strings.TrimSpace(d.Name) == "" {
		fields["name"] = "Name is required."
	}
	if strings.TrimSpace(d.Phone) == "" {
		fields["phone"] = "Phone is required."
	}
	if strings.TrimSpace(d.Wilaya) == "" {
		fields["wilaya"] = "Wilaya is required."
	}
	if strings.TrimSpace(d.Commune) == "" {
		fields["commune"] = "Commune is required."
	}
	switch d.ShippingMethod {
	case "home":
		if strings.TrimSpace(d.Address) == "" {
			fields["address"] = "Address is required for home delivery."
		}
	case "office":
	default:
		fields["shippingMethod"] = "Shipping method must be home or office."
	}
	if len(fields) > 0 {
		return apperr.InvalidErr("Please fill in the required fields.", fields)
	}
	return nil
}

// Total is items plus the delivery cost for the chosen method. Prices come
// from the snapshots taken when the items entered the cart.
func Total(items []cart.Item, shipping settings.StoreSettings, method string) float64 {
	sum := 0.0
	for _, it := range items {
		sum += it.LineTotal()
	}
	return sum + shipping.ShippingCost(method)
}

// Place validates and records one order. On success the persisted cart is
// cleared only when it still matches the submitted item set; a buy-now
// submission therefore leaves the cart alone.
func (s *Service) Place(ctx context.Context, in PlaceInput) (PlacedOrder, error) {
	if err := ValidateDetails(in.Details); err != nil {
		return PlacedOrder{}, err
	}
	if len(in.Items) == 0 {
		return PlacedOrder{}, apperr.InvalidErr("Your cart is empty!", nil)
	}

	now := s.now().UTC()
	order := PlacedOrder{
		ID:          now.Format(time.RFC3339Nano),
		CreatedAt:   now,
		Customer:    in.Details,
		Items:       in.Items,
		TotalAmount: Total(in.Items, in.Shipping, in.Details.ShippingMethod),
	}

	if err := s.store.Append(ctx, order); err != nil {
		return PlacedOrder{}, err
	}

	s.clearCartIfMatching(ctx, in.CartID, in.Items)
	s.notifyAdmin(ctx, order)

	return order, nil
}

// clearCartIfMatching drops the cart only when its current content equals the
// submitted set. The order is already recorded, so failures here only log.
func (s *Service) clearCartIfMatching(ctx context.Context, cartID string, submitted []cart.Item) {
	if cartID == "" {
		return
	}
	current, err := s.carts.Items(ctx, cartID)
	if err != nil {
		s.log.Warn("order placed but cart state unreadable", "cart_id", cartID, "err", err)
		return
	}
	if !cart.SameItems(current, submitted) {
		return
	}
	if err := s.carts.Clear(ctx, cartID); err != nil {
		s.log.Warn("order placed but cart clear failed", "cart_id", cartID, "err", err)
	}
}

// notifyAdmin is best effort; a mail failure never fails the order.
func (s *Service) notifyAdmin(ctx context.Context, o PlacedOrder) {
	if s.mail == nil || s.notifyTo == "" {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s\n", o.ID)
	fmt.Fprintf(&b, "Customer: %s (%s)\n", o.Customer.Name, o.Customer.Phone)
	fmt.Fprintf(&b, "Wilaya: %s, Commune: %s\n", o.Customer.Wilaya, o.Customer.Commune)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "- %s x%d = %.2f DA\n", it.Product.Name, it.Quantity, it.LineTotal())
	}
	fmt.Fprintf(&b, "Total: %.2f DA\n", o.TotalAmount)

	err := s.mail.Send(ctx, mailer.Email{
		From:     s.notifyFrom,
		To:       []string{s.notifyTo},
		Subject:  "New order from " + o.Customer.Name,
		TextBody: b.String(),
	})
	if err != nil {
		s.log.Warn("order notification mail failed", "order_id", o.ID, "err", err)
	}
}

// ImportInput is a manually transcribed order, typically from a WhatsApp
// conversation, pasted by the admin as JSON.
type ImportInput struct {
	Customer    *OrderDetails `json:"customer"`
	Items       []cart.Item   `json:"items"`
	TotalAmount *float64      `json:"totalAmount"`
	CreatedAt   *time.Time    `json:"createdAt,omitempty"`
}

// Import records an externally negotiated order. The pasted document must
// carry customer, items, and totalAmount; anything less is rejected before it
// can pollute the shared list.
func (s *Service) Import(ctx context.Context, raw json.RawMessage) (PlacedOrder, error) {
	var in ImportInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return PlacedOrder{}, apperr.ParseErr("Invalid order data. Please check the format.", err)
	}
	if in.Customer == nil || len(in.Items) == 0 || in.TotalAmount == nil {
		return PlacedOrder{}, apperr.ParseErr("Invalid order data. Please check the format.", nil)
	}

	now := s.now().UTC()
	createdAt := now
	if in.CreatedAt != nil {
		createdAt = in.CreatedAt.UTC()
	}
	order := PlacedOrder{
		ID:          now.Format(time.RFC3339Nano),
		CreatedAt:   createdAt,
		Customer:    *in.Customer,
		Items:       in.Items,
		TotalAmount: *in.TotalAmount,
	}
	if err := s.store.Append(ctx, order); err != nil {
		return PlacedOrder{}, err
	}
	return order, nil
}

// List exposes the stored orders, newest first.
func (s *Service) List(ctx context.Context) ([]PlacedOrder, error) {
	return s.store.List(ctx)
}

// Clear wipes the shared order list.
func (s *Service) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}
