package cart

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/chamseddine-glitch/sha/internal/modules/settings"
	"github.com/chamseddine-glitch/sha/internal/shared/apperr"
)

// Service is the cart/checkout state machine. The cart itself persists
// indefinitely; checkout item sets are transient and owned by the caller.
type Service struct {
	repo Repo
	now  func() time.Time
	seq  atomic.Uint64 // disambiguates IDs minted in the same instant
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo, now: time.Now}
}

// AddInput is an item as submitted by the storefront.
type AddInput struct {
	Product         settings.Product  `json:"product"`
	Quantity        int               `json:"quantity"`
	SelectedOptions map[string]string `json:"selectedOptions"`
}

func (s *Service) Items(ctx context.Context, cartID string) ([]Item, error) {
	return s.repo.Items(ctx, cartID)
}

// Add appends a new cart line with a fresh ID and persists it immediately.
func (s *Service) Add(ctx context.Context, cartID string, in AddInput) (Item, error) {
	it, err := s.buildItem(in)
	if err != nil {
		return Item{}, err
	}
	if err := s.repo.Add(ctx, cartID, it); err != nil {
		return Item{}, apperr.Wrap(err)
	}
	return it, nil
}

// Remove drops a line by ID; removing an absent line is a no-op.
func (s *Service) Remove(ctx context.Context, cartID, itemID string) error {
	if err := s.repo.Remove(ctx, cartID, itemID); err != nil {
		return apperr.Wrap(err)
	}
	return nil
}

func (s *Service) Clear(ctx context.Context, cartID string) error {
	if err := s.repo.Clear(ctx, cartID); err != nil {
		return apperr.Wrap(err)
	}
	return nil
}

// BuyNow builds a transient single-item checkout set. The persisted cart is
// not touched.
func (s *Service) BuyNow(in AddInput) ([]Item, error) {
	it, err := s.buildItem(in)
	if err != nil {
		return nil, err
	}
	return []Item{it}, nil
}

// CheckoutItems snapshots the full cart as the checkout set. An empty cart
// cannot open checkout.
func (s *Service) CheckoutItems(ctx context.Context, cartID string) ([]Item, error) {
	items, err := s.repo.Items(ctx, cartID)
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	if len(items) == 0 {
		return nil, apperr.InvalidErr("Your cart is empty!", nil)
	}
	return items, nil
}

func (s *Service) buildItem(in AddInput) (Item, error) {
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}
	if err := settings.ValidateProduct(in.Product); err != nil {
		return Item{}, err
	}
	opts := in.SelectedOptions
	if opts == nil {
		opts = map[string]string{}
	}
	return Item{
		ID:              s.newItemID(),
		Product:         in.Product,
		Quantity:        qty,
		SelectedOptions: opts,
	}, nil
}

func (s *Service) newItemID() string {
	n := s.seq.Add(1)
	return fmt.Sprintf("%s-%d", s.now().UTC().Format(time.RFC3339Nano), n)
}
