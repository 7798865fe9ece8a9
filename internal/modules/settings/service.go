package settings

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/chamseddine-glitch/sha/internal/shared/apperr"
)

// Service owns the admin draft lifecycle: every edit is written through to the
// draft store immediately, and Publish replaces the remote document wholesale.
type Service struct {
	sync      *Synchronizer
	drafts    DraftRepo
	published *PublishedStore
	log       *slog.Logger

	mu         sync.Mutex
	publishing map[string]struct{}

	now func() time.Time
}

func NewService(sy *Synchronizer, drafts DraftRepo, published *PublishedStore, log *slog.Logger) *Service {
	return &Service{
		sync:       sy,
		drafts:     drafts,
		published:  published,
		log:        log,
		publishing: map[string]struct{}{},
		now:        time.Now,
	}
}

// FieldPatch carries the editable scalar settings. Nil pointers are left
// untouched.
type FieldPatch struct {
	StoreName          *string  `json:"storeName"`
	LogoURL            *string  `json:"logoUrl"`
	ContactPhone       *string  `json:"contactPhone"`
	ContactEmail       *string  `json:"contactEmail"`
	FacebookURL        *string  `json:"facebookUrl"`
	WhatsappNumber     *string  `json:"whatsappNumber"`
	HomeDeliveryCost   *float64 `json:"homeDeliveryCost"`
	OfficeDeliveryCost *float64 `json:"officeDeliveryCost"`
}

func (s *Service) UpdateFields(ctx context.Context, profileID string, patch FieldPatch) (StoreSettings, error) {
	if patch.HomeDeliveryCost != nil && *patch.HomeDeliveryCost < 0 {
		return StoreSettings{}, apperr.InvalidErr("Invalid settings.", map[string]string{"homeDeliveryCost": "Delivery cost cannot be negative."})
	}
	if patch.OfficeDeliveryCost != nil && *patch.OfficeDeliveryCost < 0 {
		return StoreSettings{}, apperr.InvalidErr("Invalid settings.", map[string]string{"officeDeliveryCost": "Delivery cost cannot be negative."})
	}
	return s.mutate(ctx, profileID, func(d *StoreSettings) error {
		setString(&d.StoreName, patch.StoreName)
		setString(&d.LogoURL, patch.LogoURL)
		setString(&d.ContactPhone, patch.ContactPhone)
		setString(&d.ContactEmail, patch.ContactEmail)
		setString(&d.FacebookURL, patch.FacebookURL)
		setString(&d.WhatsappNumber, patch.WhatsappNumber)
		if patch.HomeDeliveryCost != nil {
			d.HomeDeliveryCost = *patch.HomeDeliveryCost
		}
		if patch.OfficeDeliveryCost != nil {
			d.OfficeDeliveryCost = *patch.OfficeDeliveryCost
		}
		return nil
	})
}

// NewProductInput is a product as submitted by the admin form; the ID is
// assigned here.
type NewProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	ImageURLs   []string        `json:"imageUrls"`
	Category    string          `json:"category"`
	Options     []ProductOption `json:"options,omitempty"`
}

func (s *Service) AddProduct(ctx context.Context, profileID string, in NewProductInput) (Product, error) {
	p := Product{
		ID:          s.now().UTC().Format(time.RFC3339Nano),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		ImageURLs:   in.ImageURLs,
		Category:    in.Category,
		Options:     in.Options,
	}
	if err := ValidateProduct(p); err != nil {
		return Product{}, err
	}
	_, err := s.mutate(ctx, profileID, func(d *StoreSettings) error {
		// Newest first, matching the storefront ordering.
		d.Products = append([]Product{p}, d.Products...)
		return nil
	})
	return p, err
}

func (s *Service) UpdateProduct(ctx context.Context, profileID string, p Product) error {
	if err := ValidateProduct(p); err != nil {
		return err
	}
	_, err := s.mutate(ctx, profileID, func(d *StoreSettings) error {
		for i := range d.Products {
			if d.Products[i].ID == p.ID {
				d.Products[i] = p
				return nil
			}
		}
		return apperr.NotFoundErr("Product not found.")
	})
	return err
}

func (s *Service) DeleteProduct(ctx context.Context, profileID, productID string) error {
	_, err := s.mutate(ctx, profileID, func(d *StoreSettings) error {
		kept := d.Products[:0]
		for _, p := range d.Products {
			if p.ID != productID {
				kept = append(kept, p)
			}
		}
		d.Products = kept
		return nil
	})
	return err
}

func (s *Service) AddCategory(ctx context.Context, profileID, category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return apperr.InvalidErr("Invalid category.", map[string]string{"category": "Category name is required."})
	}
	_, err := s.mutate(ctx, profileID, func(d *StoreSettings) error {
		for _, c := range d.ManagedCategories {
			if c == category {
				return apperr.ConflictErr("Category already exists.")
			}
		}
		d.ManagedCategories = append(d.ManagedCategories, category)
		return nil
	})
	return err
}

func (s *Service) DeleteCategory(ctx context.Context, profileID, category string) error {
	_, err := s.mutate(ctx, profileID, func(d *StoreSettings) error {
		kept := d.ManagedCategories[:0]
		for _, c := range d.ManagedCategories {
			if c != category {
				kept = append(kept, c)
			}
		}
		d.ManagedCategories = kept
		return nil
	})
	return err
}

// Publish reads the entire persisted draft — not the caller's in-memory copy,
// so partial reloads cannot publish a half-edited document — and replaces the
// remote document with one PUT. The draft stays as the working copy either way.
func (s *Service) Publish(ctx context.Context, profileID string) (StoreSettings, error) {
	if !s.beginPublish(profileID) {
		return StoreSettings{}, apperr.ConflictErr("A publish is already in progress.")
	}
	defer s.endPublish(profileID)

	draft, err := s.drafts.Get(ctx, profileID)
	if err != nil {
		return StoreSettings{}, apperr.Wrap(err)
	}
	if draft == nil {
		return StoreSettings{}, apperr.InvalidErr("Nothing to publish yet.", nil)
	}

	if err := s.published.Publish(ctx, *draft); err != nil {
		return StoreSettings{}, err
	}
	s.log.Info("settings_published",
		slog.String("profile_id", profileID),
		slog.Int("products", len(draft.Products)),
	)
	return *draft, nil
}

// DiscardDraft drops the profile's draft; the next load reseeds from the
// published document.
func (s *Service) DiscardDraft(ctx context.Context, profileID string) error {
	return s.drafts.Clear(ctx, profileID)
}

// mutate loads the draft (seeding it via the synchronizer when the profile has
// none yet), applies fn, and writes the whole blob back.
func (s *Service) mutate(ctx context.Context, profileID string, fn func(*StoreSettings) error) (StoreSettings, error) {
	draft, err := s.drafts.Get(ctx, profileID)
	if err != nil {
		return StoreSettings{}, apperr.Wrap(err)
	}
	if draft == nil {
		res, err := s.sync.Load(ctx, profileID, true)
		if err != nil {
			return StoreSettings{}, apperr.Wrap(err)
		}
		draft = &res.Settings
	}

	if err := fn(draft); err != nil {
		return StoreSettings{}, err
	}
	if err := s.drafts.Put(ctx, profileID, *draft); err != nil {
		return StoreSettings{}, apperr.Wrap(err)
	}
	return *draft, nil
}

func (s *Service) beginPublish(profileID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.publishing[profileID]; busy {
		return false
	}
	s.publishing[profileID] = struct{}{}
	return true
}

func (s *Service) endPublish(profileID string) {
	s.mu.Lock()
	delete(s.publishing, profileID)
	s.mu.Unlock()
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
