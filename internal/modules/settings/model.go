package settings

import (
	"encoding/json"
	"strings"

	"github.com/chamseddine-glitch/sha/internal/shared/apperr"
)

// ProductOption is a named choice set, e.g. Color -> [Red, Blue].
type ProductOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type Product struct {
	ID          string          `json:"id"` // creation-time timestamp string
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	ImageURLs   []string        `json:"imageUrls"`
	Category    string          `json:"category"`
	Options     []ProductOption `json:"options,omitempty"`
}

// StoreSettings is the whole settings document. Exactly one published copy
// lives in the remote bin; each admin browser profile may hold one draft.
type StoreSettings struct {
	Products           []Product `json:"products"`
	StoreName          string    `json:"storeName"`
	LogoURL            string    `json:"logoUrl"`
	ContactPhone       string    `json:"contactPhone"`
	ContactEmail       string    `json:"contactEmail"`
	FacebookURL        string    `json:"facebookUrl"`
	WhatsappNumber     string    `json:"whatsappNumber"`
	HomeDeliveryCost   float64   `json:"homeDeliveryCost"`
	OfficeDeliveryCost float64   `json:"officeDeliveryCost"`
	ManagedCategories  []string  `json:"managedCategories"`
}

// Defaults is the built-in fallback used when nothing was ever published.
func Defaults() StoreSettings {
	return StoreSettings{
		Products:           []Product{},
		StoreName:          "Rsure Store",
		HomeDeliveryCost:   600,
		OfficeDeliveryCost: 400,
		ManagedCategories:  []string{},
	}
}

// Decode deserializes a remote settings document, failing with a parse error
// instead of letting a half-shaped document reach the rest of the app.
func Decode(raw json.RawMessage) (StoreSettings, error) {
	var s StoreSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		return StoreSettings{}, apperr.ParseErr("The published store document is malformed.", err)
	}
	if s.Products == nil {
		s.Products = []Product{}
	}
	if s.ManagedCategories == nil {
		s.ManagedCategories = []string{}
	}
	if s.HomeDeliveryCost < 0 || s.OfficeDeliveryCost < 0 {
		return StoreSettings{}, apperr.ParseErr("The published store document is malformed.", nil)
	}
	return s, nil
}

// ValidateProduct enforces the product invariants before a draft mutation.
func ValidateProduct(p Product) error {
	fields := map[string]string{}
	if strings.TrimSpace(p.Name) == "" {
		fields["name"] = "Product name is required."
	}
	if p.Price <= 0 {
		fields["price"] = "Price must be greater than zero."
	}
	if len(p.ImageURLs) == 0 {
		fields["imageUrls"] = "At least one image is required."
	}
	if len(fields) > 0 {
		return apperr.InvalidErr("Invalid product.", fields)
	}
	return nil
}

func (s StoreSettings) FindProduct(id string) (Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// ShippingCost returns the delivery cost for a shipping method
// ("home" or "office").
func (s StoreSettings) ShippingCost(method string) float64 {
	if method == "home" {
		return s.HomeDeliveryCost
	}
	return s.OfficeDeliveryCost
}
