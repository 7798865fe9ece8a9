package view

import (
	"github.com/chamseddine-glitch/sha/internal/modules/settings"
)

// StorePage is the storefront payload: the effective settings plus where they
// came from.
type StorePage struct {
	Settings settings.StoreSettings `json:"settings"`
	Source   string                 `json:"source"`
	Warning  string                 `json:"warning,omitempty"`
}
