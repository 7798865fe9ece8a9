package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chamseddine-glitch/sha/internal/http/middleware"
	"github.com/chamseddine-glitch/sha/internal/modules/settings"
	"github.com/chamseddine-glitch/sha/internal/shared/apperr"
	"github.com/chamseddine-glitch/sha/pkg/view"
)

// StoreHandler serves the public storefront document.
type StoreHandler struct {
	Sync *settings.Synchronizer
}

func NewStoreHandler(sy *settings.Synchronizer) *StoreHandler {
	return &StoreHandler{Sync: sy}
}

// Get handles GET /api/store - the published settings (or defaults).
func (h *StoreHandler) Get(c *gin.Context) {
	res, err := h.Sync.Load(c.Request.Context(), middleware.GetProfileID(c), false)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.StorePage{
		Settings: res.Settings,
		Source:   string(res.Source),
		Warning:  res.Warning,
	})
}

// GetProduct handles GET /api/store/products/:id - one product from the
// effective settings document.
func (h *StoreHandler) GetProduct(c *gin.Context) {
	res, err := h.Sync.Load(c.Request.Context(), middleware.GetProfileID(c), false)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	p, ok := res.Settings.FindProduct(c.Param("id"))
	if !ok {
		middleware.Fail(c, apperr.NotFoundErr("Product not found."))
		return
	}
	c.JSON(http.StatusOK, p)
}
