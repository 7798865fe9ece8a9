package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chamseddine-glitch/sha/internal/http/middleware"
	"github.com/chamseddine-glitch/sha/internal/http/signedcookie"
	"github.com/chamseddine-glitch/sha/internal/http/validation"
	"github.com/chamseddine-glitch/sha/internal/modules/cart"
	"github.com/chamseddine-glitch/sha/internal/shared/apperr"
	"github.com/chamseddine-glitch/sha/pkg/view"
)

// CartHandler handles cart operations for the anonymous cookie-identified cart.
type CartHandler struct {
	Codec *signedcookie.Codec
	Svc   *cart.Service
}

func NewCartHandler(codec *signedcookie.Codec, svc *cart.Service) *CartHandler {
	return &CartHandler{Codec: codec, Svc: svc}
}

// cartID returns the signed cart identity, minting one on first use.
func (h *CartHandler) cartID(c *gin.Context) string {
	if id, ok := h.Codec.GetID(c); ok {
		return id
	}
	id := uuid.NewString()
	h.Codec.Set(c, id)
	return id
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	items, err := h.Svc.Items(c.Request.Context(), h.cartID(c))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.NewCartPage(items))
}

// Add handles POST /api/cart/items.
func (h *CartHandler) Add(c *gin.Context) {
	var in cart.AddInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid request data.", validation.FromBindError(err, &in)))
		return
	}
	cartID := h.cartID(c)
	it, err := h.Svc.Add(c.Request.Context(), cartID, in)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	log.Printf("CartAdd: cart=%s item=%s qty=%d", cartID, it.ID, it.Quantity)
	c.JSON(http.StatusCreated, it)
}

// Remove handles DELETE /api/cart/items/:id.
func (h *CartHandler) Remove(c *gin.Context) {
	if err := h.Svc.Remove(c.Request.Context(), h.cartID(c), c.Param("id")); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.Svc.Clear(c.Request.Context(), h.cartID(c)); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
