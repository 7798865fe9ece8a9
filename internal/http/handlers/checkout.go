package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chamseddine-glitch/sha/internal/http/middleware"
	"github.com/chamseddine-glitch/sha/internal/http/signedcookie"
	"github.com/chamseddine-glitch/sha/internal/http/validation"
	"github.com/chamseddine-glitch/sha/internal/modules/cart"
	"github.com/chamseddine-glitch/sha/internal/modules/orders"
	"github.com/chamseddine-glitch/sha/internal/modules/settings"
	"github.com/chamseddine-glitch/sha/internal/shared/apperr"
	"github.com/chamseddine-glitch/sha/pkg/view"
)

// CheckoutHandler runs checkout: summary, direct submission, and the WhatsApp
// handoff. Both submission styles accept either the whole cart or a buy-now
// single item.
type CheckoutHandler struct {
	CartCodec *signedcookie.Codec
	Cart      *cart.Service
	Orders    *orders.Service
	Sync      *settings.Synchronizer
}

func NewCheckoutHandler(cartCodec *signedcookie.Codec, cartSvc *cart.Service, orderSvc *orders.Service, sy *settings.Synchronizer) *CheckoutHandler {
	return &CheckoutHandler{CartCodec: cartCodec, Cart: cartSvc, Orders: orderSvc, Sync: sy}
}

type checkoutInput struct {
	Details orders.OrderDetails `json:"details"`
	BuyNow  *cart.AddInput      `json:"buyNow,omitempty"`
}

// items resolves the checkout set: buy-now builds a transient single item,
// otherwise the full cart is snapshotted.
func (h *CheckoutHandler) items(c *gin.Context, buyNow *cart.AddInput) ([]cart.Item, string, error) {
	if buyNow != nil {
		set, err := h.Cart.BuyNow(*buyNow)
		return set, "", err
	}
	cartID, ok := h.CartCodec.GetID(c)
	if !ok {
		return nil, "", apperr.InvalidErr("Your cart is empty!", nil)
	}
	set, err := h.Cart.CheckoutItems(c.Request.Context(), cartID)
	return set, cartID, err
}

func (h *CheckoutHandler) shop(c *gin.Context) (settings.StoreSettings, error) {
	res, err := h.Sync.Load(c.Request.Context(), middleware.GetProfileID(c), false)
	if err != nil {
		return settings.StoreSettings{}, err
	}
	return res.Settings, nil
}

// Summary handles POST /api/checkout - itemized costs before submission.
func (h *CheckoutHandler) Summary(c *gin.Context) {
	var in struct {
		BuyNow *cart.AddInput `json:"buyNow,omitempty"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid request data.", validation.FromBindError(err, &in)))
		return
	}
	set, _, err := h.items(c, in.BuyNow)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	shop, err := h.shop(c)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.NewCheckoutSummary(set, shop.HomeDeliveryCost, shop.OfficeDeliveryCost))
}

// Place handles POST /api/orders - the direct submission pipeline.
func (h *CheckoutHandler) Place(c *gin.Context) {
	var in checkoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid request data.", validation.FromBindError(err, &in)))
		return
	}
	set, cartID, err := h.items(c, in.BuyNow)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	shop, err := h.shop(c)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	o, err := h.Orders.Place(c.Request.Context(), orders.PlaceInput{
		CartID:   cartID,
		Details:  in.Details,
		Items:    set,
		Shipping: shop,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// WhatsApp handles POST /api/orders/whatsapp - builds the prefilled chat link.
// Nothing is recorded; the order only exists once the admin imports it.
func (h *CheckoutHandler) WhatsApp(c *gin.Context) {
	var in checkoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid request data.", validation.FromBindError(err, &in)))
		return
	}
	if err := orders.ValidateDetails(in.Details); err != nil {
		middleware.Fail(c, err)
		return
	}
	set, _, err := h.items(c, in.BuyNow)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	shop, err := h.shop(c)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	if shop.WhatsappNumber == "" {
		middleware.Fail(c, apperr.InvalidErr("The store has no WhatsApp number configured.", nil))
		return
	}

	total := orders.Total(set, shop, in.Details.ShippingMethod)
	c.JSON(http.StatusOK, orders.BuildWhatsAppHandoff(shop.WhatsappNumber, in.Details, set, total))
}
