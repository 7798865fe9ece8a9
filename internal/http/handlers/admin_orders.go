package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chamseddine-glitch/sha/internal/http/middleware"
	"github.com/chamseddine-glitch/sha/internal/modules/orders"
	"github.com/chamseddine-glitch/sha/internal/shared/apperr"
	"github.com/chamseddine-glitch/sha/pkg/view"
)

// AdminOrdersHandler serves the order list, the seen marker, manual import,
// and the clear-all action.
type AdminOrdersHandler struct {
	Orders  *orders.Service
	Tracker *orders.Tracker
}

func NewAdminOrdersHandler(svc *orders.Service, tracker *orders.Tracker) *AdminOrdersHandler {
	return &AdminOrdersHandler{Orders: svc, Tracker: tracker}
}

// List handles GET /api/admin/orders - newest first, with the unseen badge
// count for this profile.
func (h *AdminOrdersHandler) List(c *gin.Context) {
	list, err := h.Orders.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	unseen, err := h.Tracker.UnseenCount(c.Request.Context(), middleware.GetProfileID(c), len(list))
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, view.OrderList{Orders: list, UnseenCount: unseen})
}

// MarkSeen handles POST /api/admin/orders/seen - acknowledges the current
// list for this profile.
func (h *AdminOrdersHandler) MarkSeen(c *gin.Context) {
	list, err := h.Orders.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	if err := h.Tracker.MarkAllSeen(c.Request.Context(), middleware.GetProfileID(c), len(list)); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// Import handles POST /api/admin/orders/import - records a manually
// transcribed order from a pasted JSON document.
func (h *AdminOrdersHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		middleware.Fail(c, apperr.ParseErr("Invalid order data. Please check the format.", err))
		return
	}
	o, err := h.Orders.Import(c.Request.Context(), json.RawMessage(raw))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// Clear handles DELETE /api/admin/orders - wipes the shared list and resets
// this profile's seen marker.
func (h *AdminOrdersHandler) Clear(c *gin.Context) {
	if err := h.Orders.Clear(c.Request.Context()); err != nil {
		middleware.Fail(c, err)
		return
	}
	if err := h.Tracker.Reset(c.Request.Context(), middleware.GetProfileID(c)); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.Status(http.StatusNoContent)
}
