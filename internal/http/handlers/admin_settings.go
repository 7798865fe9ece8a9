package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chamseddine-glitch/sha/internal/http/middleware"
	"github.com/chamseddine-glitch/sha/internal/http/validation"
	"github.com/chamseddine-glitch/sha/internal/modules/settings"
	"github.com/chamseddine-glitch/sha/internal/shared/apperr"
	"github.com/chamseddine-glitch/sha/pkg/view"
)

// AdminSettingsHandler edits the per-profile draft and publishes it.
type AdminSettingsHandler struct {
	Svc  *settings.Service
	Sync *settings.Synchronizer
}

func NewAdminSettingsHandler(svc *settings.Service, sy *settings.Synchronizer) *AdminSettingsHandler {
	return &AdminSettingsHandler{Svc: svc, Sync: sy}
}

// Get handles GET /api/admin/settings - the draft view, seeding it from the
// published document on first load.
func (h *AdminSettingsHandler) Get(c *gin.Context) {
	res, err := h.Sync.Load(c.Request.Context(), middleware.GetProfileID(c), true)
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

// Update handles PATCH /api/admin/settings - scalar field edits.
func (h *AdminSettingsHandler) Update(c *gin.Context) {
	var patch settings.FieldPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid request data.", validation.FromBindError(err, &patch)))
		return
	}
	updated, err := h.Svc.UpdateFields(c.Request.Context(), middleware.GetProfileID(c), patch)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Publish handles POST /api/admin/settings/publish - pushes the draft to the
// shared store.
func (h *AdminSettingsHandler) Publish(c *gin.Context) {
	published, err := h.Svc.Publish(c.Request.Context(), middleware.GetProfileID(c))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, published)
}

// DiscardDraft handles DELETE /api/admin/settings/draft - the next load
// reseeds from the published document.
func (h *AdminSettingsHandler) DiscardDraft(c *gin.Context) {
	if err := h.Svc.DiscardDraft(c.Request.Context(), middleware.GetProfileID(c)); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type categoryInput struct {
	Name string `json:"name" binding:"required"`
}

// AddCategory handles POST /api/admin/categories.
func (h *AdminSettingsHandler) AddCategory(c *gin.Context) {
	var in categoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid request data.", validation.FromBindError(err, &in)))
		return
	}
	if err := h.Svc.AddCategory(c.Request.Context(), middleware.GetProfileID(c), in.Name); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// DeleteCategory handles DELETE /api/admin/categories/:name.
func (h *AdminSettingsHandler) DeleteCategory(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if err := h.Svc.DeleteCategory(c.Request.Context(), middleware.GetProfileID(c), name); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
