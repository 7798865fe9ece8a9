package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chamseddine-glitch/sha/internal/http/middleware"
	"github.com/chamseddine-glitch/sha/internal/http/validation"
	"github.com/chamseddine-glitch/sha/internal/modules/describe"
	"github.com/chamseddine-glitch/sha/internal/modules/settings"
	"github.com/chamseddine-glitch/sha/internal/shared/apperr"
)

// AdminProductsHandler edits the draft's product list.
type AdminProductsHandler struct {
	Svc *settings.Service
	Gen describe.Generator
}

func NewAdminProductsHandler(svc *settings.Service, gen describe.Generator) *AdminProductsHandler {
	return &AdminProductsHandler{Svc: svc, Gen: gen}
}

// Add handles POST /api/admin/products.
func (h *AdminProductsHandler) Add(c *gin.Context) {
	var in settings.NewProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid request data.", validation.FromBindError(err, &in)))
		return
	}
	p, err := h.Svc.AddProduct(c.Request.Context(), middleware.GetProfileID(c), in)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Update handles PUT /api/admin/products/:id.
func (h *AdminProductsHandler) Update(c *gin.Context) {
	var p settings.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid request data.", validation.FromBindError(err, &p)))
		return
	}
	p.ID = c.Param("id")
	if err := h.Svc.UpdateProduct(c.Request.Context(), middleware.GetProfileID(c), p); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /api/admin/products/:id.
func (h *AdminProductsHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteProduct(c.Request.Context(), middleware.GetProfileID(c), c.Param("id")); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type describeInput struct {
	Name string `json:"name" binding:"required"`
}

// Describe handles POST /api/admin/products/describe - drafts a marketing
// description for a product name. Best effort; the admin can always write
// their own.
func (h *AdminProductsHandler) Describe(c *gin.Context) {
	var in describeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid request data.", validation.FromBindError(err, &in)))
		return
	}
	text, err := h.Gen.Describe(c.Request.Context(), in.Name)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"description": text})
}
