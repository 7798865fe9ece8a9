package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chamseddine-glitch/sha/internal/http/middleware"
	"github.com/chamseddine-glitch/sha/internal/shared/apperr"
	"github.com/chamseddine-glitch/sha/internal/storage"
)

const maxUploadBytes = 8 << 20

// UploadHandler stores product images and the store logo.
type UploadHandler struct {
	Store storage.Storage
}

func NewUploadHandler(store storage.Storage) *UploadHandler {
	return &UploadHandler{Store: store}
}

// Upload handles POST /api/admin/uploads - one multipart "file" field.
func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("An image file is required.", nil))
		return
	}
	if fh.Size > maxUploadBytes {
		middleware.Fail(c, apperr.InvalidErr("Image must be 8MB or smaller.", nil))
		return
	}

	f, err := fh.Open()
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	defer f.Close()

	res, err := h.Store.Put(c.Request.Context(), f, storage.PutInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"key": res.Key, "url": res.URL})
}
