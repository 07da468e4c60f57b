package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/chicfit/storefront/internal/logging"
	"github.com/chicfit/storefront/internal/storage"
)

const maxUploadBytes = 5 << 20

type UploadHandler struct {
	Store storage.BlobStore
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

func (h *UploadHandler) Upload(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "upload")

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file field required")
	}
	if fh.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "file exceeds 5MB limit")
	}

	contentType := fh.Header.Get("Content-Type")
	if !allowedImageTypes[strings.ToLower(contentType)] {
		return echo.NewHTTPError(http.StatusBadRequest, "only jpeg, png and webp images are accepted")
	}

	src, err := fh.Open()
	if err != nil {
		l.Error("upload_open_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	defer src.Close()

	url, err := h.Store.Put(c.Request().Context(), fh.Filename, src)
	if err != nil {
		l.Error("upload_store_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}
